// Package platform implements the per-kind Client interfaces from core
// against the remote admin API. Each client is pure translation: build the
// path, params and body for one endpoint, decode the enveloped response.
// No caching, no state beyond the shared transport.
package platform

import (
	"net/url"
)

func listParams(pairs ...string) url.Values {
	params := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			params.Set(pairs[i], pairs[i+1])
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}
