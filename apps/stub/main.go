package main

import (
	"github.com/kondoo/console/core"
	"github.com/kondoo/console/tests/stubapi"
)

// stub runs the in-memory platform API so the console can be exercised
// without the real backend.
func main() {
	conf := core.NewConfig()
	srv := stubapi.NewServer(&stubapi.Options{Conf: conf})
	srv.Start()
}
