// Package testutil holds shared fixtures for integration tests: a stub
// platform API over httptest and an authenticated transport against it.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/services/rest"
	"github.com/kondoo/console/tests/stubapi"
)

const (
	AdminEmail = "admin@test.cd"
	AdminPwd   = "LocalPass123!"
)

func NewConfig() *core.Config {
	conf := &core.Config{Debug: true, TestMode: true, Env: "TEST", AppName: "Kondoo Console"}
	conf.API.Timeout = 5 * time.Second
	conf.Console.HydrationWait = 2 * time.Second
	conf.Stub.SecretKey = "n0t-4-r3al-s3cr3t.test-only"
	conf.Stub.AdminEmail = AdminEmail
	conf.Stub.AdminPwd = AdminPwd
	return conf
}

// StartStub boots the in-memory platform API and returns a logged-in
// transport pointed at it.
func StartStub(t *testing.T) (*core.Config, *rest.Client) {
	t.Helper()

	conf := NewConfig()
	srv := httptest.NewServer(stubapi.NewServer(&stubapi.Options{Conf: conf, DisableReqLogs: true}))
	t.Cleanup(srv.Close)
	conf.API.BaseURL = srv.URL + "/v1"

	rc := rest.NewClient(conf, core.NewNopLogger())
	if err := rc.Login(context.Background(), AdminEmail, AdminPwd); err != nil {
		t.Fatalf("stub login failed, %v", err)
	}
	return conf, rc
}
