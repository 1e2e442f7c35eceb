package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/coupon"
	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/core/order"
	"github.com/kondoo/console/services/platform"
	"github.com/kondoo/console/services/rest"
	"github.com/kondoo/console/tests/stubapi"
)

const (
	testAdminEmail = "admin@test.cd"
	testAdminPwd   = "LocalPass123!"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()

	conf := &core.Config{Debug: true, TestMode: true, Env: "TEST"}
	conf.API.Timeout = 5 * time.Second
	conf.Console.HydrationWait = 2 * time.Second
	conf.Stub.SecretKey = "n0t-4-r3al-s3cr3t.test-only"
	conf.Stub.AdminEmail = testAdminEmail
	conf.Stub.AdminPwd = testAdminPwd

	srv := httptest.NewServer(stubapi.NewServer(&stubapi.Options{Conf: conf, DisableReqLogs: true}))
	t.Cleanup(srv.Close)
	conf.API.BaseURL = srv.URL + "/v1"

	rc := rest.NewClient(conf, core.NewNopLogger())
	out := new(bytes.Buffer)
	return &commandLine{
		conf:      conf,
		rest:      rc,
		courseSvc: course.NewService(platform.NewCourseClient(rc), core.NewNopLogger()),
		couponSvc: coupon.NewService(platform.NewCouponClient(rc), core.NewNopLogger()),
		orderSvc:  order.NewService(platform.NewOrderClient(rc), core.NewNopLogger()),
		out:       out,
	}, out
}

func login(t *testing.T, cli *commandLine) {
	t.Helper()
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(testAdminPwd), nil }
	if err := cli.run([]string{"console", "login", "-email", testAdminEmail}); err != nil {
		t.Fatalf("login failed, %v", err)
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	pwd        string
	wantErr    error
	wantErrStr string
	wantOut    string
}

func Test_commandLine_login(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no email", args: []string{"login"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"login", "-email", testAdminEmail}, wantErr: errHelp},
		{name: "wrong password", args: []string{"login", "-email", testAdminEmail}, pwd: "nope", wantErrStr: "authentication failed (status 400)"},
		{name: "wrong email", args: []string{"login", "-email", "lol@test.cd"}, pwd: testAdminPwd, wantErrStr: "authentication failed (status 400)"},
		{name: "ok", args: []string{"login", "-email", testAdminEmail}, pwd: testAdminPwd, wantOut: "logged in"},
	}
	for _, tt := range tests {
		args := append([]string{"console"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) { return []byte(tt.pwd), nil }

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			checkCLIErr(t, err, tt)
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}

	if !cli.rest.Authenticated() {
		t.Error("expected an authenticated client after login")
	}
}

func Test_commandLine_courses(t *testing.T) {
	cli, out := setup(t)

	if err := cli.run([]string{"console", "courses", "list"}); !errors.Is(err, errNotAuthd) {
		t.Errorf("cli.run() error = %v, want %v", err, errNotAuthd)
	}

	login(t, cli)

	tests := []cliTest{
		{name: "no subcommand", args: []string{"courses"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"courses", "lol"}, wantErr: errHelp},
		{name: "publish without id", args: []string{"courses", "publish"}, wantErr: errHelp},
		{name: "list", args: []string{"courses", "list"}, wantOut: "Algebra Basics"},
		{name: "list filters out", args: []string{"courses", "list", "-search", "zzz"}, wantOut: "ID"},
	}
	for _, tt := range tests {
		args := append([]string{"console"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			checkCLIErr(t, err, tt)
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}

	// the list endpoint omits status, so the store must have been hydrated
	// from the detail endpoint before rendering
	out.Reset()
	if err := cli.run([]string{"console", "courses", "list"}); err != nil {
		t.Fatalf("courses list failed, %v", err)
	}
	if strings.Contains(out.String(), "pending") {
		t.Errorf("expected a fully hydrated listing, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "live") {
		t.Errorf("expected the seeded course to show as live, got:\n%s", out.String())
	}

	// flip the seeded course off and back on
	items := cli.courseSvc.Store().Items()
	if len(items) == 0 {
		t.Fatal("no courses in store")
	}
	id := items[0].ID

	out.Reset()
	if err := cli.run([]string{"console", "courses", "unpublish", "-id", id}); err != nil {
		t.Fatalf("courses unpublish failed, %v", err)
	}
	if !strings.Contains(out.String(), "draft") {
		t.Errorf("expected draft status, got %q", out.String())
	}

	out.Reset()
	if err := cli.run([]string{"console", "courses", "publish", "-id", id}); err != nil {
		t.Fatalf("courses publish failed, %v", err)
	}
	if !strings.Contains(out.String(), "live") {
		t.Errorf("expected live status, got %q", out.String())
	}
}

func Test_commandLine_coupons(t *testing.T) {
	cli, out := setup(t)
	login(t, cli)

	expires := time.Now().AddDate(0, 1, 0).Format("2006-01-02")

	tests := []cliTest{
		{name: "no subcommand", args: []string{"coupons"}, wantErr: errHelp},
		{name: "add without args", args: []string{"coupons", "add"}, wantErr: errHelp},
		{name: "add with bad date", args: []string{"coupons", "add", "-code", "SALE-20", "-discount", "20", "-expires", "lol"},
			wantErrStr: `expires must be a YYYY-MM-DD date (got "lol")`},
		{name: "add expired", args: []string{"coupons", "add", "-code", "SALE-20", "-discount", "20", "-expires", "2020-01-01"},
			wantErrStr: "expiry must be in the future"},
		{name: "add ok", args: []string{"coupons", "add", "-code", "SALE-20", "-discount", "20", "-expires", expires},
			wantOut: "created coupon SALE-20 (20% off)"},
		{name: "add duplicate", args: []string{"coupons", "add", "-code", "SALE-20", "-discount", "20", "-expires", expires},
			wantErrStr: "coupon code already exists (status 409)"},
		{name: "list", args: []string{"coupons", "list"}, wantOut: "SALE-20"},
	}
	for _, tt := range tests {
		args := append([]string{"console"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			checkCLIErr(t, err, tt)
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_orders(t *testing.T) {
	cli, out := setup(t)
	login(t, cli)

	tests := []cliTest{
		{name: "no subcommand", args: []string{"orders"}, wantErr: errHelp},
		{name: "invalid status filter", args: []string{"orders", "list", "-status", "lol"}, wantErrStr: `invalid status "lol"`},
		{name: "first page", args: []string{"orders", "list"}, wantOut: "page 1/2 (12 orders)"},
		{name: "second page", args: []string{"orders", "list", "-page", "2"}, wantOut: "page 2/2 (12 orders)"},
		{name: "filtered", args: []string{"orders", "list", "-status", "pending"}, wantOut: "(4 orders)"},
		{name: "status without id", args: []string{"orders", "status", "-status", "paid"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"console"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			checkCLIErr(t, err, tt)
			if tt.wantOut != "" && !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("cli.run() output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}

	// advance a pending order
	orders, _, err := cli.orderSvc.FetchAll(context.Background(), order.Filter{Status: order.StatusPending})
	if err != nil {
		t.Fatalf("FetchAll() failed, %v", err)
	}
	if len(orders) == 0 {
		t.Fatal("no pending orders seeded")
	}
	out.Reset()
	if err := cli.run([]string{"console", "orders", "status", "-id", orders[0].ID, "-status", order.StatusPaid}); err != nil {
		t.Fatalf("orders status failed, %v", err)
	}
	if !strings.Contains(out.String(), "is now paid") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func checkCLIErr(t *testing.T, err error, tt cliTest) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
			t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
		}
	default:
		if err != nil {
			t.Errorf("cli.run() unexpected error = %v", err)
		}
	}
}
