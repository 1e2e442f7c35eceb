package main

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/coupon"
	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/core/order"
	"github.com/kondoo/console/services/rest"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp     = errors.New("help provided")
	errNotAuthd = errors.New("not authenticated; run `console login -email EMAIL` first")
)

type commandLine struct {
	conf      *core.Config
	rest      *rest.Client
	courseSvc *course.Service
	couponSvc *coupon.Service
	orderSvc  *order.Service
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                      - authenticate; the password is prompted next")
	fmt.Fprintln(cli.out, "  courses list [-search S] [-category ID] - list courses")
	fmt.Fprintln(cli.out, "  courses publish -id ID                  - make a course live")
	fmt.Fprintln(cli.out, "  courses unpublish -id ID                - take a course down")
	fmt.Fprintln(cli.out, "  coupons list                            - list discount coupons")
	fmt.Fprintln(cli.out, "  coupons add -code CODE -discount N      - create a discount coupon")
	fmt.Fprintln(cli.out, "  orders list [-page N] [-limit N] [-status S] - list orders, newest first")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "login":
		return cli.loginCmd(args[2:])
	case "courses":
		return cli.coursesCmd(args[2:])
	case "coupons":
		return cli.couponsCmd(args[2:])
	case "orders":
		return cli.ordersCmd(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) requireAuth() error {
	if !cli.rest.Authenticated() {
		return errNotAuthd
	}
	return nil
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
