package main

import (
	"context"
	"flag"
	"fmt"
)

func (cli *commandLine) loginCmd(args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "The admin account's email. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		loginCmd.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		loginCmd.Usage()
		return errHelp
	}

	if err := cli.rest.Login(context.Background(), *email, pwd); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "logged in")
	return nil
}
