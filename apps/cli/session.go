package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/Andas-LV/skill-lab-frontend/core/user"
)

var readPasswordFunc = term.ReadPassword // mockable

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	uname := loginCmd.String("username", "", "The username. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *uname == "" {
		loginCmd.Usage()
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}

	sess, err := cli.gate.Login(ctx, user.Credentials{Username: *uname, Password: string(pwd)})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "logged in as %s (%s)\n", sess.Username, sess.Role)
	return nil
}

func (cli *commandLine) logout() error {
	cli.gate.Logout()
	fmt.Fprintln(cli.out, "logged out")
	return nil
}

func (cli *commandLine) whoami(ctx context.Context) error {
	sess, ok := cli.gate.Resolve(ctx)
	if !ok {
		fmt.Fprintln(cli.out, "not logged in")
		return nil
	}
	fmt.Fprintf(cli.out, "%s <%s> role=%s\n", sess.Username, sess.Email, sess.Role)
	return nil
}
