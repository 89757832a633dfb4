package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Andas-LV/skill-lab-frontend/core/nav"
)

func (cli *commandLine) listUsers(ctx context.Context) error {
	if err := cli.requireScreen(ctx, nav.Users); err != nil {
		return err
	}

	users, err := cli.usrSvc.List(ctx)
	if err != nil {
		return err
	}
	for _, usr := range users {
		fmt.Fprintf(cli.out, "%4d  %-10s  %s <%s>\n", usr.ID, usr.Role, usr.Username, usr.Email)
	}
	return nil
}

func (cli *commandLine) showUser(ctx context.Context, args []string) error {
	userCmd := flag.NewFlagSet("user", flag.ExitOnError)
	id := userCmd.Int("id", 0, "The user id.")
	if err := userCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		userCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.UserDetail); err != nil {
		return err
	}

	usr, err := cli.usrSvc.Get(ctx, *id)
	if err != nil {
		return err
	}
	if err := printJSON(cli.out, usr); err != nil {
		return err
	}
	for _, crs := range usr.FavoriteCourses() {
		fmt.Fprintf(cli.out, "  favorite: %s\n", crs.Title)
	}
	return nil
}

func (cli *commandLine) changeUserRole(ctx context.Context, args []string) error {
	roleCmd := flag.NewFlagSet("user-role", flag.ExitOnError)
	id := roleCmd.Int("id", 0, "The user id.")
	role := roleCmd.String("role", "", "The new role (ADMIN, TEACHER, USER).")
	if err := roleCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *role == "" {
		roleCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.UserDetail); err != nil {
		return err
	}

	usr, err := cli.usrSvc.ChangeRole(ctx, *id, *role)
	if err != nil {
		return describeSubmitError(cli, err)
	}
	fmt.Fprintf(cli.out, "user %d is now %s\n", usr.ID, usr.Role)
	return nil
}
