package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Andas-LV/skill-lab-frontend/core/course"
	"github.com/Andas-LV/skill-lab-frontend/core/nav"
	"github.com/Andas-LV/skill-lab-frontend/core/unit"
	"github.com/Andas-LV/skill-lab-frontend/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	out    io.Writer
	gate   *user.Gate
	guard  *nav.Guard
	crsSvc *course.Service
	modSvc *unit.Service
	usrSvc *user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME                    - log in (password is prompted)")
	fmt.Fprintln(cli.out, "  logout                                      - log out and forget the stored credential")
	fmt.Fprintln(cli.out, "  whoami                                      - show the current session")
	fmt.Fprintln(cli.out, "  courses [-category CAT]                     - list courses")
	fmt.Fprintln(cli.out, "  course -id ID                               - show one course")
	fmt.Fprintln(cli.out, "  course-create -file DRAFT.json              - create a course from a draft file")
	fmt.Fprintln(cli.out, "  course-update -id ID -file DRAFT.json       - update a course from a draft file")
	fmt.Fprintln(cli.out, "  course-delete -id ID                        - delete a course")
	fmt.Fprintln(cli.out, "  modules                                     - list modules")
	fmt.Fprintln(cli.out, "  module -id ID                               - show one module")
	fmt.Fprintln(cli.out, "  module-create -title TITLE [-lesson L]...   - create a module")
	fmt.Fprintln(cli.out, "  module-update -id ID [-title T] [-lesson L]... - update a module")
	fmt.Fprintln(cli.out, "  module-delete -id ID                        - delete a module")
	fmt.Fprintln(cli.out, "  users                                       - list users (admin)")
	fmt.Fprintln(cli.out, "  user -id ID                                 - show one user (admin)")
	fmt.Fprintln(cli.out, "  user-role -id ID -role ROLE                 - change a user's role (admin)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami(ctx)
	case "courses":
		return cli.listCourses(ctx, args[2:])
	case "course":
		return cli.showCourse(ctx, args[2:])
	case "course-create":
		return cli.createCourse(ctx, args[2:])
	case "course-update":
		return cli.updateCourse(ctx, args[2:])
	case "course-delete":
		return cli.deleteCourse(ctx, args[2:])
	case "modules":
		return cli.listModules(ctx)
	case "module":
		return cli.showModule(ctx, args[2:])
	case "module-create":
		return cli.createModule(ctx, args[2:])
	case "module-update":
		return cli.updateModule(ctx, args[2:])
	case "module-delete":
		return cli.deleteModule(ctx, args[2:])
	case "users":
		return cli.listUsers(ctx)
	case "user":
		return cli.showUser(ctx, args[2:])
	case "user-role":
		return cli.changeUserRole(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// requireScreen resolves the destination through the guard; a redirect means
// access was denied before any data fetch was issued.
func (cli *commandLine) requireScreen(ctx context.Context, dest nav.Destination) error {
	if resolved := cli.guard.Resolve(ctx, dest); resolved != dest {
		fmt.Fprintf(cli.out, "redirecting to %s\n", nav.Path(resolved))
		return fmt.Errorf("access to %s denied", nav.Path(dest))
	}
	return nil
}

// stringsFlag collects a repeatable string flag.
type stringsFlag []string

func (f *stringsFlag) String() string { return fmt.Sprint([]string(*f)) }

func (f *stringsFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}
