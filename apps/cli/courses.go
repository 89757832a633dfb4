package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/course"
	"github.com/Andas-LV/skill-lab-frontend/core/form"
	"github.com/Andas-LV/skill-lab-frontend/core/nav"
)

func (cli *commandLine) listCourses(ctx context.Context, args []string) error {
	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	category := coursesCmd.String("category", "", "Filter by category (ALL, FRONTEND, BACKEND, MOBILE, DESIGN).")
	if err := coursesCmd.Parse(args); err != nil {
		return err
	}

	courses, err := cli.crsSvc.List(ctx, *category)
	if err != nil {
		return err
	}
	for _, crs := range courses {
		fmt.Fprintf(cli.out, "%4d  %-12s  %s\n", crs.ID, crs.Category, crs.Title)
	}
	return nil
}

func (cli *commandLine) showCourse(ctx context.Context, args []string) error {
	courseCmd := flag.NewFlagSet("course", flag.ExitOnError)
	id := courseCmd.Int("id", 0, "The course id.")
	if err := courseCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		courseCmd.Usage()
		return errHelp
	}

	crs, err := cli.crsSvc.Load(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(cli.out, crs)
}

func (cli *commandLine) createCourse(ctx context.Context, args []string) error {
	createCmd := flag.NewFlagSet("course-create", flag.ExitOnError)
	file := createCmd.String("file", "", "Path to a JSON draft file.")
	if err := createCmd.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		createCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.CreateCourse); err != nil {
		return err
	}

	frm, err := loadDraftForm(*file, course.NewFormValues())
	if err != nil {
		return err
	}
	crs, err := cli.crsSvc.Create(ctx, frm)
	if err != nil {
		return describeSubmitError(cli, err)
	}
	fmt.Fprintf(cli.out, "created course %d: %s\n", crs.ID, crs.Title)
	return nil
}

func (cli *commandLine) updateCourse(ctx context.Context, args []string) error {
	updateCmd := flag.NewFlagSet("course-update", flag.ExitOnError)
	id := updateCmd.Int("id", 0, "The course id.")
	file := updateCmd.String("file", "", "Path to a JSON draft file.")
	if err := updateCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *file == "" {
		updateCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.CreateCourse); err != nil {
		return err
	}

	// pre-populate from the fetched course, then overlay the draft file
	crs, err := cli.crsSvc.Load(ctx, *id)
	if err != nil {
		return err
	}
	frm, err := loadDraftForm(*file, course.DraftFromCourse(crs).FormValues())
	if err != nil {
		return err
	}
	updated, err := cli.crsSvc.Update(ctx, *id, frm)
	if err != nil {
		return describeSubmitError(cli, err)
	}
	fmt.Fprintf(cli.out, "updated course %d: %s\n", updated.ID, updated.Title)
	return nil
}

func (cli *commandLine) deleteCourse(ctx context.Context, args []string) error {
	deleteCmd := flag.NewFlagSet("course-delete", flag.ExitOnError)
	id := deleteCmd.Int("id", 0, "The course id.")
	if err := deleteCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		deleteCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.CreateCourse); err != nil {
		return err
	}
	if err := cli.crsSvc.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "deleted course %d\n", *id)
	return nil
}

// loadDraftForm initializes a form with `defaults` and overlays the fields
// present in the JSON draft file.
func loadDraftForm(path string, defaults map[string]interface{}) (*form.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading draft file")
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "parsing draft file")
	}

	frm := form.New()
	frm.Initialize(defaults)
	for field, value := range values {
		if err := frm.Set(field, value); err != nil {
			return nil, err
		}
	}
	return frm, nil
}

// describeSubmitError prints per-field validation errors inline; anything
// else is passed through for the generic banner.
func describeSubmitError(cli *commandLine, err error) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		for field, msg := range vErr.FieldMap() {
			fmt.Fprintf(cli.out, "  %s: %s\n", field, msg)
		}
	}
	return err
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}
