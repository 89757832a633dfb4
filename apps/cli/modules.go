package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Andas-LV/skill-lab-frontend/core/form"
	"github.com/Andas-LV/skill-lab-frontend/core/nav"
	"github.com/Andas-LV/skill-lab-frontend/core/unit"
)

func (cli *commandLine) listModules(ctx context.Context) error {
	modules, err := cli.modSvc.List(ctx)
	if err != nil {
		return err
	}
	for _, mod := range modules {
		fmt.Fprintf(cli.out, "%4d  %s (%d lessons)\n", mod.ID, mod.Title, len(mod.Lessons))
	}
	return nil
}

func (cli *commandLine) showModule(ctx context.Context, args []string) error {
	moduleCmd := flag.NewFlagSet("module", flag.ExitOnError)
	id := moduleCmd.Int("id", 0, "The module id.")
	if err := moduleCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		moduleCmd.Usage()
		return errHelp
	}

	mod, err := cli.modSvc.Load(ctx, *id)
	if err != nil {
		return err
	}
	return printJSON(cli.out, mod)
}

func (cli *commandLine) createModule(ctx context.Context, args []string) error {
	createCmd := flag.NewFlagSet("module-create", flag.ExitOnError)
	title := createCmd.String("title", "", "The module title.")
	var lessons stringsFlag
	createCmd.Var(&lessons, "lesson", "A lesson title; repeatable.")
	if err := createCmd.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		createCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.CreateModule); err != nil {
		return err
	}

	frm := form.New()
	frm.Initialize(unit.NewFormValues())
	if err := frm.Set("title", *title); err != nil {
		return err
	}
	for _, lesson := range lessons {
		if _, err := frm.Append("lessonTitles", map[string]interface{}{"value": lesson}); err != nil {
			return err
		}
	}

	mod, err := cli.modSvc.Create(ctx, frm)
	if err != nil {
		return describeSubmitError(cli, err)
	}
	fmt.Fprintf(cli.out, "created module %d: %s\n", mod.ID, mod.Title)
	return nil
}

func (cli *commandLine) updateModule(ctx context.Context, args []string) error {
	updateCmd := flag.NewFlagSet("module-update", flag.ExitOnError)
	id := updateCmd.Int("id", 0, "The module id.")
	title := updateCmd.String("title", "", "The new module title.")
	var lessons stringsFlag
	updateCmd.Var(&lessons, "lesson", "A lesson title; repeatable, replaces the lesson list.")
	if err := updateCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		updateCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.CreateModule); err != nil {
		return err
	}

	// pre-populate from the fetched module, then overlay the given flags
	mod, err := cli.modSvc.Load(ctx, *id)
	if err != nil {
		return err
	}
	frm := form.New()
	frm.Initialize(unit.DraftFromModule(mod).FormValues())
	if *title != "" {
		if err := frm.Set("title", *title); err != nil {
			return err
		}
	}
	if len(lessons) > 0 {
		rows := make([]interface{}, len(lessons))
		for i, lesson := range lessons {
			rows[i] = map[string]interface{}{"value": lesson}
		}
		if err := frm.Set("lessonTitles", rows); err != nil {
			return err
		}
	}

	updated, err := cli.modSvc.Update(ctx, *id, frm)
	if err != nil {
		return describeSubmitError(cli, err)
	}
	fmt.Fprintf(cli.out, "updated module %d: %s\n", updated.ID, updated.Title)
	return nil
}

func (cli *commandLine) deleteModule(ctx context.Context, args []string) error {
	deleteCmd := flag.NewFlagSet("module-delete", flag.ExitOnError)
	id := deleteCmd.Int("id", 0, "The module id.")
	if err := deleteCmd.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		deleteCmd.Usage()
		return errHelp
	}
	if err := cli.requireScreen(ctx, nav.CreateModule); err != nil {
		return err
	}
	if err := cli.modSvc.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "deleted module %d\n", *id)
	return nil
}
