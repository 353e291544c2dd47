package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/templates"
)

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string     { return strings.Join(*l, ", ") }
func (l *stringList) Set(v string) error { *l = append(*l, v); return nil }

func runTemplates(ctx context.Context, a *app, args []string) error {
	sub, rest := "public", args
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	var (
		list []models.WorkoutTemplate
		err  error
	)
	switch sub {
	case "public":
		list, err = a.client.ListPublicTemplates(ctx)
	case "mine":
		list, err = a.client.ListMyTemplates(ctx)
	case "category":
		if len(rest) != 1 {
			return usageError("templates category <" + strings.Join(templates.Categories(), "|") + ">")
		}
		list, err = a.client.ListTemplatesByCategory(ctx, strings.ToUpper(rest[0]))
	case "difficulty":
		if len(rest) != 1 {
			return usageError("templates difficulty <" + strings.Join(templates.Difficulties(), "|") + ">")
		}
		list, err = a.client.ListTemplatesByDifficulty(ctx, strings.ToUpper(rest[0]))
	case "show":
		return showTemplate(ctx, a, rest)
	case "create":
		return createTemplate(ctx, a, rest)
	case "delete":
		if len(rest) != 1 {
			return usageError("templates delete <id>")
		}
		if err := a.client.DeleteTemplate(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted template %s.\n", rest[0])
		return nil
	default:
		return usageError("templates [public|mine|category|difficulty|show|create|delete]")
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No templates found.")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIFFICULTY\tEXERCISES\tEST.\tUSED")
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%d\n",
			t.ID, t.Name, t.Category, t.Difficulty, len(t.Exercises), formatMinutes(t.EstimatedDuration), t.TimesUsed)
	}
	return tw.Flush()
}

func showTemplate(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return usageError("templates show <id>")
	}
	t, err := a.client.GetTemplate(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s  [%s, %s]\n", t.Name, t.Category, t.Difficulty)
	if t.Description != "" {
		fmt.Fprintln(a.out, t.Description)
	}
	fmt.Fprintf(a.out, "Estimated %s, used %d times.\n\n", formatMinutes(t.EstimatedDuration), t.TimesUsed)

	tw := newTable(a.out)
	fmt.Fprintln(tw, "#\tEXERCISE\tSETS\tREPS\tREST\tNOTES")
	for i, ex := range t.Exercises {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%ds\t%s\n",
			i+1, ex.ExerciseType.DisplayName(), ex.TargetSets, ex.TargetReps, ex.Rest(), ex.Notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nStart it with: fittrack workout %s\n", t.ID)
	return nil
}

func createTemplate(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "templates create")
	name := fs.String("name", "", "template name")
	desc := fs.String("description", "", "description")
	difficulty := fs.String("difficulty", models.DifficultyBeginner, strings.Join(templates.Difficulties(), ", "))
	category := fs.String("category", models.TemplateStrength, strings.Join(templates.Categories(), ", "))
	public := fs.Bool("public", false, "share with other users")
	var exercises stringList
	fs.Var(&exercises, "exercise", "TYPE:SETSxREPS[:REST[:NOTES]], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b := templates.NewBuilder(*name)
	b.Description = *desc
	b.Difficulty = strings.ToUpper(*difficulty)
	b.Category = strings.ToUpper(*category)
	b.IsPublic = *public
	for _, spec := range exercises {
		if err := b.AddSpec(spec); err != nil {
			return err
		}
	}
	req, err := b.Request()
	if err != nil {
		return err
	}

	created, err := a.client.CreateTemplate(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created template %q (id %s), about %s.\n", created.Name, created.ID, formatMinutes(b.EstimatedDuration()))
	return nil
}
