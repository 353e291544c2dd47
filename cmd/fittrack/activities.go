package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/meltforce/fittrack/internal/activity"
	"github.com/meltforce/fittrack/internal/calories"
	"github.com/meltforce/fittrack/internal/models"
	"github.com/meltforce/fittrack/internal/stats"
)

func runActivities(ctx context.Context, a *app, args []string) error {
	sub, rest := "list", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}
	switch sub {
	case "list":
		return listActivities(ctx, a, rest)
	case "show":
		return showActivity(ctx, a, rest)
	case "log":
		return logActivity(ctx, a, rest)
	case "delete":
		return deleteActivity(ctx, a, rest)
	default:
		return usageError("activities [list|show|log|delete]")
	}
}

func listActivities(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "activities list")
	rangeFlag := fs.String("range", "all", "week, month or all")
	typeFlag := fs.String("type", "", "only this exercise type")
	limit := fs.Int("limit", 20, "maximum rows, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := stats.ParseRange(*rangeFlag)
	if err != nil {
		return err
	}
	var typ models.ExerciseType
	if *typeFlag != "" {
		if typ, err = models.ParseExerciseType(*typeFlag); err != nil {
			return err
		}
	}

	acts, err := a.client.ListActivities(ctx)
	if err != nil {
		return err
	}
	acts = stats.Filter(acts, r, time.Now())
	stats.SortRecent(acts)

	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tWHEN\tTYPE\tDURATION\tSETSxREPS\tKCAL")
	shown := 0
	for _, act := range acts {
		if typ != "" && act.Type != typ {
			continue
		}
		if *limit > 0 && shown == *limit {
			break
		}
		volume := "-"
		if act.Sets > 0 {
			volume = fmt.Sprintf("%dx%d", act.Sets, act.Reps)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			act.ID, formatTime(act.CreatedAt), act.Type.DisplayName(), formatMinutes(act.Duration), volume, act.CaloriesBurned)
		shown++
	}
	tw.Flush()
	if shown == 0 {
		fmt.Fprintln(a.out, "No activities yet. Log one with: fittrack activities log -type RUNNING -duration 30")
	}
	return nil
}

func showActivity(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return usageError("activities show <id>")
	}
	act, err := a.client.GetActivity(ctx, args[0])
	if err != nil {
		return err
	}
	tw := newTable(a.out)
	fmt.Fprintf(tw, "ID:\t%s\n", act.ID)
	fmt.Fprintf(tw, "Type:\t%s (%s)\n", act.Type.DisplayName(), act.Type.Category())
	fmt.Fprintf(tw, "When:\t%s\n", formatTime(act.CreatedAt))
	fmt.Fprintf(tw, "Duration:\t%s\n", formatMinutes(act.Duration))
	if act.Sets > 0 {
		fmt.Fprintf(tw, "Sets x reps:\t%d x %d\n", act.Sets, act.Reps)
	}
	fmt.Fprintf(tw, "Calories:\t%d kcal\n", act.CaloriesBurned)
	if act.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", act.Notes)
	}
	keys := make([]string, 0, len(act.AdditionalMetrics))
	for k := range act.AdditionalMetrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", k, act.AdditionalMetrics[k])
	}
	return tw.Flush()
}

func logActivity(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "activities log")
	typeFlag := fs.String("type", "", "exercise type, e.g. RUNNING or PUSH_UP")
	duration := fs.Int("duration", 0, "duration in minutes")
	sets := fs.Int("sets", 0, "number of sets")
	reps := fs.Int("reps", 0, "repetitions per set")
	kcal := fs.Int("calories", 0, "calories burned; estimated when omitted")
	notes := fs.String("notes", "", "free-text notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typeFlag == "" {
		return usageError("activities log -type T (-duration M | -sets S -reps R) [-calories N] [-notes TEXT]")
	}
	typ, err := models.ParseExerciseType(*typeFlag)
	if err != nil {
		return err
	}

	logger := a.activityLogger()
	form := activity.NewForm(typ, logger.BodyWeight(ctx))
	switch {
	case *sets > 0 || *reps > 0:
		form.Mode = models.InputSetsReps
	case *duration > 0:
		form.Mode = models.InputDuration
	}
	form.Duration, form.Sets, form.Reps = *duration, *sets, *reps
	form.Notes = *notes
	if *kcal > 0 {
		form.Calories = *kcal
	} else if est := form.Estimate(); est > 0 {
		fmt.Fprintf(a.out, "Estimated %d kcal at %.1f kg.\n", est, form.WeightKg)
	}

	created, err := logger.Submit(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %s: %s, %d kcal (id %s).\n",
		created.Type.DisplayName(), formatMinutes(created.Duration), created.CaloriesBurned, created.ID)
	return nil
}

func deleteActivity(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return usageError("activities delete <id>")
	}
	if err := a.client.DeleteActivity(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted activity %s.\n", args[0])
	return nil
}

func runEstimate(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "estimate")
	typeFlag := fs.String("type", "", "exercise type")
	duration := fs.Float64("duration", 0, "duration in minutes")
	sets := fs.Int("sets", 0, "number of sets")
	reps := fs.Int("reps", 0, "repetitions per set")
	weight := fs.Float64("weight", 0, "body weight in kg; defaults to the profile weight")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typeFlag == "" {
		return usageError("estimate -type T (-duration M | -sets S -reps R) [-weight KG]")
	}
	typ, err := models.ParseExerciseType(*typeFlag)
	if err != nil {
		return err
	}
	w := *weight
	if w <= 0 {
		w = a.activityLogger().BodyWeight(ctx)
	}

	switch {
	case *sets > 0 && *reps > 0:
		fmt.Fprintf(a.out, "%s, %d x %d at %.1f kg: %d kcal over about %s.\n",
			typ.DisplayName(), *sets, *reps, w,
			calories.FromSetsReps(typ, *sets, *reps, w),
			formatMinutes(calories.DurationFromSetsReps(typ, *sets, *reps)))
	case *duration > 0:
		fmt.Fprintf(a.out, "%s, %.0f min at %.1f kg: %d kcal (MET %.1f).\n",
			typ.DisplayName(), *duration, w, calories.FromDuration(typ, *duration, w), calories.MET(typ))
	default:
		return usageError("estimate -type T (-duration M | -sets S -reps R) [-weight KG]")
	}
	return nil
}
