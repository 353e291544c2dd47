package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/meltforce/fittrack/internal/stats"
)

func runHistory(ctx context.Context, a *app, _ []string) error {
	sessions, err := a.client.SessionHistory(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No workout sessions yet. Start one with: fittrack workout <templateId>")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "STARTED\tTEMPLATE\tSTATUS\tEXERCISES\tDURATION\tKCAL")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%s\t%d\n",
			formatTime(s.StartTime), s.TemplateName, strings.ToLower(strings.ReplaceAll(s.Status, "_", " ")),
			s.CompletedCount(), len(s.ExerciseProgress), formatMinutes(s.TotalDuration), s.TotalCaloriesBurned)
	}
	return tw.Flush()
}

func runStats(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "stats")
	rangeFlag := fs.String("range", "week", "week, month or all")
	if err := fs.Parse(args); err != nil {
		return err
	}
	r, err := stats.ParseRange(*rangeFlag)
	if err != nil {
		return err
	}
	acts, err := a.client.ListActivities(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	sum := stats.Summarize(acts, r, now)
	inRange := stats.Filter(acts, r, now)

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Workouts:\t%d\n", sum.TotalWorkouts)
	fmt.Fprintf(tw, "Calories:\t%d kcal\n", sum.TotalCalories)
	fmt.Fprintf(tw, "Time:\t%s\n", formatMinutes(sum.TotalDuration))
	fmt.Fprintf(tw, "Average duration:\t%s\n", formatMinutes(sum.AvgDuration))
	if sum.MostPerformed != "" {
		fmt.Fprintf(tw, "Most performed:\t%s\n", sum.MostPerformed.DisplayName())
	}
	fmt.Fprintf(tw, "Calories, last 7 days:\t%d kcal\n", sum.CaloriesThisWeek)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(inRange) == 0 {
		return nil
	}

	fmt.Fprintln(a.out, "\nBy type:")
	breakdown := stats.TypeBreakdown(inRange)
	tw = newTable(a.out)
	for _, tc := range breakdown {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", tc.Type.DisplayName(), tc.Count, bar(tc.Count, breakdown[0].Count, 30))
	}
	tw.Flush()

	fmt.Fprintln(a.out, "\nBy weekday:")
	perDay := stats.WorkoutsPerWeekday(inRange, now.Location())
	top := slices.Max(perDay[:])
	for i, n := range perDay {
		fmt.Fprintf(a.out, "  %s  %2d %s\n", stats.Weekdays[i], n, bar(n, top, 30))
	}

	fmt.Fprintln(a.out, "\nCalories per day:")
	days := stats.CaloriesByDay(inRange, now.Location())
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Calories)
	}
	for _, d := range days {
		fmt.Fprintf(a.out, "  %s  %5d %s\n", d.Date, d.Calories, bar(d.Calories, peak, 30))
	}
	return nil
}

func runStreak(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "streak")
	server := fs.Bool("server", false, "ask the gateway instead of computing from activities")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var s stats.Streak
	if *server {
		gs, err := a.client.GetStreak(ctx)
		if err != nil {
			return err
		}
		s = stats.Streak{Current: gs.CurrentStreak, Longest: gs.LongestStreak, WorkedOutToday: gs.WorkedOutToday}
		for _, d := range gs.WorkoutDates {
			s.Dates = append(s.Dates, d.String())
		}
	} else {
		acts, err := a.client.ListActivities(ctx)
		if err != nil {
			return err
		}
		s = stats.ComputeStreak(stats.ActivityTimes(acts), time.Now())
	}

	fmt.Fprintf(a.out, "Current streak: %d day(s)\nLongest streak: %d day(s)\n", s.Current, s.Longest)
	if s.WorkedOutToday {
		fmt.Fprintln(a.out, "You worked out today.")
	} else if s.Current > 0 {
		fmt.Fprintln(a.out, "Work out today to keep the streak going.")
	}
	printCalendar(a, s.Dates, time.Now())
	return nil
}

// printCalendar marks workout days over the last four weeks, Monday first.
func printCalendar(a *app, dates []string, now time.Time) {
	worked := make(map[string]bool, len(dates))
	for _, d := range dates {
		worked[d] = true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(today.Weekday()) + 6) % 7 // days since Monday
	start := today.AddDate(0, 0, -offset-21)

	fmt.Fprintf(a.out, "\n  %s\n", strings.Join(stats.Weekdays[:], " "))
	for week := 0; week < 4; week++ {
		var cells []string
		for d := 0; d < 7; d++ {
			day := start.AddDate(0, 0, week*7+d)
			switch {
			case day.After(today):
				cells = append(cells, "   ")
			case worked[day.Format("2006-01-02")]:
				cells = append(cells, " # ")
			default:
				cells = append(cells, " . ")
			}
		}
		fmt.Fprintf(a.out, "  %s\n", strings.Join(cells, " "))
	}
}

func runGoals(ctx context.Context, a *app, args []string) error {
	sub, rest := "show", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}
	switch sub {
	case "show":
	case "set":
		current, err := a.store.Goals(ctx, a.id.UserID)
		if err != nil {
			return err
		}
		fs := newFlags(a, "goals set")
		kcal := fs.Int("calories", current.WeeklyCalories, "weekly calorie target")
		workouts := fs.Int("workouts", current.WeeklyWorkouts, "weekly workout target")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.store.SaveGoals(ctx, a.id.UserID, stats.Goals{WeeklyCalories: *kcal, WeeklyWorkouts: *workouts}); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Goals saved.")
	default:
		return usageError("goals [show|set -calories N -workouts N]")
	}

	goals, err := a.store.Goals(ctx, a.id.UserID)
	if err != nil {
		return err
	}
	acts, err := a.client.ListActivities(ctx)
	if err != nil {
		return err
	}
	p := stats.WeeklyProgress(acts, goals, time.Now())
	fmt.Fprintf(a.out, "Calories  %s %5d / %d kcal (%.0f%%)\n", percentBar(p.CaloriesPct, 20), p.Calories, goals.WeeklyCalories, p.CaloriesPct)
	fmt.Fprintf(a.out, "Workouts  %s %5d / %d (%.0f%%)\n", percentBar(p.WorkoutsPct, 20), p.Workouts, goals.WeeklyWorkouts, p.WorkoutsPct)
	return nil
}

func runAchievements(ctx context.Context, a *app, _ []string) error {
	acts, err := a.client.ListActivities(ctx)
	if err != nil {
		return err
	}
	before, err := a.store.Achievements(ctx, a.id.UserID)
	if err != nil {
		return err
	}
	unlocked, err := a.store.UnlockAchievements(ctx, a.id.UserID, stats.Evaluate(acts, time.Now()))
	if err != nil {
		return err
	}
	printAchievements(a, before, unlocked)
	return nil
}

func printAchievements(a *app, before, unlocked []string) {
	tw := newTable(a.out)
	for _, ach := range stats.Achievements() {
		mark := "[ ]"
		note := ""
		if slices.Contains(unlocked, ach.ID) {
			mark = "[x]"
			if !slices.Contains(before, ach.ID) {
				note = "new!"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, ach.Name, ach.Description, note)
	}
	tw.Flush()
	fmt.Fprintf(a.out, "\n%d of %d unlocked.\n", len(unlocked), len(stats.Achievements()))
}
