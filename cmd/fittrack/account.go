package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meltforce/fittrack/internal/gateway"
	"github.com/meltforce/fittrack/internal/models"
)

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "login")
	token := fs.String("token", "", "bearer token issued by the gateway")
	user := fs.String("user", "", "user id the token belongs to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" || *user == "" {
		return usageError("login -token T -user ID")
	}

	id := gateway.Identity{Token: strings.TrimSpace(*token), UserID: strings.TrimSpace(*user)}
	p, err := a.client.GetProfile(gateway.WithIdentity(ctx, id))
	if err != nil {
		if k := gateway.KindOf(err); k == gateway.KindUnauthorized || k == gateway.KindPermissionDenied {
			return fmt.Errorf("gateway rejected the token: %w", err)
		}
		a.log.Warn("could not verify credentials, saving anyway", "error", err)
	}
	if err := a.store.SaveCredentials(ctx, id); err != nil {
		return err
	}
	if p != nil && p.FirstName != "" {
		fmt.Fprintf(a.out, "Logged in as %s %s (%s).\n", p.FirstName, p.LastName, id.UserID)
	} else {
		fmt.Fprintf(a.out, "Logged in as %s.\n", id.UserID)
	}
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.store.ClearCredentials(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	fmt.Fprintf(a.out, "User:    %s\nGateway: %s\n", a.id.UserID, a.client.BaseURL())
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Profile: %s\n", gateway.Describe(err))
		return nil
	}
	fmt.Fprintf(a.out, "Name:    %s %s\nEmail:   %s\n", p.FirstName, p.LastName, p.Email)
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	sub, rest := "show", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}
	switch sub {
	case "show":
		p, err := a.client.GetProfile(ctx)
		if err != nil {
			return err
		}
		printProfile(a, p)
		return nil
	case "set":
		fs := newFlags(a, "profile set")
		age := fs.Int("age", 0, "age in years")
		weight := fs.Float64("weight", 0, "body weight in kg")
		height := fs.Float64("height", 0, "height in cm")
		gender := fs.String("gender", "", "gender")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		upd := models.ProfileUpdate{Age: *age, Weight: *weight, Height: *height, Gender: strings.ToUpper(*gender)}
		if upd == (models.ProfileUpdate{}) {
			return usageError("profile set -age N -weight KG -height CM -gender G")
		}
		if upd.Age < 0 || upd.Weight < 0 || upd.Height < 0 {
			return errors.New("age, weight and height must be positive")
		}
		p, err := a.client.UpdateProfile(ctx, upd)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile updated.")
		printProfile(a, p)
		return nil
	default:
		return usageError("profile [show|set]")
	}
}

func printProfile(a *app, p *models.UserProfile) {
	tw := newTable(a.out)
	fmt.Fprintf(tw, "Name:\t%s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	if p.Age > 0 {
		fmt.Fprintf(tw, "Age:\t%d\n", p.Age)
	}
	if p.Weight > 0 {
		fmt.Fprintf(tw, "Weight:\t%.1f kg\n", p.Weight)
	}
	if p.Height > 0 {
		fmt.Fprintf(tw, "Height:\t%.0f cm\n", p.Height)
	}
	if p.Gender != "" {
		fmt.Fprintf(tw, "Gender:\t%s\n", p.Gender)
	}
	tw.Flush()
}

func runRecommendation(ctx context.Context, a *app, args []string) error {
	fs := newFlags(a, "recommendation")
	all := fs.Bool("all", false, "list every recommendation for the user")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *all {
		recs, err := a.client.ListRecommendations(ctx, a.id.UserID)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(a.out, "No recommendations yet.")
		}
		for i := range recs {
			if i > 0 {
				fmt.Fprintln(a.out)
			}
			printRecommendation(a, &recs[i])
		}
		return nil
	}
	if fs.NArg() != 1 {
		return usageError("recommendation <activityId>")
	}
	rec, err := a.client.GetRecommendation(ctx, fs.Arg(0))
	if errors.Is(err, gateway.ErrRecommendationPending) {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	if err != nil {
		return err
	}
	printRecommendation(a, rec)
	return nil
}

func printRecommendation(a *app, r *models.Recommendation) {
	if r.ActivityType != "" {
		fmt.Fprintf(a.out, "%s (%s)\n", r.ActivityType.DisplayName(), formatTime(r.CreatedAt))
	}
	fmt.Fprintln(a.out, r.Recommendation)
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"Improvements", r.Improvements},
		{"Suggestions", r.Suggestions},
		{"Safety", r.Safety},
	} {
		if len(sec.items) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "\n%s:\n", sec.title)
		for _, it := range sec.items {
			fmt.Fprintf(a.out, "  - %s\n", it)
		}
	}
}
