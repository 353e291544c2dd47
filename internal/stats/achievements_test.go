package stats

import (
	"slices"
	"testing"

	"github.com/meltforce/fittrack/internal/models"
)

// TestEvaluate_Empty verifies nothing unlocks without activities.
func TestEvaluate_Empty(t *testing.T) {
	if got := Evaluate(nil, now); len(got) != 0 {
		t.Errorf("unlocked=%v, want none", got)
	}
}

// TestEvaluate verifies each condition against a crafted history.
func TestEvaluate(t *testing.T) {
	var acts []models.Activity
	// Seven consecutive early runs ending today, 800 kcal each.
	for i := 0; i < 7; i++ {
		acts = append(acts, act(models.Running, i, 6, 40, 800))
	}
	// Three older jogs, later in the day.
	for i := 20; i < 23; i++ {
		acts = append(acts, act(models.Jogging, i, 18, 30, 10))
	}

	got := Evaluate(acts, now)
	want := []string{"first_workout", "week_streak", "calorie_crusher", "weekly_warrior", "marathon_runner", "early_bird"}
	if !slices.Equal(got, want) {
		t.Errorf("unlocked=%v, want %v", got, want)
	}
}

// TestEvaluate_ConsistencyKing verifies the 30-day streak badge.
func TestEvaluate_ConsistencyKing(t *testing.T) {
	var acts []models.Activity
	for i := 0; i < 30; i++ {
		acts = append(acts, act(models.Yoga, i+40, 12, 20, 50))
	}
	got := Evaluate(acts, now)
	if !slices.Contains(got, "consistency_king") || !slices.Contains(got, "week_streak") {
		t.Errorf("unlocked=%v", got)
	}
	if slices.Contains(got, "weekly_warrior") {
		t.Error("weekly_warrior unlocked by old activities")
	}
}

// TestMerge verifies unlocked achievements are never lost.
func TestMerge(t *testing.T) {
	got := Merge([]string{"century_club", "first_workout"}, []string{"first_workout", "early_bird"})
	want := []string{"century_club", "first_workout", "early_bird"}
	if !slices.Equal(got, want) {
		t.Errorf("Merge=%v, want %v", got, want)
	}
}

// TestAchievementsCatalogue verifies the catalogue has eight unique ids.
func TestAchievementsCatalogue(t *testing.T) {
	all := Achievements()
	if len(all) != 8 {
		t.Fatalf("got %d achievements, want 8", len(all))
	}
	seen := map[string]bool{}
	for _, a := range all {
		if seen[a.ID] {
			t.Errorf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
	}
}
