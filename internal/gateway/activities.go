package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/meltforce/fittrack/internal/models"
)

func (c *Client) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var out []models.Activity
	if err := c.getJSON(ctx, "/activities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	var out models.Activity
	if err := c.getJSON(ctx, "/activities/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateActivity submits a new log entry and returns the stored copy.
func (c *Client) CreateActivity(ctx context.Context, a models.Activity) (*models.Activity, error) {
	var out models.Activity
	if err := c.sendJSON(ctx, http.MethodPost, "/activities", a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateActivity(ctx context.Context, id string, a models.Activity) (*models.Activity, error) {
	var out models.Activity
	if err := c.sendJSON(ctx, http.MethodPut, "/activities/"+url.PathEscape(id), a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/activities/"+url.PathEscape(id), nil)
	return err
}

// GetStreak returns the gateway-computed workout streak.
func (c *Client) GetStreak(ctx context.Context) (*models.Streak, error) {
	var out models.Streak
	if err := c.getJSON(ctx, "/activities/streak", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecommendation returns the AI feedback for an activity. A 404 means
// generation has not finished yet and is reported as ErrRecommendationPending.
func (c *Client) GetRecommendation(ctx context.Context, activityID string) (*models.Recommendation, error) {
	var out models.Recommendation
	err := c.getJSON(ctx, "/recommendations/activity/"+url.PathEscape(activityID), &out)
	if IsNotFound(err) {
		return nil, ErrRecommendationPending
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRecommendations returns every recommendation generated for userID.
func (c *Client) ListRecommendations(ctx context.Context, userID string) ([]models.Recommendation, error) {
	var out []models.Recommendation
	if err := c.getJSON(ctx, "/recommendations/user/"+url.PathEscape(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.getJSON(ctx, "/users/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.sendJSON(ctx, http.MethodPut, "/users/profile", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
