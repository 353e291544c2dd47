package gateway

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/meltforce/fittrack/internal/models"
)

func (c *Client) ListPublicTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	return c.listTemplates(ctx, "/templates/public")
}

func (c *Client) ListMyTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	return c.listTemplates(ctx, "/templates/my")
}

func (c *Client) ListTemplatesByCategory(ctx context.Context, category string) ([]models.WorkoutTemplate, error) {
	return c.listTemplates(ctx, "/templates/category/"+url.PathEscape(category))
}

func (c *Client) ListTemplatesByDifficulty(ctx context.Context, difficulty string) ([]models.WorkoutTemplate, error) {
	return c.listTemplates(ctx, "/templates/difficulty/"+url.PathEscape(difficulty))
}

func (c *Client) listTemplates(ctx context.Context, path string) ([]models.WorkoutTemplate, error) {
	var out []models.WorkoutTemplate
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTemplate returns one template with its exercises in order.
func (c *Client) GetTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	var out models.WorkoutTemplate
	if err := c.getJSON(ctx, "/templates/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTemplate(ctx context.Context, req models.CreateTemplateRequest) (*models.WorkoutTemplate, error) {
	var out models.WorkoutTemplate
	if err := c.sendJSON(ctx, http.MethodPost, "/templates", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/templates/"+url.PathEscape(id), nil)
	return err
}

// StartSession asks the gateway to open a new session for templateID.
func (c *Client) StartSession(ctx context.Context, templateID string) (*models.WorkoutSession, error) {
	var out models.WorkoutSession
	req := models.StartSessionRequest{TemplateID: templateID}
	if err := c.sendJSON(ctx, http.MethodPost, "/workout-sessions/start", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActiveSession returns the caller's in-progress session, or nil when
// there is none. Absence is signalled by 204 or an empty body, not an error.
func (c *Client) GetActiveSession(ctx context.Context) (*models.WorkoutSession, error) {
	const path = "/workout-sessions/active"
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var out models.WorkoutSession
	if err := decode(http.MethodGet+" "+path, trimmed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteExercise records that one exercise of a session is done.
func (c *Client) CompleteExercise(ctx context.Context, req models.CompleteExerciseRequest) error {
	return c.sendJSON(ctx, http.MethodPut, "/workout-sessions/exercise/complete", req, nil)
}

func (c *Client) CompleteSession(ctx context.Context, sessionID string) error {
	return c.sendJSON(ctx, http.MethodPut, "/workout-sessions/"+url.PathEscape(sessionID)+"/complete", nil, nil)
}

func (c *Client) AbandonSession(ctx context.Context, sessionID string) error {
	return c.sendJSON(ctx, http.MethodPut, "/workout-sessions/"+url.PathEscape(sessionID)+"/abandon", nil, nil)
}

// SessionHistory lists the caller's finished sessions.
func (c *Client) SessionHistory(ctx context.Context) ([]models.WorkoutSession, error) {
	var out []models.WorkoutSession
	if err := c.getJSON(ctx, "/workout-sessions/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}
