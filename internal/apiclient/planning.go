package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

type ModelInterventionInput struct {
	PlanningModel    int64  `json:"planningModel"`
	InterventionType int64  `json:"interventionType"`
	InterventionTime string `json:"interventionTime"`
}

type GenerateInput struct {
	Model       int64   `json:"model"`
	Technicians []int64 `json:"technicians"`
	From        string  `json:"from"`
	To          string  `json:"to"`
}

func (c *Client) ListPlanningModels(ctx context.Context) ([]PlanningModel, error) {
	var models []PlanningModel
	if err := c.do(ctx, http.MethodGet, "modeles-planning", nil, &models); err != nil {
		return nil, err
	}
	return models, nil
}

func (c *Client) GetPlanningModel(ctx context.Context, id int64) (*PlanningModel, error) {
	var planningModel PlanningModel
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("modeles-planning/%d", id), nil, &planningModel); err != nil {
		return nil, err
	}
	return &planningModel, nil
}

func (c *Client) CreatePlanningModel(ctx context.Context, name string) (*PlanningModel, error) {
	body := map[string]string{"name": name}
	var planningModel PlanningModel
	if err := c.do(ctx, http.MethodPost, "modeles-planning", body, &planningModel); err != nil {
		return nil, err
	}
	return &planningModel, nil
}

func (c *Client) DeletePlanningModel(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("modeles-planning/%d", id), nil, nil)
}

func (c *Client) CreateModelIntervention(ctx context.Context, input ModelInterventionInput) (*ModelIntervention, error) {
	var slot ModelIntervention
	if err := c.do(ctx, http.MethodPost, "modele-interventions", input, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *Client) DeleteModelIntervention(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("modele-interventions/%d", id), nil, nil)
}

// GenerateInterventions applies a planning model to technicians over a date
// range and returns the number of interventions created.
func (c *Client) GenerateInterventions(ctx context.Context, input GenerateInput) (int, error) {
	var result struct {
		Created int `json:"created"`
	}
	if err := c.do(ctx, http.MethodPost, "new-interventions", input, &result); err != nil {
		return 0, err
	}
	return result.Created, nil
}
