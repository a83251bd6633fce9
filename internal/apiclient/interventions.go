package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type InterventionInput struct {
	InterventionType int64  `json:"interventionType"`
	Technician       *int64 `json:"technician,omitempty"`
	StartAt          string `json:"startAt"`
	Address          string `json:"address"`
	ClientName       string `json:"clientName"`
}

type BulkDeleteInput struct {
	Technicians []int64 `json:"technicians"`
	From        string  `json:"from"`
	To          string  `json:"to"`
}

func (c *Client) CreateIntervention(ctx context.Context, input InterventionInput) (*Intervention, error) {
	var intervention Intervention
	if err := c.do(ctx, http.MethodPost, "interventions", input, &intervention); err != nil {
		return nil, err
	}
	return &intervention, nil
}

func (c *Client) DeleteIntervention(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("interventions/%d", id), nil, nil)
}

// BulkDeleteInterventions clears the interventions of the given technicians
// over an inclusive date range and returns how many were removed.
func (c *Client) BulkDeleteInterventions(ctx context.Context, input BulkDeleteInput) (int64, error) {
	var result struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, "interventions/delete", input, &result); err != nil {
		return 0, err
	}
	return result.Deleted, nil
}

func (c *Client) InterventionStats(ctx context.Context) ([]MonthlyStat, error) {
	var stats []MonthlyStat
	if err := c.do(ctx, http.MethodGet, "interventions/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) NextInterventions(ctx context.Context) ([]UpcomingIntervention, error) {
	var upcoming []UpcomingIntervention
	if err := c.do(ctx, http.MethodGet, "interventions/next-interventions", nil, &upcoming); err != nil {
		return nil, err
	}
	return upcoming, nil
}

func (c *Client) InterventionsByTechnician(ctx context.Context, technicianID int64, from, to *time.Time) ([]Intervention, error) {
	path := fmt.Sprintf("interventions/technicien/%d", technicianID)
	query := url.Values{}
	if from != nil {
		query.Set("from", from.Format("2006-01-02"))
	}
	if to != nil {
		query.Set("to", to.Format("2006-01-02"))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var interventions []Intervention
	if err := c.do(ctx, http.MethodGet, path, nil, &interventions); err != nil {
		return nil, err
	}
	return interventions, nil
}
