package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

// ZoneInput is the create/update payload for a maintenance zone.
type ZoneInput struct {
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Coordinates []Coordinate `json:"coordinates"`
	Technician  *Technician  `json:"technician,omitempty"`
}

func (c *Client) ListZones(ctx context.Context) ([]Zone, error) {
	var zones []Zone
	if err := c.do(ctx, http.MethodGet, "zones", nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// CreateZone persists a new zone and returns the id assigned by the server.
func (c *Client) CreateZone(ctx context.Context, input ZoneInput) (int64, error) {
	var result struct {
		ID int64 `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "zones", input, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

func (c *Client) UpdateZone(ctx context.Context, id int64, input ZoneInput) (*Zone, error) {
	var zone Zone
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("zones/%d/edit", id), input, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

func (c *Client) DeleteZone(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("zones/%d", id), nil, nil)
}
