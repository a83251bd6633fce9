package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

type UserInput struct {
	Email     string   `json:"email"`
	Password  string   `json:"password,omitempty"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListTechnicians returns the reduced technician view used by the zone
// editor's assignment dropdown.
func (c *Client) ListTechnicians(ctx context.Context) ([]Technician, error) {
	var technicians []Technician
	if err := c.do(ctx, http.MethodGet, "users/role-ROLE_TECHNICIEN", nil, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("users/%d", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("users/%d", id), nil, nil)
}
