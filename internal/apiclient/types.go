package apiclient

import "time"

// View types mirror the dashboard's in-memory shapes: camelCase JSON tags,
// translated to snake_case at the wire boundary by the client.

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Technician struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Zone struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Color       string       `json:"color"`
	Coordinates []Coordinate `json:"coordinates"`
	Technician  *Technician  `json:"technician"`
}

type User struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

type InterventionType struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Duration      string  `json:"duration"`
	StartingPrice float64 `json:"startingPrice"`
}

type ModelIntervention struct {
	ID               int64            `json:"id"`
	InterventionType InterventionType `json:"interventionType"`
	InterventionTime string           `json:"interventionTime"`
}

type PlanningModel struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	ModelInterventions []ModelIntervention `json:"modelInterventions"`
}

type Intervention struct {
	ID               int64            `json:"id"`
	InterventionType InterventionType `json:"interventionType"`
	Technician       *Technician      `json:"technician"`
	Address          string           `json:"address"`
	ClientName       string           `json:"clientName"`
	Price            float64          `json:"price"`
	StartAt          time.Time        `json:"startAt"`
	EndAt            time.Time        `json:"endAt"`
}

type UpcomingIntervention struct {
	InterventionID      int64     `json:"interventionId"`
	Address             string    `json:"address"`
	StartAt             time.Time `json:"startAt"`
	EndAt               time.Time `json:"endAt"`
	TechnicianFirstName string    `json:"technicianFirstName"`
	TechnicianLastName  string    `json:"technicianLastName"`
	InterventionType    string    `json:"interventionType"`
}

type MonthlyStat struct {
	Month       string `json:"month"`
	Maintenance int64  `json:"maintenance"`
	Repair      int64  `json:"repair"`
}
