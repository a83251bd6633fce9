package editor

import "intervention-service/internal/apiclient"

// Shape is one polygon projected onto the drawing surface, tagged with the
// id of the zone it renders so clicks can be mapped back to store records.
type Shape struct {
	ZoneID int64
	Color  string
	Ring   []apiclient.Coordinate
}

// DrawingSurface is whatever renders the zones (a map widget, a test fake).
// The editor never mutates shapes in place: it clears and rebuilds the whole
// surface after every store change.
type DrawingSurface interface {
	Clear()
	AddShape(shape Shape)
}

// Notifier surfaces operation outcomes to the operator.
type Notifier interface {
	Success(message string)
	Error(message string)
}
