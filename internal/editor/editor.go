package editor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"intervention-service/internal/apiclient"
)

const defaultZoneColor = "#FF5733"

// ZoneAPI is the slice of the dashboard API the editor needs.
// *apiclient.Client satisfies it.
type ZoneAPI interface {
	ListZones(ctx context.Context) ([]apiclient.Zone, error)
	CreateZone(ctx context.Context, input apiclient.ZoneInput) (int64, error)
	UpdateZone(ctx context.Context, id int64, input apiclient.ZoneInput) (*apiclient.Zone, error)
	DeleteZone(ctx context.Context, id int64) error
	ListTechnicians(ctx context.Context) ([]apiclient.Technician, error)
}

// Editor owns the zone store and reconciles it against a drawing surface.
// Gesture callbacks may arrive from any goroutine, so all state is guarded
// by a mutex; network calls happen outside the lock so a duplicate gesture
// for a busy id is dropped instead of queued behind it.
type Editor struct {
	api      ZoneAPI
	surface  DrawingSurface
	notifier Notifier
	log      zerolog.Logger

	mu          sync.Mutex
	zones       []apiclient.Zone
	technicians []apiclient.Technician
	selected    *apiclient.Zone
	editingIDs  map[int64]struct{}
	deletingIDs map[int64]struct{}
}

func New(api ZoneAPI, surface DrawingSurface, notifier Notifier, log zerolog.Logger) *Editor {
	return &Editor{
		api:         api,
		surface:     surface,
		notifier:    notifier,
		log:         log,
		editingIDs:  make(map[int64]struct{}),
		deletingIDs: make(map[int64]struct{}),
	}
}

// Load replaces the store wholesale from the server and rebuilds the
// surface. The selection survives only if its zone still exists.
func (e *Editor) Load(ctx context.Context) error {
	zones, err := e.api.ListZones(ctx)
	if err != nil {
		return err
	}
	technicians, err := e.api.ListTechnicians(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.zones = zones
	e.technicians = technicians
	if e.selected != nil {
		if refreshed, ok := e.findZoneLocked(e.selected.ID); ok {
			e.selected = &refreshed
		} else {
			e.selected = nil
		}
	}
	e.resyncLocked()
	return nil
}

// Zones returns a snapshot of the store.
func (e *Editor) Zones() []apiclient.Zone {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]apiclient.Zone, len(e.zones))
	copy(out, e.zones)
	return out
}

func (e *Editor) Technicians() []apiclient.Technician {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]apiclient.Technician, len(e.technicians))
	copy(out, e.technicians)
	return out
}

// HandleDraw handles a completed draw gesture. The ring arrives in the
// surface's [longitude, latitude] order and is swapped into coordinate
// pairs before being persisted. The store only gains the zone once the
// server has assigned it an id.
func (e *Editor) HandleDraw(ctx context.Context, ring [][2]float64) {
	input := apiclient.ZoneInput{
		Name:        fmt.Sprintf("Zone%d", rand.Int64N(1_000_000_000)),
		Color:       defaultZoneColor,
		Coordinates: swapRing(ring),
	}

	id, err := e.api.CreateZone(ctx, input)
	if err != nil {
		e.notifier.Error(extractErrorMessage(err))
		return
	}

	e.mu.Lock()
	e.zones = append(e.zones, apiclient.Zone{
		ID:          id,
		Name:        input.Name,
		Color:       input.Color,
		Coordinates: input.Coordinates,
	})
	e.resyncLocked()
	e.mu.Unlock()

	e.notifier.Success("zone created")
}

// HandleEdit handles a reshaped polygon. At most one edit per zone id is in
// flight at a time; a duplicate gesture for a busy id is dropped outright.
func (e *Editor) HandleEdit(ctx context.Context, zoneID int64, ring [][2]float64) {
	e.mu.Lock()
	if _, busy := e.editingIDs[zoneID]; busy {
		e.mu.Unlock()
		e.log.Debug().Int64("zone_id", zoneID).Msg("edit already in flight, dropped")
		return
	}
	e.editingIDs[zoneID] = struct{}{}

	record, ok := e.findZoneLocked(zoneID)
	if !ok {
		delete(e.editingIDs, zoneID)
		e.mu.Unlock()
		e.log.Warn().Int64("zone_id", zoneID).Msg("edited shape has no store record")
		return
	}
	record.Coordinates = swapRing(ring)
	e.mu.Unlock()

	e.submitUpdate(ctx, record)
}

// HandleDelete removes a zone. Duplicate deletes for a busy id are dropped
// silently; the operator already asked for exactly this outcome.
func (e *Editor) HandleDelete(ctx context.Context, zoneID int64) {
	e.mu.Lock()
	if _, busy := e.deletingIDs[zoneID]; busy {
		e.mu.Unlock()
		e.log.Debug().Int64("zone_id", zoneID).Msg("delete already in flight, dropped")
		return
	}
	e.deletingIDs[zoneID] = struct{}{}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.deletingIDs, zoneID)
		e.mu.Unlock()
	}()

	if err := e.api.DeleteZone(ctx, zoneID); err != nil {
		e.notifier.Error(extractErrorMessage(err))
		return
	}

	e.mu.Lock()
	e.removeZoneLocked(zoneID)
	if e.selected != nil && e.selected.ID == zoneID {
		e.selected = nil
	}
	e.resyncLocked()
	e.mu.Unlock()

	e.notifier.Success("zone deleted")
}

// SelectShape maps a shape click to a selection. Clicking another shape
// replaces the current selection.
func (e *Editor) SelectShape(zoneID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	record, ok := e.findZoneLocked(zoneID)
	if !ok {
		return false
	}
	e.selected = &record
	return true
}

func (e *Editor) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = nil
}

// Selected returns a copy of the current selection, or nil.
func (e *Editor) Selected() *apiclient.Zone {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == nil {
		return nil
	}
	selected := *e.selected
	return &selected
}

func (e *Editor) SetSelectedName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != nil {
		e.selected.Name = name
	}
}

func (e *Editor) SetSelectedColor(color string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != nil {
		e.selected.Color = color
	}
}

func (e *Editor) SetSelectedTechnician(technician *apiclient.Technician) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != nil {
		e.selected.Technician = technician
	}
}

// SaveSelected submits the panel edits through the same guarded update path
// the reshape gesture uses. The selection survives a successful save.
func (e *Editor) SaveSelected(ctx context.Context) {
	e.mu.Lock()
	if e.selected == nil {
		e.mu.Unlock()
		return
	}
	zone := *e.selected
	if _, busy := e.editingIDs[zone.ID]; busy {
		e.mu.Unlock()
		e.log.Debug().Int64("zone_id", zone.ID).Msg("edit already in flight, dropped")
		return
	}
	e.editingIDs[zone.ID] = struct{}{}
	e.mu.Unlock()

	e.submitUpdate(ctx, zone)
}

// submitUpdate performs the network half of an edit. The caller must have
// claimed the id in editingIDs; it is released here no matter what.
func (e *Editor) submitUpdate(ctx context.Context, zone apiclient.Zone) {
	defer func() {
		e.mu.Lock()
		delete(e.editingIDs, zone.ID)
		e.mu.Unlock()
	}()

	saved, err := e.api.UpdateZone(ctx, zone.ID, apiclient.ZoneInput{
		Name:        zone.Name,
		Color:       zone.Color,
		Coordinates: zone.Coordinates,
		Technician:  zone.Technician,
	})
	if err != nil {
		e.notifier.Error(extractErrorMessage(err))
		return
	}

	e.mu.Lock()
	e.replaceZoneLocked(*saved)
	if e.selected != nil && e.selected.ID == saved.ID {
		refreshed := *saved
		e.selected = &refreshed
	}
	e.resyncLocked()
	e.mu.Unlock()

	e.notifier.Success("zone updated")
}

// resyncLocked rebuilds the whole surface from the store. Full clear and
// redraw keeps the surface a pure projection of the store.
func (e *Editor) resyncLocked() {
	e.surface.Clear()
	for _, zone := range e.zones {
		e.surface.AddShape(Shape{
			ZoneID: zone.ID,
			Color:  zone.Color,
			Ring:   zone.Coordinates,
		})
	}
}

func (e *Editor) findZoneLocked(zoneID int64) (apiclient.Zone, bool) {
	for _, zone := range e.zones {
		if zone.ID == zoneID {
			return zone, true
		}
	}
	return apiclient.Zone{}, false
}

func (e *Editor) replaceZoneLocked(zone apiclient.Zone) {
	for i := range e.zones {
		if e.zones[i].ID == zone.ID {
			e.zones[i] = zone
			return
		}
	}
}

func (e *Editor) removeZoneLocked(zoneID int64) {
	for i := range e.zones {
		if e.zones[i].ID == zoneID {
			e.zones = append(e.zones[:i], e.zones[i+1:]...)
			return
		}
	}
}

// swapRing converts a surface ring, which arrives [longitude, latitude],
// into coordinate pairs.
func swapRing(ring [][2]float64) []apiclient.Coordinate {
	coordinates := make([]apiclient.Coordinate, len(ring))
	for i, point := range ring {
		coordinates[i] = apiclient.Coordinate{
			Latitude:  point[1],
			Longitude: point[0],
		}
	}
	return coordinates
}
