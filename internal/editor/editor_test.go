package editor

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"intervention-service/internal/apiclient"
)

type fakeAPI struct {
	mu           sync.Mutex
	zones        []apiclient.Zone
	technicians  []apiclient.Technician
	createID     int64
	createErr    error
	updateErr    error
	deleteErr    error
	createInputs []apiclient.ZoneInput
	updateInputs []apiclient.ZoneInput
	deleteIDs    []int64

	updateStarted chan struct{}
	updateRelease chan struct{}
	deleteStarted chan struct{}
	deleteRelease chan struct{}
}

func (f *fakeAPI) ListZones(ctx context.Context) ([]apiclient.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]apiclient.Zone, len(f.zones))
	copy(out, f.zones)
	return out, nil
}

func (f *fakeAPI) ListTechnicians(ctx context.Context) ([]apiclient.Technician, error) {
	return f.technicians, nil
}

func (f *fakeAPI) CreateZone(ctx context.Context, input apiclient.ZoneInput) (int64, error) {
	f.mu.Lock()
	f.createInputs = append(f.createInputs, input)
	f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createID, nil
}

func (f *fakeAPI) UpdateZone(ctx context.Context, id int64, input apiclient.ZoneInput) (*apiclient.Zone, error) {
	f.mu.Lock()
	f.updateInputs = append(f.updateInputs, input)
	f.mu.Unlock()

	if f.updateStarted != nil {
		f.updateStarted <- struct{}{}
	}
	if f.updateRelease != nil {
		<-f.updateRelease
	}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &apiclient.Zone{
		ID:          id,
		Name:        input.Name,
		Color:       input.Color,
		Coordinates: input.Coordinates,
		Technician:  input.Technician,
	}, nil
}

func (f *fakeAPI) DeleteZone(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.deleteIDs = append(f.deleteIDs, id)
	f.mu.Unlock()

	if f.deleteStarted != nil {
		f.deleteStarted <- struct{}{}
	}
	if f.deleteRelease != nil {
		<-f.deleteRelease
	}
	return f.deleteErr
}

func (f *fakeAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updateInputs)
}

func (f *fakeAPI) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleteIDs)
}

type fakeSurface struct {
	mu     sync.Mutex
	clears int
	shapes []Shape
}

func (s *fakeSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.shapes = nil
}

func (s *fakeSurface) AddShape(shape Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shapes = append(s.shapes, shape)
}

func (s *fakeSurface) shapeIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, len(s.shapes))
	for i, shape := range s.shapes {
		ids[i] = shape.ZoneID
	}
	return ids
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *fakeNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func (n *fakeNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures)
}

func newTestEditor(api *fakeAPI) (*Editor, *fakeSurface, *fakeNotifier) {
	surface := &fakeSurface{}
	notifier := &fakeNotifier{}
	return New(api, surface, notifier, zerolog.Nop()), surface, notifier
}

var testRing = [][2]float64{{4.83, 45.75}, {4.84, 45.75}, {4.84, 45.76}}

func storedZone() apiclient.Zone {
	return apiclient.Zone{
		ID:    1,
		Name:  "Nord",
		Color: "#00FF00",
		Coordinates: []apiclient.Coordinate{
			{Latitude: 45.75, Longitude: 4.83},
			{Latitude: 45.75, Longitude: 4.84},
			{Latitude: 45.76, Longitude: 4.84},
		},
	}
}

func TestHandleDrawSwapsCoordinates(t *testing.T) {
	api := &fakeAPI{createID: 42}
	ed, surface, _ := newTestEditor(api)

	ed.HandleDraw(context.Background(), testRing)

	if len(api.createInputs) != 1 {
		t.Fatalf("got %d create calls, want 1", len(api.createInputs))
	}

	input := api.createInputs[0]
	want := []apiclient.Coordinate{
		{Latitude: 45.75, Longitude: 4.83},
		{Latitude: 45.75, Longitude: 4.84},
		{Latitude: 45.76, Longitude: 4.84},
	}
	for i, coord := range input.Coordinates {
		if coord != want[i] {
			t.Errorf("coordinate %d = %+v, want %+v", i, coord, want[i])
		}
	}

	if !regexp.MustCompile(`^Zone\d+$`).MatchString(input.Name) {
		t.Errorf("placeholder name = %q, want Zone<number>", input.Name)
	}
	if input.Color != "#FF5733" {
		t.Errorf("color = %q, want #FF5733", input.Color)
	}
	if input.Technician != nil {
		t.Errorf("technician = %+v, want nil", input.Technician)
	}

	zones := ed.Zones()
	if len(zones) != 1 || zones[0].ID != 42 {
		t.Fatalf("store = %+v, want single zone with server id 42", zones)
	}
	if ids := surface.shapeIDs(); len(ids) != 1 || ids[0] != 42 {
		t.Errorf("surface shapes tagged %v, want [42]", ids)
	}
}

func TestHandleDrawFailureLeavesStoreUntouched(t *testing.T) {
	api := &fakeAPI{createErr: &apiclient.APIError{StatusCode: 500, Body: "boom"}}
	ed, surface, notifier := newTestEditor(api)

	ed.HandleDraw(context.Background(), testRing)

	if zones := ed.Zones(); len(zones) != 0 {
		t.Errorf("store = %+v, want empty", zones)
	}
	if surface.clears != 0 {
		t.Error("surface was resynced after a failed create")
	}
	if notifier.errorCount() != 1 {
		t.Fatalf("got %d error toasts, want 1", notifier.errorCount())
	}
}

func TestHandleEditDuplicateDropped(t *testing.T) {
	api := &fakeAPI{
		zones:         []apiclient.Zone{storedZone()},
		updateStarted: make(chan struct{}, 1),
		updateRelease: make(chan struct{}),
	}
	ed, _, _ := newTestEditor(api)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		ed.HandleEdit(context.Background(), 1, testRing)
		close(done)
	}()
	<-api.updateStarted

	// Second gesture for the same id while the first is in flight.
	ed.HandleEdit(context.Background(), 1, testRing)

	close(api.updateRelease)
	<-done

	if got := api.updateCount(); got != 1 {
		t.Errorf("got %d update calls, want 1 (duplicate dropped)", got)
	}
}

func TestHandleEditUnknownIDReleasesGuard(t *testing.T) {
	api := &fakeAPI{}
	ed, _, _ := newTestEditor(api)

	ed.HandleEdit(context.Background(), 7, testRing)
	if got := api.updateCount(); got != 0 {
		t.Fatalf("got %d update calls for unknown id, want 0", got)
	}

	// Once the zone exists the same id must be editable again.
	api.mu.Lock()
	zone := storedZone()
	zone.ID = 7
	api.zones = []apiclient.Zone{zone}
	api.mu.Unlock()
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ed.HandleEdit(context.Background(), 7, testRing)
	if got := api.updateCount(); got != 1 {
		t.Errorf("got %d update calls after reload, want 1", got)
	}
}

func TestHandleEditFailureKeepsStoreEntry(t *testing.T) {
	api := &fakeAPI{
		zones:     []apiclient.Zone{storedZone()},
		updateErr: &apiclient.APIError{StatusCode: 500, Body: `{"error":"polygon overlaps"}`},
	}
	ed, _, notifier := newTestEditor(api)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ed.HandleEdit(context.Background(), 1, testRing)

	zones := ed.Zones()
	if len(zones) != 1 || zones[0].Coordinates[0] != storedZone().Coordinates[0] {
		t.Errorf("store entry changed after failed edit: %+v", zones)
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.failures) != 1 || notifier.failures[0] != "polygon overlaps" {
		t.Errorf("error toast = %v, want structured message", notifier.failures)
	}

	// Guard must be released on failure.
	ed.HandleEdit(context.Background(), 1, testRing)
	if got := api.updateCount(); got != 2 {
		t.Errorf("got %d update calls, want 2 (guard released after failure)", got)
	}
}

func TestHandleDeleteDuplicateDroppedSilently(t *testing.T) {
	api := &fakeAPI{
		zones:         []apiclient.Zone{storedZone()},
		deleteStarted: make(chan struct{}, 1),
		deleteRelease: make(chan struct{}),
	}
	ed, _, notifier := newTestEditor(api)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		ed.HandleDelete(context.Background(), 1)
		close(done)
	}()
	<-api.deleteStarted

	ed.HandleDelete(context.Background(), 1)

	close(api.deleteRelease)
	<-done

	if got := api.deleteCount(); got != 1 {
		t.Errorf("got %d delete calls, want 1 (duplicate dropped)", got)
	}
	if notifier.errorCount() != 0 {
		t.Error("duplicate delete raised an error toast; it should be silent")
	}
}

func TestHandleDeleteClearsSelection(t *testing.T) {
	api := &fakeAPI{zones: []apiclient.Zone{storedZone()}}
	ed, surface, _ := newTestEditor(api)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ed.SelectShape(1) {
		t.Fatal("SelectShape(1) = false, want true")
	}

	ed.HandleDelete(context.Background(), 1)

	if zones := ed.Zones(); len(zones) != 0 {
		t.Errorf("store = %+v, want empty", zones)
	}
	if ed.Selected() != nil {
		t.Error("selection survived deleting the selected zone")
	}
	if ids := surface.shapeIDs(); len(ids) != 0 {
		t.Errorf("surface shapes = %v, want none", ids)
	}
}

func TestSelectionReplacedByAnotherClick(t *testing.T) {
	second := storedZone()
	second.ID = 2
	second.Name = "Sud"
	api := &fakeAPI{zones: []apiclient.Zone{storedZone(), second}}
	ed, _, _ := newTestEditor(api)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ed.SelectShape(1)
	ed.SelectShape(2)

	selected := ed.Selected()
	if selected == nil || selected.ID != 2 {
		t.Errorf("Selected() = %+v, want zone 2", selected)
	}
}

func TestSaveSelectedKeepsSelection(t *testing.T) {
	api := &fakeAPI{zones: []apiclient.Zone{storedZone()}}
	ed, _, _ := newTestEditor(api)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ed.SelectShape(1)
	ed.SetSelectedName("Presqu'île")
	ed.SetSelectedColor("#123ABC")
	technician := &apiclient.Technician{ID: 9, FirstName: "Jean", LastName: "Moulin"}
	ed.SetSelectedTechnician(technician)

	ed.SaveSelected(context.Background())

	if got := api.updateCount(); got != 1 {
		t.Fatalf("got %d update calls, want 1", got)
	}
	input := api.updateInputs[0]
	if input.Name != "Presqu'île" || input.Color != "#123ABC" || input.Technician == nil {
		t.Errorf("update input = %+v, panel edits missing", input)
	}

	zones := ed.Zones()
	if len(zones) != 1 || zones[0].Name != "Presqu'île" {
		t.Errorf("store entry not replaced after save: %+v", zones)
	}

	selected := ed.Selected()
	if selected == nil || selected.Name != "Presqu'île" {
		t.Errorf("Selected() = %+v, want saved zone still selected", selected)
	}
}
