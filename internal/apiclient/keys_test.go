package apiclient

import (
	"reflect"
	"testing"
)

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"first_name", "firstName"},
		{"technician_first_name", "technicianFirstName"},
		{"intervention_type", "interventionType"},
		{"id", "id"},
		{"starting_price", "startingPrice"},
	}

	for _, tt := range tests {
		if got := snakeToCamel(tt.in); got != tt.want {
			t.Errorf("snakeToCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"firstName", "first_name"},
		{"technicianFirstName", "technician_first_name"},
		{"startAt", "start_at"},
		{"color", "color"},
	}

	for _, tt := range tests {
		if got := camelToSnake(tt.in); got != tt.want {
			t.Errorf("camelToSnake(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertKeysToCamelNested(t *testing.T) {
	in := map[string]any{
		"client_name": "Dupont",
		"intervention_type": map[string]any{
			"starting_price": 35.0,
		},
		"coordinates": []any{
			map[string]any{"latitude": 45.75, "longitude": 4.83},
		},
	}

	want := map[string]any{
		"clientName": "Dupont",
		"interventionType": map[string]any{
			"startingPrice": 35.0,
		},
		"coordinates": []any{
			map[string]any{"latitude": 45.75, "longitude": 4.83},
		},
	}

	if got := ConvertKeysToCamel(in); !reflect.DeepEqual(got, want) {
		t.Errorf("ConvertKeysToCamel() = %#v, want %#v", got, want)
	}
}

func TestConvertKeysRoundTrip(t *testing.T) {
	original := map[string]any{
		"first_name": "Jean",
		"roles":      []any{"ROLE_TECHNICIEN"},
		"planning": map[string]any{
			"model_interventions": []any{
				map[string]any{"intervention_time": "09:00:00"},
			},
		},
	}

	got := ConvertKeysToSnake(ConvertKeysToCamel(original))
	if !reflect.DeepEqual(got, original) {
		t.Errorf("round trip = %#v, want %#v", got, original)
	}
}
