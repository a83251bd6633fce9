package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, StaticTokenSource("test-token"), zerolog.Nop())
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	if _, err := client.ListZones(context.Background()); err != nil {
		t.Fatalf("ListZones() error = %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
}

func TestClientMissingTokenIsHardError(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	client := New(server.URL, StaticTokenSource(""), zerolog.Nop())
	_, err := client.ListZones(context.Background())
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("ListZones() error = %v, want ErrMissingToken", err)
	}
	if requested {
		t.Error("request was sent despite missing token")
	}
}

func TestClientNon2xxEmbedsStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := client.ListZones(context.Background())
	if err == nil {
		t.Fatal("ListZones() error = nil, want APIError")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error message %q should contain status and body", err.Error())
	}
}

func TestClientConvertsResponseKeysToCamel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"name":"Nord","color":"#FF5733","coordinates":[{"latitude":45.75,"longitude":4.83}],"technician":{"id":7,"first_name":"Jean","last_name":"Moulin"}}]`))
	})

	zones, err := client.ListZones(context.Background())
	if err != nil {
		t.Fatalf("ListZones() error = %v", err)
	}
	if len(zones) != 1 {
		t.Fatalf("got %d zones, want 1", len(zones))
	}

	zone := zones[0]
	if zone.Technician == nil || zone.Technician.FirstName != "Jean" {
		t.Errorf("technician first name not decoded from snake_case: %+v", zone.Technician)
	}
	if len(zone.Coordinates) != 1 || zone.Coordinates[0].Latitude != 45.75 {
		t.Errorf("coordinates not decoded: %+v", zone.Coordinates)
	}
}

func TestClientConvertsRequestKeysToSnake(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Write([]byte(`{"id":1}`))
	})

	_, err := client.CreateIntervention(context.Background(), InterventionInput{
		InterventionType: 2,
		StartAt:          "2026-03-02 09:00",
		ClientName:       "Dupont",
	})
	if err != nil {
		t.Fatalf("CreateIntervention() error = %v", err)
	}

	for _, key := range []string{"intervention_type", "start_at", "client_name"} {
		if _, ok := gotBody[key]; !ok {
			t.Errorf("request body missing snake_case key %q: %v", key, gotBody)
		}
	}
	if _, ok := gotBody["clientName"]; ok {
		t.Error("request body still carries camelCase key clientName")
	}
}

func TestCookieTokenSource(t *testing.T) {
	jar := newStubJar(&http.Cookie{Name: "hch_token", Value: "cookie-token"})

	source := &CookieTokenSource{Jar: jar, URL: nil}
	token, err := source.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "cookie-token" {
		t.Errorf("Token() = %q, want %q", token, "cookie-token")
	}

	empty := &CookieTokenSource{Jar: newStubJar(), URL: nil}
	if _, err := empty.Token(); !errors.Is(err, ErrMissingToken) {
		t.Errorf("Token() error = %v, want ErrMissingToken", err)
	}
}

type stubJar struct {
	cookies []*http.Cookie
}

func newStubJar(cookies ...*http.Cookie) *stubJar {
	return &stubJar{cookies: cookies}
}

func (j *stubJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.cookies = append(j.cookies, cookies...)
}

func (j *stubJar) Cookies(u *url.URL) []*http.Cookie {
	return j.cookies
}
