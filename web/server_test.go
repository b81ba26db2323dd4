package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"house-tracker/catalog"
	"house-tracker/models"
	"house-tracker/utils"
)

func newTestServer(t *testing.T, props []models.Property) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.json")
	if err := catalog.Save(path, props); err != nil {
		t.Fatal(err)
	}
	return NewServer(utils.NewLogger(), path)
}

func TestHandleProperties(t *testing.T) {
	want := []models.Property{
		{ID: "a", Address: "Marknagilsvegur 50", Agent: models.AgentBetri, Price: 3995000, PreviousPrices: []int{}},
	}
	s := newTestServer(t, want)

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got []models.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	if len(got) != 1 || got[0].Address != "Marknagilsvegur 50" {
		t.Errorf("response = %+v", got)
	}
}

func TestHandleIndex(t *testing.T) {
	s := newTestServer(t, []models.Property{
		{ID: "a", Address: "Marknagilsvegur 50", City: "Tórshavn", Price: 3995000},
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Marknagilsvegur 50") || !strings.Contains(body, "Tórshavn") {
		t.Errorf("page does not list the property:\n%s", body)
	}
}

func TestHandleIndexEmptyCatalog(t *testing.T) {
	// The snapshot file does not exist yet; the page must still render.
	s := NewServer(utils.NewLogger(), filepath.Join(t.TempDir(), "nope.json"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200 for an empty catalog", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "0 properties") {
		t.Errorf("page = %q; want the zero count", rec.Body.String())
	}
}
