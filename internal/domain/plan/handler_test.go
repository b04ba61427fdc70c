package plan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo, *mockStore) {
	store := &mockStore{}
	svc := newTestPlanService(store)
	return NewHandler(svc), echo.New(), store
}

func openTestSession(t *testing.T, h *Handler, patientID string) {
	t.Helper()
	if _, err := h.svc.OpenSession(context.Background(), patientID, "patients"); err != nil {
		t.Fatalf("open session: %v", err)
	}
}

func TestHandler_OpenSession(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"source_table":"patients"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.OpenSession(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_GetPlan_NoSession(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.GetPlan(c); err == nil {
		t.Error("expected error")
	}
}

func TestHandler_AddEntry(t *testing.T) {
	defer stubIDs()()
	h, e, _ := newTestHandler()
	openTestSession(t, h, "p1")

	body := `{"mode":"goal","goal":"Smoothen Fine Lines","treatments":["Neurotoxin"],"products":{"Neurotoxin":["Botox"]},"quantity_value":"20","quantity_unit":"Units","timeline":"Now"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.AddEntry(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var resp planResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Sections) != 1 || resp.Sections[0].Section != SectionNow {
		t.Errorf("unexpected sections: %+v", resp.Sections)
	}
	if got := resp.Sections[0].Items[0].Quantity; got != "20 Units" {
		t.Errorf("expected quantity %q, got %q", "20 Units", got)
	}
}

func TestHandler_AddEntry_NothingSelected(t *testing.T) {
	h, e, _ := newTestHandler()
	openTestSession(t, h, "p1")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"mode":"treatment"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.AddEntry(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for validation no-op, got %d", rec.Code)
	}
}

func TestHandler_MoveItem_UnknownSection(t *testing.T) {
	h, e, _ := newTestHandler()
	openTestSession(t, h, "p1")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"section":"Backlog"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "itemID")
	c.SetParamValues("p1", "x")
	err := h.MoveItem(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_CompleteItem(t *testing.T) {
	defer stubIDs()()
	h, e, _ := newTestHandler()
	openTestSession(t, h, "p1")
	ed, _ := h.svc.Editor("p1")
	ed.AddItems(context.Background(), []Item{{ID: "a", Treatment: "Kybella", Timeline: TimelineNow}})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "itemID")
	c.SetParamValues("p1", "a")
	if err := h.CompleteItem(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ed.Items()[0].Timeline != TimelineCompleted {
		t.Errorf("item not completed: %+v", ed.Items()[0])
	}
}

func TestHandler_RemoveFlow(t *testing.T) {
	h, e, _ := newTestHandler()
	openTestSession(t, h, "p1")
	ed, _ := h.svc.Editor("p1")
	ed.AddItems(context.Background(), []Item{{ID: "a", Treatment: "Kybella"}})

	run := func(fn echo.HandlerFunc) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id", "itemID")
		c.SetParamValues("p1", "a")
		if err := fn(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec
	}

	run(h.RequestRemove)
	if len(ed.Items()) != 1 {
		t.Fatal("item removed before confirmation")
	}
	run(h.ConfirmRemove)
	if len(ed.Items()) != 0 {
		t.Fatal("item not removed after confirmation")
	}
}

func TestHandler_PostCareSuggestions_RequiresTreatment(t *testing.T) {
	h, e, _ := newTestHandler()
	openTestSession(t, h, "p1")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.PostCareSuggestions(c); err == nil {
		t.Error("expected error")
	}
}

func TestHandler_ListReferenceData(t *testing.T) {
	h, e, _ := newTestHandler()
	for name, fn := range map[string]echo.HandlerFunc{
		"goals": h.ListGoals, "findings": h.ListFindings, "treatments": h.ListTreatments,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := fn(c); err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", name, rec.Code)
		}
	}
}

func TestHandler_GetTreatment(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("Neurotoxin")
	if err := h.GetTreatment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetTreatment_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("Nonexistent")
	if err := h.GetTreatment(c); err == nil {
		t.Error("expected error")
	}
}
