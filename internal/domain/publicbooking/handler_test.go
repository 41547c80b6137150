package publicbooking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/booking"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
)

type fakeAvailability struct {
	lastOwner uuid.UUID
}

func (f *fakeAvailability) GenerateSlots(_ context.Context, ownerID uuid.UUID, date string) ([]scheduling.SlotMark, error) {
	f.lastOwner = ownerID
	start, _ := scheduling.ParseTimeOfDay("09:00")
	end, _ := scheduling.ParseTimeOfDay("09:30")
	return []scheduling.SlotMark{
		{Interval: scheduling.Interval{Date: date, Start: start, End: end}, Available: true},
	}, nil
}

type fakeIntake struct {
	created []*booking.BookingRequest
}

func (f *fakeIntake) CreateRequest(_ context.Context, r *booking.BookingRequest) error {
	if r.FirstName == "" {
		return errors.New("first_name is required")
	}
	r.ID = uuid.New()
	r.Status = booking.StatusPending
	cp := *r
	f.created = append(f.created, &cp)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeIntake, *Setting, *echo.Echo) {
	t.Helper()
	svc := NewService(newMockSettingRepo())
	setting := seedSetting(t, svc, "riverside", true)
	intake := &fakeIntake{}
	h := NewHandler(svc, &fakeAvailability{}, intake)
	return h, intake, setting, echo.New()
}

func TestHandler_GetPage(t *testing.T) {
	h, _, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("riverside")

	if err := h.GetPage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Page Page `json:"page"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Page.Slug != "riverside" || body.Page.DisplayName != "Riverside Clinic" {
		t.Errorf("unexpected page payload: %+v", body.Page)
	}
	if strings.Contains(rec.Body.String(), "clinic_id") || strings.Contains(rec.Body.String(), "owner_id") {
		t.Error("public payload must not expose internal ids")
	}
}

func TestHandler_GetPage_NotFound(t *testing.T) {
	h, _, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("no-such-slug")

	err := h.GetPage(c)
	if err == nil {
		t.Fatal("expected error for unknown slug")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandler_GetAvailability_UsesPageOwner(t *testing.T) {
	h, _, setting, e := newTestHandler(t)
	avail := h.avail.(*fakeAvailability)

	req := httptest.NewRequest(http.MethodGet, "/?date=2024-06-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("riverside")

	if err := h.GetAvailability(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if avail.lastOwner != setting.OwnerID {
		t.Errorf("expected slots for owner %s, got %s", setting.OwnerID, avail.lastOwner)
	}
}

func TestHandler_GetAvailability_MissingDate(t *testing.T) {
	h, _, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("riverside")

	if err := h.GetAvailability(c); err == nil {
		t.Error("expected error for missing date")
	}
}

func TestHandler_CreateRequest_OverridesIdentifiers(t *testing.T) {
	h, intake, setting, e := newTestHandler(t)

	// Client-supplied clinic and owner ids must be ignored.
	body := `{"owner_id":"` + uuid.New().String() + `","clinic_id":"` + uuid.New().String() +
		`","first_name":"Maya","last_name":"Chen","email":"maya@x.com","date":"2024-06-01","start":"09:00","end":"09:30"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("riverside")

	if err := h.CreateRequest(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if len(intake.created) != 1 {
		t.Fatalf("expected 1 request, got %d", len(intake.created))
	}
	got := intake.created[0]
	if got.ClinicID != setting.ClinicID || got.OwnerID != setting.OwnerID {
		t.Errorf("expected request pinned to page clinic/owner, got %s/%s", got.ClinicID, got.OwnerID)
	}
}

func TestHandler_CreateRequest_DisabledPage(t *testing.T) {
	h, intake, _, e := newTestHandler(t)
	seedSetting(t, h.svc, "closed-clinic", false)

	body := `{"first_name":"Maya","last_name":"Chen","email":"maya@x.com","date":"2024-06-01","start":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("closed-clinic")

	err := h.CreateRequest(c)
	if err == nil {
		t.Fatal("expected error for disabled page")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
	if len(intake.created) != 0 {
		t.Errorf("expected no request created, got %d", len(intake.created))
	}
}

func TestHandler_CheckSlug(t *testing.T) {
	h, _, _, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/?slug=riverside", nil)
	rec := httptest.NewRecorder()

	if err := h.CheckSlug(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Available {
		t.Error("expected taken slug to be unavailable")
	}
}

func TestHandler_UpsertSetting_Conflict(t *testing.T) {
	h, _, _, e := newTestHandler(t)

	body := `{"clinic_id":"` + uuid.New().String() + `","owner_id":"` + uuid.New().String() +
		`","enabled":true,"slug":"riverside","display_name":"Other Clinic"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.UpsertSetting(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected conflict error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", httpErr.Code)
	}
}
