package publicbooking

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/booking"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

// Availability is the slice of the scheduling service the public page needs.
type Availability interface {
	GenerateSlots(ctx context.Context, ownerID uuid.UUID, date string) ([]scheduling.SlotMark, error)
}

// RequestIntake accepts patient-submitted booking requests.
type RequestIntake interface {
	CreateRequest(ctx context.Context, r *booking.BookingRequest) error
}

type Handler struct {
	svc      *Service
	avail    Availability
	requests RequestIntake
}

func NewHandler(svc *Service, avail Availability, requests RequestIntake) *Handler {
	return &Handler{svc: svc, avail: avail, requests: requests}
}

// RegisterPublicRoutes mounts the unauthenticated surface. Every route
// resolves the slug first; nothing is reachable for a disabled page.
func (h *Handler) RegisterPublicRoutes(public *echo.Group) {
	public.GET("/:slug", h.GetPage)
	public.GET("/:slug/availability", h.GetAvailability)
	public.POST("/:slug/booking-requests", h.CreateRequest)
}

func (h *Handler) RegisterStaffRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "staff"))
	g.GET("/booking-settings", h.GetSetting)
	g.PUT("/booking-settings", h.UpsertSetting)
	g.GET("/booking-settings/slug-check", h.CheckSlug)
}

func (h *Handler) GetPage(c echo.Context) error {
	setting, err := h.svc.Resolve(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := map[string]interface{}{"page": setting.Page()}
	if date := c.QueryParam("date"); date != "" {
		slots, err := h.avail.GenerateSlots(c.Request().Context(), setting.OwnerID, date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		resp["date"] = date
		resp["slots"] = slots
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetAvailability(c echo.Context) error {
	setting, err := h.svc.Resolve(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}
	slots, err := h.avail.GenerateSlots(c.Request().Context(), setting.OwnerID, date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":  date,
		"slots": slots,
	})
}

func (h *Handler) CreateRequest(c echo.Context) error {
	setting, err := h.svc.Resolve(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	var r booking.BookingRequest
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The page decides which clinic and calendar the request lands on;
	// client-supplied identifiers are ignored.
	r.ClinicID = setting.ClinicID
	r.OwnerID = setting.OwnerID
	if err := h.requests.CreateRequest(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"id":     r.ID.String(),
		"status": r.Status,
	})
}

func (h *Handler) GetSetting(c echo.Context) error {
	clinicID, err := uuid.Parse(c.QueryParam("clinic"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid clinic")
	}
	setting, err := h.svc.GetSetting(c.Request().Context(), clinicID)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *Handler) UpsertSetting(c echo.Context) error {
	var setting Setting
	if err := c.Bind(&setting); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpsertSetting(c.Request().Context(), &setting); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *Handler) CheckSlug(c echo.Context) error {
	slug := c.QueryParam("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug query parameter is required")
	}
	var exclude uuid.UUID
	if v := c.QueryParam("clinic"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid clinic")
		}
		exclude = id
	}
	available, err := h.svc.CheckSlugAvailable(c.Request().Context(), slug, exclude)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"slug":      slug,
		"available": available,
	})
}
