package patient

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/glowdesk/glowdesk/internal/platform/auth"
	"github.com/glowdesk/glowdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "provider", "aesthetician", "front-desk")

	g := api.Group("", role)
	g.GET("/patients", h.ListPatients)
	g.POST("/patients", h.CreatePatient)
	g.GET("/patients/:id", h.GetPatient)
	g.GET("/leads", h.ListLeads)
	g.POST("/leads", h.CreateLead)
	g.GET("/leads/:id", h.GetLead)
}

func (h *Handler) ListPatients(c echo.Context) error { return h.list(c, TablePatients) }
func (h *Handler) ListLeads(c echo.Context) error    { return h.list(c, TableLeads) }

func (h *Handler) list(c echo.Context, table string) error {
	p := pagination.FromContext(c)
	records, total, err := h.svc.List(c.Request().Context(), table, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, p.Limit, p.Offset))
}

func (h *Handler) CreatePatient(c echo.Context) error { return h.create(c, TablePatients) }
func (h *Handler) CreateLead(c echo.Context) error    { return h.create(c, TableLeads) }

func (h *Handler) create(c echo.Context, table string) error {
	var rec Record
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), table, &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetPatient(c echo.Context) error { return h.get(c, TablePatients) }
func (h *Handler) GetLead(c echo.Context) error    { return h.get(c, TableLeads) }

func (h *Handler) get(c echo.Context, table string) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	rec, err := h.svc.Get(c.Request().Context(), table, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	}
	return c.JSON(http.StatusOK, rec)
}
