package plan

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/glowdesk/glowdesk/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	role := auth.RequireRole("admin", "provider", "aesthetician")

	g := api.Group("", role)
	g.POST("/patients/:id/plan/session", h.OpenSession)
	g.DELETE("/patients/:id/plan/session", h.CloseSession)
	g.GET("/patients/:id/plan", h.GetPlan)
	g.POST("/patients/:id/plan/items", h.AddEntry)
	g.PUT("/patients/:id/plan/items/:itemID", h.EditItem)
	g.POST("/patients/:id/plan/items/:itemID/move", h.MoveItem)
	g.POST("/patients/:id/plan/items/:itemID/complete", h.CompleteItem)
	g.POST("/patients/:id/plan/items/:itemID/complete-readd", h.CompleteAndReadd)
	g.POST("/patients/:id/plan/items/:itemID/add-again", h.AddAgain)
	g.POST("/patients/:id/plan/items/:itemID/remove", h.RequestRemove)
	g.POST("/patients/:id/plan/items/:itemID/remove/confirm", h.ConfirmRemove)
	g.DELETE("/patients/:id/plan/items/:itemID/remove", h.CancelRemove)
	g.GET("/patients/:id/plan/post-care", h.PostCareSuggestions)
	g.POST("/patients/:id/plan/post-care", h.AddPostCareProduct)

	g.GET("/reference/goals", h.ListGoals)
	g.GET("/reference/findings", h.ListFindings)
	g.GET("/reference/treatments", h.ListTreatments)
	g.GET("/reference/treatments/:name", h.GetTreatment)
}

type openSessionRequest struct {
	SourceTable string `json:"source_table"`
}

type planResponse struct {
	PatientID string         `json:"patient_id"`
	Revision  int64          `json:"revision"`
	Sections  []SectionGroup `json:"sections"`
}

func (h *Handler) planJSON(c echo.Context, status int, ed *Editor) error {
	return c.JSON(status, planResponse{
		PatientID: ed.PatientID(),
		Revision:  ed.Revision(),
		Sections:  ed.Sections(),
	})
}

func (h *Handler) OpenSession(c echo.Context) error {
	var req openSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SourceTable == "" {
		req.SourceTable = "patients"
	}
	ed, err := h.svc.OpenSession(c.Request().Context(), c.Param("id"), req.SourceTable)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return h.planJSON(c, http.StatusCreated, ed)
}

func (h *Handler) CloseSession(c echo.Context) error {
	h.svc.CloseSession(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetPlan(c echo.Context) error {
	ed, err := h.svc.Editor(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return h.planJSON(c, http.StatusOK, ed)
}

func (h *Handler) AddEntry(c echo.Context) error {
	var req AddEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	added, err := h.svc.ComposeAndAdd(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.commitError(err)
	}
	if added == 0 {
		// Nothing selected; the add control should have been disabled.
		return c.NoContent(http.StatusNoContent)
	}
	ed, err := h.svc.Editor(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return h.planJSON(c, http.StatusCreated, ed)
}

func (h *Handler) EditItem(c echo.Context) error {
	var f EditFields
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.itemOp(c, func(ed *Editor) error {
		return ed.Edit(c.Request().Context(), c.Param("itemID"), f)
	})
}

type moveRequest struct {
	Section Section `json:"section"`
}

func (h *Handler) MoveItem(c echo.Context) error {
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !ValidSection(req.Section) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown section")
	}
	return h.itemOp(c, func(ed *Editor) error {
		return ed.Move(c.Request().Context(), c.Param("itemID"), req.Section)
	})
}

func (h *Handler) CompleteItem(c echo.Context) error {
	return h.itemOp(c, func(ed *Editor) error {
		return ed.MarkCompleted(c.Request().Context(), c.Param("itemID"))
	})
}

func (h *Handler) CompleteAndReadd(c echo.Context) error {
	return h.itemOp(c, func(ed *Editor) error {
		return ed.CompleteAndReadd(c.Request().Context(), c.Param("itemID"))
	})
}

func (h *Handler) AddAgain(c echo.Context) error {
	return h.itemOp(c, func(ed *Editor) error {
		return ed.AddAgain(c.Request().Context(), c.Param("itemID"))
	})
}

func (h *Handler) RequestRemove(c echo.Context) error {
	return h.itemOp(c, func(ed *Editor) error {
		return ed.RequestRemove(c.Param("itemID"))
	})
}

func (h *Handler) ConfirmRemove(c echo.Context) error {
	return h.itemOp(c, func(ed *Editor) error {
		return ed.ConfirmRemove(c.Request().Context())
	})
}

func (h *Handler) CancelRemove(c echo.Context) error {
	ed, err := h.svc.Editor(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	ed.CancelRemove()
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) itemOp(c echo.Context, op func(*Editor) error) error {
	ed, err := h.svc.Editor(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err := op(ed); err != nil {
		return h.commitError(err)
	}
	return h.planJSON(c, http.StatusOK, ed)
}

func (h *Handler) commitError(err error) error {
	switch {
	case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrNoSession):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoPendingRemove):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
}

type postCareResponse struct {
	Treatment    string               `json:"treatment"`
	Instructions string               `json:"instructions"`
	Products     []PostCareSuggestion `json:"products"`
}

func (h *Handler) PostCareSuggestions(c echo.Context) error {
	treatment := c.QueryParam("treatment")
	if treatment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "treatment is required")
	}
	instructions, products, err := h.svc.PostCareSuggestions(c.Param("id"), treatment)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, postCareResponse{
		Treatment:    treatment,
		Instructions: instructions,
		Products:     products,
	})
}

type postCareAddRequest struct {
	Treatment string `json:"treatment"`
	Product   string `json:"product"`
}

func (h *Handler) AddPostCareProduct(c echo.Context) error {
	var req postCareAddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Treatment == "" || req.Product == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "treatment and product are required")
	}
	return h.itemOp(c, func(ed *Editor) error {
		return ed.AddPostCareProduct(c.Request().Context(), req.Treatment, req.Product)
	})
}

func (h *Handler) ListGoals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Catalog().Goals())
}

func (h *Handler) ListFindings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Catalog().Findings())
}

func (h *Handler) ListTreatments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Catalog().Treatments())
}

func (h *Handler) GetTreatment(c echo.Context) error {
	t, ok := h.svc.Catalog().TreatmentByName(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}
