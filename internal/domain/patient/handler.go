package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/pkg/pagination"
)

type Handler struct {
	svc     *Service
	cascade *Cascade
}

func NewHandler(svc *Service, cascade *Cascade) *Handler {
	return &Handler{svc: svc, cascade: cascade}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", h.Create)
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)
	api.DELETE("/patients/:id", h.Delete)
	api.GET("/timeline/:patient_id", h.Timeline)
}

func (h *Handler) Create(c echo.Context) error {
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Create(c.Request().Context(), body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.HTTP(err)
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, pg))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Update(c.Request().Context(), id, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.cascade.DeletePatient(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "Patient and all associated data deleted successfully",
		"deleted_records": n,
	})
}

func (h *Handler) Timeline(c echo.Context) error {
	id, err := record.ParseID(c, "patient_id")
	if err != nil {
		return err
	}
	t, err := h.svc.Timeline(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	if t.Handovers == nil {
		t.Handovers = []map[string]interface{}{}
	}
	return c.JSON(http.StatusOK, t)
}
