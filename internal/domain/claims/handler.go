package claims

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/claims/validate", h.Validate)
	api.POST("/patients/:id/claims", h.Submit)
	api.GET("/patients/:id/claims", h.List)
}

func (h *Handler) Validate(c echo.Context) error {
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Validate(body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Submit(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Submit(c.Request().Context(), pid, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	view, err := rec.Flatten()
	if err != nil {
		return apperr.HTTP(err)
	}
	return record.Respond(c, http.StatusCreated, rec, view)
}

func (h *Handler) List(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.svc.List(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	views, err := record.FlattenAll(recs)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, views)
}
