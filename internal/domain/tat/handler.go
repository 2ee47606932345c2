package tat

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
	"github.com/Ayush-2302/deploy-gro/internal/platform/reporting"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/tat", h.Create)
	api.PUT("/tat/:id", h.Update)
	api.GET("/tat/patient/:id", h.ListByPatient)
	api.GET("/tat/summary", h.Summary)
	api.GET("/tat/summary/export", h.Export)
	api.GET("/tat/service/:type", h.ListByServiceType)
}

func (h *Handler) Create(c echo.Context) error {
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Create(c.Request().Context(), body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, rec)
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
	rec, err := h.svc.Update(c.Request().Context(), id, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.svc.ListByPatient(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, nonNil(recs))
}

func (h *Handler) ListByServiceType(c echo.Context) error {
	recs, err := h.svc.ListByServiceType(c.Request().Context(), c.Param("type"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, nonNil(recs))
}

func (h *Handler) Summary(c echo.Context) error {
	rows, err := h.svc.SummarizeAll(c.Request().Context())
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Export(c echo.Context) error {
	data, err := h.svc.Export(c.Request().Context())
	if err != nil {
		return apperr.HTTP(err)
	}
	name := fmt.Sprintf("tat-summary-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, reporting.ContentType, data)
}

func nonNil(recs []*Record) []*Record {
	if recs == nil {
		return []*Record{}
	}
	return recs
}
