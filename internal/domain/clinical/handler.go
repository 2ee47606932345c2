package clinical

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
	api.POST("/patients/:id/handovers", h.UpsertHandover)
	api.GET("/patients/:id/handovers", h.ListHandovers)
	api.POST("/handovers/:id/lock", h.LockHandover)

	api.POST("/patients/:id/discharge", h.UpsertDischarge)
	api.GET("/patients/:id/discharge", h.GetDischarge)

	api.POST("/patients/:id/notes", h.AddNote)
	api.GET("/patients/:id/notes", h.ListNotes)

	api.POST("/patients/:id/operation-records", h.AddOperationRecord)
	api.GET("/patients/:id/operation-records", h.ListOperationRecords)
	api.GET("/patients/:id/operation-records/:record_id", h.GetOperationRecord)
}

func respond(c echo.Context, status int, rec *record.Record) error {
	view, err := rec.Flatten()
	if err != nil {
		return apperr.HTTP(err)
	}
	return record.Respond(c, status, rec, view)
}

func respondList(c echo.Context, recs []*record.Record) error {
	views, err := record.FlattenAll(recs)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, views)
}

func upsertStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

// -- Handover Handlers --

func (h *Handler) UpsertHandover(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	rec, created, err := h.svc.UpsertHandover(c.Request().Context(), pid, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, upsertStatus(created), rec)
}

func (h *Handler) ListHandovers(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.svc.ListHandovers(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respondList(c, recs)
}

func (h *Handler) LockHandover(c echo.Context) error {
	id, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.svc.LockHandover(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, http.StatusOK, rec)
}

// -- Discharge Handlers --

func (h *Handler) UpsertDischarge(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	rec, created, err := h.svc.UpsertDischarge(c.Request().Context(), pid, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, upsertStatus(created), rec)
}

func (h *Handler) GetDischarge(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.svc.GetDischarge(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, http.StatusOK, rec)
}

// -- Doctor Note Handlers --

func (h *Handler) AddNote(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.AddNote(c.Request().Context(), pid, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, http.StatusCreated, rec)
}

func (h *Handler) ListNotes(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.svc.ListNotes(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respondList(c, recs)
}

// -- Operation Record Handlers --

func (h *Handler) AddOperationRecord(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.AddOperationRecord(c.Request().Context(), pid, body)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, http.StatusCreated, rec)
}

func (h *Handler) ListOperationRecords(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.svc.ListOperationRecords(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respondList(c, recs)
}

func (h *Handler) GetOperationRecord(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	id, err := record.ParseID(c, "record_id")
	if err != nil {
		return err
	}
	rec, err := h.svc.GetOperationRecord(c.Request().Context(), pid, id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return respond(c, http.StatusOK, rec)
}
