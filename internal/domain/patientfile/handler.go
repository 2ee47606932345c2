package patientfile

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
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
	for _, d := range Sections {
		path := fmt.Sprintf("/patients/:id/patient-file/section%d", d.Number)
		api.POST(path, h.UpsertSection(d))
		api.GET(path, h.GetSection(d))
		api.DELETE(path, h.DeleteSection(d))
	}
	api.DELETE("/patients/:id/patient-file/all", h.DeleteAll)

	api.POST("/patients/:id/patient-file", h.UpsertFile)
	api.GET("/patients/:id/patient-file", h.ListFiles)
	api.GET("/patients/:id/patient-file/:section", h.GetFile)
}

// FileView is the client shape of a generic patient-file entry.
type FileView struct {
	ID        uuid.UUID       `json:"id"`
	PatientID uuid.UUID       `json:"patient_id"`
	Section   string          `json:"section"`
	Data      json.RawMessage `json:"data"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func fileView(r *record.Record) FileView {
	return FileView{
		ID:        r.ID,
		PatientID: r.PatientID,
		Section:   r.Key,
		Data:      r.Data,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func writeStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

// -- Fixed sections --

func (h *Handler) UpsertSection(d Descriptor) echo.HandlerFunc {
	return func(c echo.Context) error {
		pid, err := record.ParseID(c, "id")
		if err != nil {
			return err
		}
		body, err := record.ReadBody(c)
		if err != nil {
			return err
		}
		rec, created, err := h.svc.UpsertSection(c.Request().Context(), pid, d, body)
		if err != nil {
			return apperr.HTTP(err)
		}
		view, err := rec.Flatten()
		if err != nil {
			return apperr.HTTP(err)
		}
		return record.Respond(c, writeStatus(created), rec, view)
	}
}

func (h *Handler) GetSection(d Descriptor) echo.HandlerFunc {
	return func(c echo.Context) error {
		pid, err := record.ParseID(c, "id")
		if err != nil {
			return err
		}
		rec, err := h.svc.GetSection(c.Request().Context(), pid, d)
		if err != nil {
			return apperr.HTTP(err)
		}
		view, err := rec.Flatten()
		if err != nil {
			return apperr.HTTP(err)
		}
		return record.Respond(c, http.StatusOK, rec, view)
	}
}

func (h *Handler) DeleteSection(d Descriptor) echo.HandlerFunc {
	return func(c echo.Context) error {
		pid, err := record.ParseID(c, "id")
		if err != nil {
			return err
		}
		if err := h.svc.DeleteSection(c.Request().Context(), pid, d); err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Patient File Section %d deleted successfully", d.Number),
		})
	}
}

func (h *Handler) DeleteAll(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.svc.DeleteAllSections(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       fmt.Sprintf("Deleted %d patient file sections successfully", n),
		"deleted_count": n,
	})
}

// -- Generic entries --

func (h *Handler) UpsertFile(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := record.ReadBody(c)
	if err != nil {
		return err
	}
	var entry FileEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return apperr.HTTP(apperr.Validation("body must be {section, data}"))
	}
	rec, created, err := h.svc.UpsertFile(c.Request().Context(), pid, entry)
	if err != nil {
		return apperr.HTTP(err)
	}
	return record.Respond(c, writeStatus(created), rec, fileView(rec))
}

func (h *Handler) ListFiles(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	recs, err := h.svc.ListFiles(c.Request().Context(), pid)
	if err != nil {
		return apperr.HTTP(err)
	}
	out := make([]FileView, 0, len(recs))
	for _, r := range recs {
		out = append(out, fileView(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetFile(c echo.Context) error {
	pid, err := record.ParseID(c, "id")
	if err != nil {
		return err
	}
	rec, err := h.svc.GetFile(c.Request().Context(), pid, c.Param("section"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return record.Respond(c, http.StatusOK, rec, fileView(rec))
}
