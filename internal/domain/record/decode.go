package record

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

// DecodePayload unmarshals body into p. Type mismatches are validation
// failures.
func DecodePayload(body json.RawMessage, p Payload) error {
	if err := json.Unmarshal(body, p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.Validation("%s must be of type %s", typeErr.Field, typeErr.Type)
		}
		return apperr.Validation("invalid document: %v", err)
	}
	return nil
}

// ReadBody returns the request body, rejecting malformed JSON with 400.
func ReadBody(c echo.Context) (json.RawMessage, error) {
	b, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
	}
	if !json.Valid(b) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed JSON body")
	}
	return b, nil
}

// ParseID parses the named path parameter as a uuid.
func ParseID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// Flatten returns the document fields merged with the record metadata,
// the shape clients read sections in.
func (r *Record) Flatten() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &out); err != nil {
			return nil, err
		}
	}
	out["id"] = r.ID
	out["patient_id"] = r.PatientID
	out["version"] = r.Version
	out["created_at"] = r.CreatedAt
	out["updated_at"] = r.UpdatedAt
	if r.LockedAt != nil {
		out["locked_at"] = r.LockedAt
	}
	return out, nil
}

// FlattenAll flattens each record in order.
func FlattenAll(recs []*Record) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(recs))
	for _, r := range recs {
		m, err := r.Flatten()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
