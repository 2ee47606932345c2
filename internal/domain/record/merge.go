package record

import (
	"bytes"
	"encoding/json"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

var jsonNull = []byte("null")

// MergeObjects overlays the top-level keys of incoming onto existing. Keys
// whose incoming value is null are left as stored.
func MergeObjects(existing, incoming json.RawMessage) (json.RawMessage, error) {
	base := map[string]json.RawMessage{}
	if len(existing) > 0 && !bytes.Equal(bytes.TrimSpace(existing), jsonNull) {
		if err := json.Unmarshal(existing, &base); err != nil {
			return nil, apperr.Validation("stored document is not an object")
		}
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(incoming, &patch); err != nil {
		return nil, apperr.Validation("document must be a JSON object")
	}
	for k, v := range patch {
		if bytes.Equal(bytes.TrimSpace(v), jsonNull) {
			continue
		}
		base[k] = v
	}
	return json.Marshal(base)
}
