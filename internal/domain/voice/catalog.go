package voice

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/Ayush-2302/deploy-gro/internal/platform/apperr"
)

//go:embed fallbacks/*.json
var fallbackFS embed.FS

// Section is the extraction config for one form: the system prompt sent to
// the model and the canned payload returned when the model is unavailable.
type Section struct {
	Name     string
	Prompt   string
	Fallback json.RawMessage
}

// FallbackMap returns a fresh copy of the fallback payload.
func (s Section) FallbackMap() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := json.Unmarshal(s.Fallback, &out); err != nil {
		return nil, fmt.Errorf("decode %s fallback: %w", s.Name, err)
	}
	return out, nil
}

var sectionTitles = map[string]string{
	"admission":              "patient admission form",
	"doctor_note":            "doctor's progress note",
	"handover_outgoing":      "outgoing nurse shift handover",
	"handover_incoming":      "incoming nurse shift handover",
	"handover_incharge":      "ward in-charge handover",
	"handover_summary":       "shift handover summary",
	"discharge":              "discharge summary",
	"patient_file_section1":  "basic patient information",
	"patient_file_section2":  "initial assessment form",
	"patient_file_section3":  "progress notes, vitals and pain monitoring",
	"patient_file_section4":  "diagnostics",
	"patient_file_section5":  "patient vitals chart",
	"patient_file_section6":  "doctor's discharge planning",
	"patient_file_section7":  "follow-up instructions",
	"patient_file_section8":  "nursing care plan",
	"patient_file_section9":  "intake and output chart",
	"patient_file_section10": "nutritional screening",
	"patient_file_section11": "nutrition assessment form",
	"patient_file_section12": "diet chart",
}

var sectionHints = map[string]string{
	"admission":             "Age is a number between 0 and 120. Dates are YYYY-MM-DD and times are 24-hour HH:MM. Never read a phone number as an age.",
	"handover_outgoing":     "Vitals are reported as written, for example \"BP 120/80\".",
	"patient_file_section5": "Pain scores are integers from 0 to 10.",
	"patient_file_section9": "Volumes are in millilitres and never negative.",
}

// Catalog maps every extractable section to its config.
type Catalog struct {
	sections map[string]Section
}

// LoadCatalog builds the catalog from the embedded fallback payloads. The
// prompt for each section lists the keys of its fallback so the model answers
// in the same shape.
func LoadCatalog() (*Catalog, error) {
	entries, err := fallbackFS.ReadDir("fallbacks")
	if err != nil {
		return nil, fmt.Errorf("read fallbacks: %w", err)
	}

	c := &Catalog{sections: make(map[string]Section, len(entries))}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		raw, err := fallbackFS.ReadFile(path.Join("fallbacks", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s fallback: %w", name, err)
		}
		var shape map[string]json.RawMessage
		if err := json.Unmarshal(raw, &shape); err != nil {
			return nil, fmt.Errorf("decode %s fallback: %w", name, err)
		}
		c.sections[name] = Section{
			Name:     name,
			Prompt:   buildPrompt(name, shape),
			Fallback: raw,
		}
	}
	return c, nil
}

// MustLoadCatalog panics when the embedded files are broken.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func buildPrompt(name string, shape map[string]json.RawMessage) string {
	keys := make([]string, 0, len(shape))
	for k := range shape {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	title := sectionTitles[name]
	if title == "" {
		title = strings.ReplaceAll(name, "_", " ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a clinical scribe filling in a hospital %s from a dictated transcript.\n", title)
	b.WriteString("The transcript may be noisy, partial, or in Hindi; write extracted values in English.\n")
	b.WriteString("Return one JSON object with exactly these keys and no others: ")
	b.WriteString(strings.Join(keys, ", "))
	b.WriteString(".\nUse an empty string, empty list or false for anything the transcript does not state. Do not guess.\n")
	if hint := sectionHints[name]; hint != "" {
		b.WriteString(hint)
		b.WriteString("\n")
	}
	return b.String()
}

// Lookup returns the config for section, or Validation when it is not one
// of the extractable sections.
func (c *Catalog) Lookup(section string) (Section, error) {
	s, ok := c.sections[section]
	if !ok {
		return Section{}, apperr.Validation("section %q is not allowed; allowed sections: %s", section, strings.Join(c.Names(), ", "))
	}
	return s, nil
}

// Names lists the sections in a stable order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.sections))
	for name := range c.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
