package report

import (
	"github.com/asaavedra/agent-siminfo/pkg/decoder"
	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// SectionID identifica una sección del reporte
type SectionID string

const (
	SectionPermission   SectionID = "permission"
	SectionUnrestricted SectionID = "unrestricted"
	SectionRestricted   SectionID = "restricted"
	SectionNRDetail     SectionID = "nr_detail"
	SectionServiceState SectionID = "service_state"
)

// Placeholders para campos o secciones no disponibles
const (
	PlaceholderPermissionDenied   = "unavailable — permission not granted"
	PlaceholderUnavailable        = "unavailable on this platform version"
	PlaceholderServiceStateFailed = "query failed (insufficient permission)"
	PlaceholderNotDetermined      = "not determined"
)

// Report es el resultado ordenado de decodificar un Snapshot
type Report struct {
	Permission bool           `json:"permission"`
	Tier       telephony.Tier `json:"tier"`
	Sections   []Section      `json:"sections"`
}

// Section es una lista ordenada de entradas bajo un título
type Section struct {
	ID      SectionID `json:"id"`
	Title   string    `json:"title"`
	Entries []Entry   `json:"entries"`
}

// Entry es un par (etiqueta, valor). Field queda nil para valores que no
// salen de una tabla de decodificación o para placeholders.
type Entry struct {
	Label       string                `json:"label"`
	Value       string                `json:"value"`
	Field       *decoder.DecodedField `json:"field,omitempty"`
	Placeholder bool                  `json:"placeholder,omitempty"`
}

// Section busca una sección por ID
func (r Report) Section(id SectionID) (Section, bool) {
	for _, s := range r.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Value busca el valor de una entrada por etiqueta
func (s Section) Value(label string) (string, bool) {
	for _, e := range s.Entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}
