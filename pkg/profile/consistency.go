package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
)

// ProfileError describe un problema de consistencia en un perfil
type ProfileError struct {
	Vendor string
	Field  string
	Reason string
}

// Error implementa la interfaz error
func (pe *ProfileError) Error() string {
	if pe.Field == "" {
		return fmt.Sprintf("perfil %q: %s", pe.Vendor, pe.Reason)
	}
	return fmt.Sprintf("perfil %q campo %s: %s", pe.Vendor, pe.Field, pe.Reason)
}

// Validate verifica que el perfil sea consistente: campos conocidos, OIDs
// bien formados, decodificación válida y tablas de valores sólo en campos
// categóricos
func Validate(p *Profile) error {
	if p == nil {
		return &ProfileError{Reason: "perfil vacío"}
	}
	if strings.TrimSpace(p.Vendor) == "" {
		return &ProfileError{Reason: "falta vendor"}
	}
	if len(p.Match) == 0 && p.ObjectIDPrefix == "" {
		return &ProfileError{Vendor: p.Vendor, Reason: "sin match ni object_id_prefix"}
	}
	if p.ObjectIDPrefix != "" && !oids.IsValid(p.ObjectIDPrefix) {
		return &ProfileError{Vendor: p.Vendor, Reason: fmt.Sprintf("object_id_prefix inválido: %s", p.ObjectIDPrefix)}
	}
	if len(p.Fields) == 0 {
		return &ProfileError{Vendor: p.Vendor, Reason: "sin campos"}
	}
	if p.ServiceStateDump != "" && !oids.IsValid(p.ServiceStateDump) {
		return &ProfileError{Vendor: p.Vendor, Field: "service_state_dump", Reason: "OID inválido"}
	}

	// Orden estable para que el error reportado sea siempre el mismo
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fm := p.Fields[name]
		kind, known := KnownFields[name]
		if !known {
			return &ProfileError{Vendor: p.Vendor, Field: name, Reason: "campo desconocido"}
		}
		if !oids.IsValid(fm.OID) {
			return &ProfileError{Vendor: p.Vendor, Field: name, Reason: fmt.Sprintf("OID inválido: %q", fm.OID)}
		}
		switch fm.Decode {
		case snmp.DecodeNone, snmp.DecodeHex, snmp.DecodeBCD:
		default:
			return &ProfileError{Vendor: p.Vendor, Field: name, Reason: fmt.Sprintf("decode desconocido: %q", fm.Decode)}
		}
		if len(fm.Values) > 0 && kind != KindCode {
			return &ProfileError{Vendor: p.Vendor, Field: name, Reason: "values sólo aplica a campos categóricos"}
		}
	}

	return nil
}
