package oids

import (
	"strconv"
	"strings"
)

// OIDConsulta asocia un nombre de campo con su OID
type OIDConsulta struct {
	Nombre string
	OID    string
}

// ExtractOIDs extrae solo los OIDs de una lista de OIDConsulta
func ExtractOIDs(consultas []OIDConsulta) []string {
	result := make([]string, len(consultas))
	for i, c := range consultas {
		result[i] = c.OID
	}
	return result
}

// OIDs estándar MIB-II (grupo system), usados en discovery
const (
	SysDescr    = "1.3.6.1.2.1.1.1.0"
	SysObjectID = "1.3.6.1.2.1.1.2.0"
	SysUpTime   = "1.3.6.1.2.1.1.3.0"
	SysName     = "1.3.6.1.2.1.1.5.0"
)

// Prefijos enterprise de fabricantes de routers celulares
const (
	EnterpriseBase      = "1.3.6.1.4.1"
	EnterpriseTeltonika = "1.3.6.1.4.1.48690"
	EnterpriseCisco     = "1.3.6.1.4.1.9"
	EnterpriseSierra    = "1.3.6.1.4.1.20542"
	EnterpriseDigi      = "1.3.6.1.4.1.332"
)

// IsValid verifica que el OID sea numérico con puntos ("1.3.6.1...").
// Acepta el punto inicial que usan algunas herramientas.
func IsValid(oid string) bool {
	oid = strings.TrimPrefix(oid, ".")
	parts := strings.Split(oid, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		if _, err := strconv.ParseUint(p, 10, 32); err != nil {
			return false
		}
	}
	return true
}

// Normalize quita el punto inicial para comparar con las respuestas de gosnmp
func Normalize(oid string) string {
	return strings.TrimPrefix(strings.TrimSpace(oid), ".")
}
