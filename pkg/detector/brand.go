package detector

import (
	"strings"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
)

// enterprisePrefixes asocia el prefijo de sysObjectID con el fabricante
var enterprisePrefixes = map[string]string{
	oids.EnterpriseTeltonika: "Teltonika",
	oids.EnterpriseCisco:     "Cisco",
	oids.EnterpriseSierra:    "Sierra",
	oids.EnterpriseDigi:      "Digi",
}

// DetectVendor detecta el fabricante de un router celular por sysDescr
func DetectVendor(sysDescr string) string {
	descLower := strings.ToLower(sysDescr)

	// Teltonika
	if matchesPatterns(descLower, []string{"teltonika", "rut9", "rutx", "rut2", "trb1"}) {
		return "Teltonika"
	}

	// Sierra Wireless
	if matchesPatterns(descLower, []string{"sierra wireless", "airlink", "rv50", "mg90"}) {
		return "Sierra"
	}

	// Cisco (IR, ISR con módulo LTE)
	if matchesPatterns(descLower, []string{"cisco ios", "cisco"}) {
		return "Cisco"
	}

	// Digi
	if matchesPatterns(descLower, []string{"digi ", "transport wr", "digi international"}) {
		return "Digi"
	}

	// Huawei
	if matchesPatterns(descLower, []string{"huawei", "b535", "b818"}) {
		return "Huawei"
	}

	// MikroTik (LtAP, Chateau)
	if matchesPatterns(descLower, []string{"mikrotik", "routeros"}) {
		return "MikroTik"
	}

	// Generic / Unknown
	return "Generic"
}

// DetectVendorByObjectID detecta el fabricante por el prefijo enterprise de
// sysObjectID. Retorna "" si no lo conoce.
func DetectVendorByObjectID(sysObjectID string) string {
	objectID := oids.Normalize(sysObjectID)
	for prefix, vendor := range enterprisePrefixes {
		if objectID == prefix || strings.HasPrefix(objectID, prefix+".") {
			return vendor
		}
	}
	return ""
}

// Detect combina ambos métodos; sysObjectID tiene prioridad
func Detect(sysDescr, sysObjectID string) (string, float64) {
	if vendor := DetectVendorByObjectID(sysObjectID); vendor != "" {
		return vendor, 0.99
	}
	vendor := DetectVendor(sysDescr)
	return vendor, GetVendorConfidence(sysDescr, vendor)
}

// matchesPatterns verifica si descLower contiene alguno de los patrones
func matchesPatterns(descLower string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(descLower, pattern) {
			return true
		}
	}
	return false
}

// GetVendorConfidence retorna un valor de confianza (0-1) basado en qué tan específico fue el match
func GetVendorConfidence(sysDescr string, vendor string) float64 {
	descLower := strings.ToLower(sysDescr)

	switch vendor {
	case "Teltonika":
		if strings.Contains(descLower, "teltonika") {
			return 0.98
		}
		return 0.85
	case "Sierra":
		if strings.Contains(descLower, "sierra wireless") {
			return 0.98
		} else if strings.Contains(descLower, "airlink") {
			return 0.95
		}
	case "Cisco":
		if strings.Contains(descLower, "cisco ios") {
			return 0.95
		}
		return 0.85
	case "Huawei":
		if strings.Contains(descLower, "huawei") {
			return 0.95
		}
	case "Generic":
		return 0.50 // Baja confianza para Generic
	}

	return 0.75 // Confianza por defecto
}
