// Package nrstate extrae el sub-estado 5G (NSA/SA y rango de frecuencia)
// del volcado textual del objeto de diagnóstico de servicio.
//
// La plataforma no expone estos datos con un accesor estable entre versiones,
// así que la extracción es heurística: búsqueda de subcadenas en orden.
// Si aparece un accesor estructurado, sólo este paquete debe cambiar.
package nrstate

import (
	"strings"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Mode es el modo de despliegue 5G
type Mode int

const (
	ModeUndetermined Mode = iota
	ModeNonStandalone
	ModeStandalone
)

// String retorna la etiqueta del modo
func (m Mode) String() string {
	switch m {
	case ModeNonStandalone:
		return "NSA - non-standalone"
	case ModeStandalone:
		return "SA - standalone"
	default:
		return ""
	}
}

// Frequency es el rango de frecuencia NR
type Frequency int

const (
	FrequencyUndetermined Frequency = iota
	FrequencyMMWave
	FrequencySub6
)

// String retorna la etiqueta del rango
func (f Frequency) String() string {
	switch f {
	case FrequencyMMWave:
		return "millimeter wave"
	case FrequencySub6:
		return "sub-6 GHz"
	default:
		return ""
	}
}

// Result es la determinación del extractor. Cada mitad puede quedar sin
// determinar de forma independiente.
type Result struct {
	Mode      Mode
	Frequency Frequency
}

// Determined indica si al menos una mitad fue determinada
func (r Result) Determined() bool {
	return r.Mode != ModeUndetermined || r.Frequency != FrequencyUndetermined
}

// Suffix retorna el texto a concatenar a la etiqueta de tecnología:
// " (<modo>)" y/o " <frecuencia>". Vacío si no hay determinación.
func (r Result) Suffix() string {
	var sb strings.Builder
	if r.Mode != ModeUndetermined {
		sb.WriteString(" (" + r.Mode.String() + ")")
	}
	if r.Frequency != FrequencyUndetermined {
		sb.WriteString(" " + r.Frequency.String())
	}
	return sb.String()
}

// Tokens buscados en los volcados. El orden importa: varios pueden aparecer
// en un mismo volcado con múltiples campos.
var (
	nonStandaloneTokens = []string{"nrState=CONNECTED", "nrState=NOT_RESTRICTED"}
	standaloneTokens    = []string{"nrState=RESTRICTED"}
	mmWaveTokens        = []string{"nrFrequencyRange=MMWAVE", "mNrFrequencyRange=3"}
	sub6Tokens          = []string{"nrFrequencyRange=SUB6", "mNrFrequencyRange=2"}
)

// Extract aplica la heurística sobre el descriptor. Cualquier error o panic
// al acceder al descriptor se traduce en "sin determinación".
func Extract(desc telephony.ServiceStateDescriptor) (result Result) {
	if desc == nil {
		return Result{}
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{}
		}
	}()

	mode, err := extractMode(desc)
	if err != nil {
		return Result{}
	}

	freq, err := extractFrequency(desc)
	if err != nil {
		return Result{}
	}

	return Result{Mode: mode, Frequency: freq}
}

// extractMode busca en la entrada de registro PS con tecnología NR
func extractMode(desc telephony.ServiceStateDescriptor) (Mode, error) {
	regs, err := desc.NetworkRegistrations()
	if err != nil {
		return ModeUndetermined, err
	}

	for _, reg := range regs {
		if reg.Domain != telephony.DomainPS || reg.AccessNetworkTechnology != telephony.NetworkTypeNR {
			continue
		}
		// Sólo la primera entrada que coincide
		return ClassifyMode(reg.String()), nil
	}

	return ModeUndetermined, nil
}

// extractFrequency busca en el volcado completo del estado de servicio
func extractFrequency(desc telephony.ServiceStateDescriptor) (Frequency, error) {
	dump, err := desc.Dump()
	if err != nil {
		return FrequencyUndetermined, err
	}
	return ClassifyFrequency(dump), nil
}

// ClassifyMode clasifica el texto de una entrada de registro.
// CONNECTED y NOT_RESTRICTED se tratan igual (NSA); sólo RESTRICTED es SA.
func ClassifyMode(text string) Mode {
	if containsAny(text, nonStandaloneTokens) {
		return ModeNonStandalone
	}
	if containsAny(text, standaloneTokens) {
		return ModeStandalone
	}
	return ModeUndetermined
}

// ClassifyFrequency clasifica el volcado completo. Acepta el nombre del rango
// o el código numérico que usan algunas revisiones de la plataforma.
func ClassifyFrequency(dump string) Frequency {
	if containsAny(dump, mmWaveTokens) {
		return FrequencyMMWave
	}
	if containsAny(dump, sub6Tokens) {
		return FrequencySub6
	}
	return FrequencyUndetermined
}

// containsAny verifica si text contiene alguno de los patrones
func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
