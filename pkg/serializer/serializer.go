package serializer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/asaavedra/agent-siminfo/pkg/report"
	"github.com/asaavedra/agent-siminfo/pkg/telemetry"
)

// Serializer convierte un Telemetry a bytes
// Responsabilidad ÚNICA: formatear. NO escribe a disco, NO decide destino
type Serializer struct {
	format string
}

// Formatos soportados
const (
	FormatJSON = "json"
	FormatText = "text"
)

// NewSerializer crea un nuevo serializador; format vacío = json
func NewSerializer(format string) (*Serializer, error) {
	switch format {
	case "", FormatJSON:
		return &Serializer{format: FormatJSON}, nil
	case FormatText:
		return &Serializer{format: FormatText}, nil
	default:
		return nil, fmt.Errorf("formato desconocido %q (json|text)", format)
	}
}

// Format retorna el formato de salida
func (s *Serializer) Format() string { return s.format }

// Extension retorna la extensión de archivo del formato
func (s *Serializer) Extension() string {
	if s.format == FormatText {
		return ".txt"
	}
	return ".json"
}

// Serialize convierte un Telemetry al formato configurado.
// En texto sólo se escribe el reporte, sin el sobre.
func (s *Serializer) Serialize(t *telemetry.Telemetry) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("telemetry cannot be nil")
	}

	if s.format == FormatText {
		var buf bytes.Buffer
		if err := report.Render(&buf, t.Report); err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)

	// No escapear HTML para que "&" se vea como "&" y no como "\u0026"
	encoder.SetEscapeHTML(false)

	// Indentación de 2 espacios para legibilidad
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(t); err != nil {
		return nil, fmt.Errorf("failed to serialize telemetry: %w", err)
	}

	// Encode agrega un newline final, lo removemos
	data := buf.Bytes()
	if len(data) > 0 && data[len(data)-1] == '\n' {
		data = data[:len(data)-1]
	}

	return data, nil
}
