package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asaavedra/agent-siminfo/pkg/collector"
	"github.com/asaavedra/agent-siminfo/pkg/report"
)

// Builder transforma (Result, Report) → Telemetry
// Responsabilidad ÚNICA: armar el evento; no decodifica ni consulta
// dispositivos. Si mañana cambia la fuente (SNMP → AT), Builder NO cambia.
type Builder struct {
	source   AgentSource
	interval time.Duration // intervalo de watch; 0 en modo once
	newID    func() string
}

// NewBuilder crea un nuevo builder
func NewBuilder(source AgentSource) *Builder {
	return &Builder{
		source: source,
		newID:  uuid.NewString,
	}
}

// WithInterval informa el intervalo de watch para calcular next_poll_at
func (b *Builder) WithInterval(interval time.Duration) *Builder {
	b.interval = interval
	return b
}

// sanitizeEmptyString convierte strings vacíos a nil (que será null en JSON)
func sanitizeEmptyString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Build arma el evento de un resultado exitoso
func (b *Builder) Build(res collector.Result, rep report.Report) (*Telemetry, error) {
	if res.Err != nil {
		return nil, fmt.Errorf("resultado con error de %s: %w", res.Source, res.Err)
	}
	if res.Source == "" {
		return nil, fmt.Errorf("resultado sin fuente")
	}

	collectedAt := res.At
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	device := DeviceInfo{
		ID:               BuildDeviceID(res),
		Source:           res.Source,
		Kind:             res.Kind,
		Vendor:           sanitizeEmptyString(res.Vendor),
		VendorConfidence: res.VendorConfidence,
		Operator:         sanitizeEmptyString(res.Snapshot.NetworkOperator),
	}

	// IMPORTANTE: SIEMPRE usar UTC para timestamps
	polling := &PollingMetrics{
		ResponseTimeMs: res.Duration.Milliseconds(),
		LastPollAt:     collectedAt.UTC(),
	}
	if b.interval > 0 {
		next := collectedAt.Add(b.interval).UTC()
		polling.NextPollAt = &next
	}

	return &Telemetry{
		SchemaVersion: SchemaVersion,
		EventID:       b.newID(),
		CollectedAt:   collectedAt.UTC(),
		Source:        b.source,
		Device:        device,
		Report:        rep,
		Metrics:       &MetricsInfo{Polling: polling},
	}, nil
}

// BuildDeviceID genera un ID estable y corto para el dispositivo
// Prioridad: IMEI (equipo) → ICCID (SIM) → fuente (IP, puerto o archivo)
// IMEI e ICCID son datos restringidos: sin permiso se usa la fuente.
// Resultado es lowercase sin caracteres especiales
func BuildDeviceID(res collector.Result) string {
	snap := res.Snapshot
	if !snap.PermissionGranted {
		return cleanID(res.Source)
	}
	if snap.DeviceID != nil && strings.TrimSpace(*snap.DeviceID) != "" {
		return "imei-" + cleanID(*snap.DeviceID)
	}
	if snap.SIMSerial != nil && strings.TrimSpace(*snap.SIMSerial) != "" {
		return "iccid-" + cleanID(*snap.SIMSerial)
	}
	return cleanID(res.Source)
}

// cleanID deja sólo letras, dígitos y guiones
func cleanID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "snmp://")

	var sb strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			sb.WriteRune(r)
			lastDash = false
		case !lastDash && sb.Len() > 0:
			sb.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
