package telemetry

import (
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/report"
)

// SchemaVersion del evento; cambia sólo con cambios incompatibles
const SchemaVersion = "1.0.0"

// Telemetry es el evento atómico con el reporte de UN dispositivo en un
// momento específico, junto con métricas de cómo se obtuvo
type Telemetry struct {
	SchemaVersion string        `json:"schema_version"`
	EventID       string        `json:"event_id"`
	CollectedAt   time.Time     `json:"collected_at"`
	Source        AgentSource   `json:"source"`
	Device        DeviceInfo    `json:"device"`
	Report        report.Report `json:"report"`

	Metrics *MetricsInfo `json:"metrics,omitempty"`
}

// AgentSource describe quién envía el telemetry
type AgentSource struct {
	AgentID  string `json:"agent_id"` // "AGT-CL-001"
	Hostname string `json:"hostname"` // detectado del SO
	OS       string `json:"os"`       // "linux", "windows", "darwin"
	Version  string `json:"version"`  // versión del agente
}

// DeviceInfo es la identidad del dispositivo consultado
type DeviceInfo struct {
	ID               string  `json:"id"`                          // estable entre polls
	Source           string  `json:"source"`                      // "snmp://10.0.0.1", "/dev/ttyUSB2", ruta del archivo
	Kind             string  `json:"kind"`                        // file | snmp | modem
	Vendor           *string `json:"vendor"`                      // nil → null en JSON
	VendorConfidence float64 `json:"vendor_confidence,omitempty"` // 0.98
	Operator         *string `json:"operator"`                    // MCC+MNC de la red
}

// MetricsInfo agrupa las métricas de la consulta
type MetricsInfo struct {
	Polling *PollingMetrics `json:"polling,omitempty"`
}

// PollingMetrics describe cómo fue obtener el snapshot
type PollingMetrics struct {
	ResponseTimeMs int64      `json:"response_time_ms"`
	LastPollAt     time.Time  `json:"last_poll_at"`
	NextPollAt     *time.Time `json:"next_poll_at,omitempty"` // sólo en modo watch
}
