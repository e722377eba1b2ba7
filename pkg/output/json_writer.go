package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/profile"
	"github.com/asaavedra/agent-siminfo/pkg/scanner"
)

// SurveySummary contiene el resumen de un relevamiento de routers
type SurveySummary struct {
	ScanStartTime       time.Time      `json:"scanStartTime"`
	ScanEndTime         time.Time      `json:"scanEndTime"`
	ScanDuration        string         `json:"scanDuration"`
	Range               string         `json:"range"`
	TotalScanned        int            `json:"totalScanned"`
	TotalFound          int            `json:"totalFound"`
	WithProfile         int            `json:"withProfile"`
	CommunityString     string         `json:"communityString"`
	ByVendor            map[string]int `json:"byVendor"`
	AverageResponseTime float64        `json:"avgResponseTimeMs"`
	SuccessRate         float64        `json:"successRate"`
}

// RouterSurvey es lo relevado de un router: identidad SNMP y cobertura de
// su perfil de OIDs
type RouterSurvey struct {
	IP               string   `json:"ip"`
	Vendor           string   `json:"vendor"`
	VendorConfidence float64  `json:"vendorConfidence"`
	SysDescr         string   `json:"sysDescr"`
	SysObjectID      string   `json:"sysObjectId,omitempty"`
	SysName          string   `json:"sysName,omitempty"`
	ResponseTimeMs   int64    `json:"responseTimeMs"`
	Profile          string   `json:"profile,omitempty"` // vacío = sin perfil
	Supported        []string `json:"supported,omitempty"`
	Failed           []string `json:"failed,omitempty"`
	ProbeError       string   `json:"probeError,omitempty"`
}

// SurveyOutput es el formato de salida JSON principal
type SurveyOutput struct {
	ScanInfo *SurveySummary `json:"scanInfo"`
	Routers  []RouterSurvey `json:"routers"`
}

// NewRouterSurvey arma la entrada de un router descubierto. coverage es nil
// si no hubo perfil o el probe falló (probeErr).
func NewRouterSurvey(disc scanner.DiscoveryResult, p *profile.Profile, coverage *profile.Coverage, probeErr error) RouterSurvey {
	rs := RouterSurvey{
		IP:               disc.IP,
		Vendor:           disc.Vendor,
		VendorConfidence: disc.VendorConfidence,
		SysDescr:         disc.SysDescr,
		SysObjectID:      disc.SysObjectID,
		SysName:          disc.SysName,
		ResponseTimeMs:   disc.ResponseTime.Milliseconds(),
	}
	if p != nil {
		rs.Profile = p.Vendor
	}
	if coverage != nil {
		rs.Supported = coverage.Supported
		rs.Failed = coverage.Failed
	}
	if probeErr != nil {
		rs.ProbeError = probeErr.Error()
	}
	return rs
}

// JSONWriter escribe los resultados en formato JSON
type JSONWriter struct {
	outputDir string
}

// NewJSONWriter crea un nuevo escritor JSON
func NewJSONWriter(outputDir string) *JSONWriter {
	return &JSONWriter{outputDir: outputDir}
}

// WriteSurvey escribe routers.json y survey_summary.json
func (jw *JSONWriter) WriteSurvey(
	routers []RouterSurvey,
	ipRange string,
	totalScanned int,
	startTime time.Time,
	endTime time.Time,
	community string,
) (*SurveySummary, error) {
	// Crear directorio si no existe
	if err := os.MkdirAll(jw.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("error creando directorio de salida: %w", err)
	}

	summary := GenerateSummary(routers, ipRange, totalScanned, startTime, endTime, community)

	output := &SurveyOutput{
		ScanInfo: summary,
		Routers:  routers,
	}

	// Escribir JSON principal
	outputPath := filepath.Join(jw.outputDir, "routers.json")
	if err := jw.writeJSON(output, outputPath); err != nil {
		return nil, fmt.Errorf("error escribiendo routers.json: %w", err)
	}
	fmt.Printf("✓ Resultados guardados en: %s\n", outputPath)

	// Escribir resumen
	summaryPath := filepath.Join(jw.outputDir, "survey_summary.json")
	if err := jw.writeJSON(summary, summaryPath); err != nil {
		return nil, fmt.Errorf("error escribiendo survey_summary.json: %w", err)
	}
	fmt.Printf("✓ Resumen guardado en: %s\n", summaryPath)

	return summary, nil
}

// GenerateSummary genera el resumen del relevamiento
func GenerateSummary(
	routers []RouterSurvey,
	ipRange string,
	totalScanned int,
	startTime time.Time,
	endTime time.Time,
	community string,
) *SurveySummary {
	summary := &SurveySummary{
		ScanStartTime:   startTime,
		ScanEndTime:     endTime,
		ScanDuration:    fmt.Sprintf("%.1fs", endTime.Sub(startTime).Seconds()),
		Range:           ipRange,
		TotalScanned:    totalScanned,
		TotalFound:      len(routers),
		CommunityString: community,
		ByVendor:        make(map[string]int),
	}

	var totalResponseTime int64
	for _, r := range routers {
		summary.ByVendor[r.Vendor]++
		if r.Profile != "" {
			summary.WithProfile++
		}
		totalResponseTime += r.ResponseTimeMs
	}

	if len(routers) > 0 {
		summary.AverageResponseTime = float64(totalResponseTime) / float64(len(routers))
	}
	if totalScanned > 0 {
		summary.SuccessRate = (float64(len(routers)) / float64(totalScanned)) * 100.0
	}

	return summary
}

// writeJSON escribe un objeto a JSON
func (jw *JSONWriter) writeJSON(data interface{}, filePath string) error {
	// Usar encoder con SetEscapeHTML(false) para no escapar & como \u0026
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("error serializando JSON: %w", err)
	}

	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error escribiendo archivo: %w", err)
	}

	return nil
}

// WriteReport escribe un reporte legible en texto
func (jw *JSONWriter) WriteReport(summary *SurveySummary, routers []RouterSurvey) error {
	reportPath := filepath.Join(jw.outputDir, "survey_report.txt")

	file, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("error creando reporte: %w", err)
	}
	defer file.Close()

	// Escribir encabezado
	fmt.Fprintf(file, "╔═══════════════════════════════════════════════════════════════╗\n")
	fmt.Fprintf(file, "║         RELEVAMIENTO SNMP DE ROUTERS CELULARES                ║\n")
	fmt.Fprintf(file, "╚═══════════════════════════════════════════════════════════════╝\n\n")

	fmt.Fprintf(file, "📊 INFORMACIÓN DEL ESCANEO\n")
	fmt.Fprintf(file, "─────────────────────────────────────────────────────────────\n")
	fmt.Fprintf(file, "Rango escaneado:       %s\n", summary.Range)
	fmt.Fprintf(file, "Total escaneado:       %d IPs\n", summary.TotalScanned)
	fmt.Fprintf(file, "Routers encontrados:   %d\n", summary.TotalFound)
	fmt.Fprintf(file, "Con perfil de OIDs:    %d\n", summary.WithProfile)
	fmt.Fprintf(file, "Tasa de éxito:         %.1f%%\n", summary.SuccessRate)
	fmt.Fprintf(file, "Tiempo de escaneo:     %s\n\n", summary.ScanDuration)

	fmt.Fprintf(file, "📦 ROUTERS POR FABRICANTE\n")
	fmt.Fprintf(file, "─────────────────────────────────────────────────────────────\n")
	vendors := make([]string, 0, len(summary.ByVendor))
	for v := range summary.ByVendor {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)
	for _, v := range vendors {
		fmt.Fprintf(file, "%-20s: %d\n", v, summary.ByVendor[v])
	}
	fmt.Fprintf(file, "\n")

	fmt.Fprintf(file, "📋 DETALLE DE ROUTERS\n")
	fmt.Fprintf(file, "─────────────────────────────────────────────────────────────\n")

	for i, r := range routers {
		fmt.Fprintf(file, "\n[%d] %s - %s\n", i+1, r.IP, r.Vendor)
		fmt.Fprintf(file, "    Confianza:        %.0f%%\n", r.VendorConfidence*100)
		fmt.Fprintf(file, "    Tiempo respuesta: %dms\n", r.ResponseTimeMs)
		switch {
		case r.Profile == "":
			fmt.Fprintf(file, "    ⚠️  Sin perfil de OIDs\n")
		case r.ProbeError != "":
			fmt.Fprintf(file, "    ❌ Probe falló: %s\n", r.ProbeError)
		default:
			fmt.Fprintf(file, "    Perfil:           %s (%d/%d campos)\n",
				r.Profile, len(r.Supported), len(r.Supported)+len(r.Failed))
			if len(r.Failed) > 0 {
				fmt.Fprintf(file, "    ⚠️  Sin valor: %v\n", r.Failed)
			}
		}
	}

	fmt.Printf("✓ Reporte guardado en: %s\n", reportPath)
	return nil
}
