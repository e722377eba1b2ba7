package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/output"
	"github.com/asaavedra/agent-siminfo/pkg/profile"
	"github.com/asaavedra/agent-siminfo/pkg/scanner"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
)

// Valores por defecto del relevamiento
const (
	defaultCommunity    = "public"
	defaultVersion      = "2c"
	defaultPort         = 161
	defaultTimeout      = 2 * time.Second
	defaultRetries      = 1
	defaultConcurrent   = 10
	defaultProfilesFile = "configs/profiles.example.yaml"
	defaultSurveyDir    = "./output"
)

// surveyConfig son los parámetros de un relevamiento, tomados de flags
type surveyConfig struct {
	Range         string
	Community     string
	Version       string
	Port          uint16
	Timeout       time.Duration
	Retries       int
	MaxConcurrent int
	ProfilesFile  string
	OutputDir     string
	Verbose       bool
}

// Relevamiento de routers celulares: descubre equipos SNMP en un rango,
// elige el perfil de OIDs de cada uno y mide qué campos responden.
func main() {
	// Flags
	ipRangeFlag := flag.String("range", "", "Rango de IPs a escanear (ej: 192.168.8.1-254 o 192.168.8.0/24)")
	communityFlag := flag.String("community", defaultCommunity, "Comunidad SNMP")
	versionFlag := flag.String("version", defaultVersion, "Versión SNMP (1 o 2c)")
	portFlag := flag.Int("port", defaultPort, "Puerto SNMP")
	timeoutFlag := flag.Duration("timeout", defaultTimeout, "Timeout SNMP")
	profilesFlag := flag.String("profiles", defaultProfilesFile, "Archivo YAML de perfiles de OIDs")
	outputDirFlag := flag.String("output", defaultSurveyDir, "Directorio de salida")
	maxConcurrentFlag := flag.Int("concurrent", defaultConcurrent, "Máximo de conexiones concurrentes")
	verbose := flag.Bool("verbose", false, "Modo verbose")

	flag.Parse()

	// Validar rango
	if *ipRangeFlag == "" {
		fmt.Println("❌ Error: Se requiere el parámetro -range")
		fmt.Println("\nUso:")
		fmt.Println("  agent-siminfo -range 192.168.8.1-254")
		fmt.Println("\nOpciones:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := surveyConfig{
		Range:         *ipRangeFlag,
		Community:     *communityFlag,
		Version:       *versionFlag,
		Port:          uint16(*portFlag),
		Timeout:       *timeoutFlag,
		Retries:       defaultRetries,
		MaxConcurrent: *maxConcurrentFlag,
		ProfilesFile:  *profilesFlag,
		OutputDir:     *outputDirFlag,
		Verbose:       *verbose,
	}

	profiles := profile.NewManager()
	if err := profiles.LoadFile(cfg.ProfilesFile); err != nil {
		log.Fatalf("Error cargando perfiles: %v", err)
	}

	// Parsear rango de IPs
	fmt.Printf("🔍 Parseando rango de IPs: %s\n", cfg.Range)
	ips, err := scanner.ParseIPRange(cfg.Range)
	if err != nil {
		fmt.Printf("❌ Error parseando rango: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Se escaneará un total de %d IPs\n\n", len(ips))

	// Ejecutar discovery
	startTime := time.Now()
	ctx := context.Background()

	discoveries, err := scanner.NewDiscoveryScanner(scanner.DiscoveryConfig{
		MaxConcurrentConnections: cfg.MaxConcurrent,
		TimeoutPerDevice:         cfg.Timeout,
		Retries:                  cfg.Retries,
		Community:                cfg.Community,
		SNMPVersion:              cfg.Version,
		SNMPPort:                 cfg.Port,
	}).Scan(ctx, ips)
	if err != nil {
		log.Fatalf("Error durante discovery: %v", err)
	}

	if len(discoveries) == 0 {
		fmt.Println("❌ No se encontraron dispositivos SNMP en el rango especificado")
		os.Exit(0)
	}

	// Elegir perfil y medir cobertura de cada router
	fmt.Printf("\n📡 Probando perfiles de OIDs...\n")
	routers := make([]output.RouterSurvey, 0, len(discoveries))

	for i, disc := range discoveries {
		p := profiles.Match(disc.SysDescr, disc.SysObjectID)
		if p == nil {
			p = profiles.Get(disc.Vendor)
		}

		var coverage *profile.Coverage
		var probeErr error
		if p != nil {
			client := snmp.NewSNMPClient(disc.IP, cfg.Port, cfg.Community, cfg.Version, cfg.Timeout, cfg.Retries)
			c, err := profile.NewDiscoverer(client).Probe(ctx, p)
			if err != nil {
				probeErr = err
			} else {
				coverage = &c
			}
		}

		routers = append(routers, output.NewRouterSurvey(disc, p, coverage, probeErr))

		if cfg.Verbose {
			fmt.Printf("[%d/%d] %s -> %s (confianza: %.0f%%)\n",
				i+1, len(discoveries), disc.IP, disc.Vendor, disc.VendorConfidence*100)
		}
	}

	// Escribir salida JSON
	endTime := time.Now()
	fmt.Printf("💾 Escribiendo salida JSON...\n")
	jsonWriter := output.NewJSONWriter(cfg.OutputDir)

	summary, err := jsonWriter.WriteSurvey(routers, cfg.Range, len(ips), startTime, endTime, cfg.Community)
	if err != nil {
		log.Fatalf("Error escribiendo salida: %v", err)
	}
	if err := jsonWriter.WriteReport(summary, routers); err != nil {
		log.Fatalf("Error escribiendo reporte: %v", err)
	}

	fmt.Printf("\n✅ RELEVAMIENTO COMPLETADO\n")
	fmt.Printf("═══════════════════════════════════════════════════════════════\n")
	fmt.Printf("Tiempo total:          %.2f segundos\n", endTime.Sub(startTime).Seconds())
	fmt.Printf("IPs escaneadas:        %d\n", len(ips))
	fmt.Printf("Routers encontrados:   %d\n", len(routers))
	fmt.Printf("Con perfil de OIDs:    %d\n", summary.WithProfile)
	fmt.Printf("═══════════════════════════════════════════════════════════════\n\n")

	fmt.Printf("📂 Archivos generados en: %s\n", cfg.OutputDir)
	fmt.Printf("   • routers.json          Identidad SNMP y cobertura por router\n")
	fmt.Printf("   • survey_summary.json   Resumen del escaneo\n")
	fmt.Printf("   • survey_report.txt     Reporte legible\n")
}
