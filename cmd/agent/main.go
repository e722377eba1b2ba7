package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/collector"
	"github.com/asaavedra/agent-siminfo/pkg/modem"
	"github.com/asaavedra/agent-siminfo/pkg/profile"
	"github.com/asaavedra/agent-siminfo/pkg/report"
	"github.com/asaavedra/agent-siminfo/pkg/scanner"
	"github.com/asaavedra/agent-siminfo/pkg/serializer"
	"github.com/asaavedra/agent-siminfo/pkg/sink"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
	"github.com/asaavedra/agent-siminfo/pkg/telemetry"
)

const agentVersion = "1.0.0"

func main() {
	// Flags
	configFile := flag.String("config", "config.yaml", "Archivo de configuración")
	ipRangeOverride := flag.String("range", "", "Override del rango de IPs SNMP (ej: 192.168.8.1-254 o 192.168.8.0/24)")
	verbose := flag.Bool("verbose", false, "Modo verbose (override de config)")
	format := flag.String("format", "", "Formato de stdout: text | json (override de config)")
	once := flag.Bool("once", false, "Una sola recolección aunque config diga watch")

	flag.Parse()

	// Cargar configuración desde YAML
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("⚠️  No se pudo leer %s, usando configuración por defecto", *configFile)
		cfg = DefaultConfig()
	}

	// Override con flags si se proporcionan
	if *ipRangeOverride != "" {
		cfg.Sources.SNMP.Enabled = true
		cfg.Sources.SNMP.IPRange = *ipRangeOverride
	}
	if *verbose {
		cfg.Logging.Verbose = true
	}
	if *format != "" {
		cfg.Sinks.Stdout.Format = *format
	}
	if *once {
		cfg.Mode = "once"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Configuración inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newAgent(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer a.close()

	if cfg.Mode == "once" {
		if err := a.run(ctx); err != nil {
			log.Fatalf("❌ %v", err)
		}
		return
	}

	log.Printf("🔁 Modo watch cada %s (Ctrl+C para salir)", cfg.Interval())
	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	for {
		if err := a.run(ctx); err != nil {
			log.Printf("⚠️  %v", err)
		}
		select {
		case <-ctx.Done():
			log.Printf("👋 Agente detenido")
			return
		case <-ticker.C:
		}
	}
}

// output es un destino con su propio formato
type output struct {
	ser  *serializer.Serializer
	sink sink.Sink
}

// agent mantiene lo que se reutiliza entre ciclos de watch
type agent struct {
	cfg      Config
	profiles *profile.Manager
	modem    *modem.Source
	reports  *report.Builder
	builder  *telemetry.Builder
	outputs  []output
}

func newAgent(cfg Config) (*agent, error) {
	a := &agent{
		cfg:     cfg,
		reports: report.NewBuilder(cfg.Report.Thresholds),
	}

	// Crear AgentSource (quién envía)
	a.builder = telemetry.NewBuilder(telemetry.AgentSource{
		AgentID:  getAgentID(cfg),
		Hostname: getHostname(),
		OS:       runtime.GOOS,
		Version:  agentVersion,
	})
	if cfg.Mode == "watch" {
		a.builder.WithInterval(cfg.Interval())
	}

	if cfg.Sources.SNMP.Enabled {
		a.profiles = profile.NewManager()
		if err := a.profiles.LoadFile(cfg.Sources.SNMP.ProfilesFile); err != nil {
			return nil, fmt.Errorf("error cargando perfiles: %w", err)
		}
		log.Printf("📚 Perfiles cargados: %v", a.profiles.Vendors())
	}

	if cfg.Sources.Modem.Enabled {
		m, err := modem.Open(modem.Config{
			PortName:    cfg.Sources.Modem.Port,
			BaudRate:    cfg.Sources.Modem.Baud,
			ReadTimeout: time.Duration(cfg.Sources.Modem.ReadTimeoutMs) * time.Millisecond,
			Tier:        cfg.Sources.Modem.CapabilityTier,
			Quectel:     cfg.Sources.Modem.Quectel,
		})
		if err != nil {
			return nil, err
		}
		a.modem = modem.NewSource(m)
	}

	if cfg.Sinks.Stdout.Enabled {
		ser, err := serializer.NewSerializer(cfg.Sinks.Stdout.Format)
		if err != nil {
			return nil, err
		}
		a.outputs = append(a.outputs, output{ser: ser, sink: sink.NewWriterSink("stdout", os.Stdout)})
	}
	if cfg.Sinks.File.Enabled {
		// A disco siempre va el evento completo
		ser, err := serializer.NewSerializer(serializer.FormatJSON)
		if err != nil {
			return nil, err
		}
		fileSink, err := sink.NewFileSink(cfg.Sinks.File.Path, ser.Extension())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file sink: %w", err)
		}
		a.outputs = append(a.outputs, output{ser: ser, sink: fileSink})
	}
	if len(a.outputs) == 0 {
		return nil, fmt.Errorf("no hay sinks habilitados")
	}

	return a, nil
}

// run ejecuta un ciclo: fuentes → colector → reporte → telemetry → sinks
func (a *agent) run(ctx context.Context) error {
	startTime := time.Now()

	sources, err := a.buildSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no hay fuentes configuradas (files, snmp o modem)")
	}

	col := collector.NewCollector(collector.Config{
		MaxConcurrent: a.cfg.Sources.SNMP.MaxConcurrent,
		Timeout:       30 * time.Second,
	})
	results := col.CollectAll(ctx, sources)

	written := 0
	for _, res := range results {
		if res.Err != nil {
			log.Printf("❌ %v", res.Err)
			continue
		}

		rep := a.reports.Build(res.Snapshot)

		telem, err := a.builder.Build(res, rep)
		if err != nil {
			log.Printf("❌ Failed to build telemetry for %s: %v", res.Source, err)
			continue
		}

		ok := true
		for _, out := range a.outputs {
			data, err := out.ser.Serialize(telem)
			if err != nil {
				log.Printf("❌ Failed to serialize telemetry for %s: %v", res.Source, err)
				ok = false
				continue
			}
			if err := out.sink.Write(ctx, data, telem.Device.ID); err != nil {
				log.Printf("❌ %v", err)
				ok = false
			}
		}
		if ok {
			written++
		}
	}

	if a.cfg.Logging.Verbose {
		log.Printf("✅ Ciclo completado en %.2f segundos. Fuentes: %d, reportes escritos: %d",
			time.Since(startTime).Seconds(), len(results), written)
	}
	return nil
}

// buildSources arma las fuentes del ciclo. El descubrimiento SNMP se repite
// en cada ciclo para ver routers nuevos.
func (a *agent) buildSources(ctx context.Context) ([]collector.Source, error) {
	var sources []collector.Source

	for _, path := range a.cfg.Sources.Files {
		sources = append(sources, collector.NewFileSource(path))
	}

	if a.cfg.Sources.SNMP.Enabled {
		routers, err := a.discoverRouters(ctx)
		if err != nil {
			return nil, err
		}
		sources = append(sources, routers...)
	}

	if a.modem != nil {
		sources = append(sources, a.modem)
	}

	return sources, nil
}

// discoverRouters escanea el rango, detecta el fabricante y elige el perfil
func (a *agent) discoverRouters(ctx context.Context) ([]collector.Source, error) {
	sc := a.cfg.Sources.SNMP
	if sc.IPRange == "" {
		return nil, fmt.Errorf("se requiere sources.snmp.ip_range en config.yaml o -range en flags")
	}

	ips, err := scanner.ParseIPRange(sc.IPRange)
	if err != nil {
		return nil, fmt.Errorf("error parseando rango: %w", err)
	}

	timeout := time.Duration(sc.TimeoutMs) * time.Millisecond
	discoveries, err := scanner.NewDiscoveryScanner(scanner.DiscoveryConfig{
		MaxConcurrentConnections: sc.MaxConcurrent,
		TimeoutPerDevice:         timeout,
		Retries:                  sc.Retries,
		Community:                sc.Community,
		SNMPVersion:              sc.Version,
		SNMPPort:                 sc.Port,
	}).Scan(ctx, ips)
	if err != nil {
		return nil, fmt.Errorf("error during discovery: %w", err)
	}

	var sources []collector.Source
	for _, disc := range discoveries {
		p := a.profiles.Match(disc.SysDescr, disc.SysObjectID)
		if p == nil {
			p = a.profiles.Get(disc.Vendor)
		}
		if p == nil {
			log.Printf("⚠️  %s (%s): sin perfil de OIDs, se omite", disc.IP, disc.Vendor)
			continue
		}

		client := snmp.NewSNMPClient(disc.IP, sc.Port, sc.Community, sc.Version, timeout, sc.Retries)

		if a.cfg.Logging.Verbose {
			coverage, err := profile.NewDiscoverer(client).Probe(ctx, p)
			if err == nil {
				log.Printf("🔎 %s [%s]: %d campos soportados, %d sin valor",
					disc.IP, p.Vendor, len(coverage.Supported), len(coverage.Failed))
			}
		}

		sources = append(sources, collector.NewSNMPSource(client, p, collector.SNMPSourceConfig{
			IP:                disc.IP,
			PermissionGranted: sc.PermissionGranted,
			Tier:              sc.CapabilityTier,
			VendorConfidence:  disc.VendorConfidence,
		}))
	}

	return sources, nil
}

func (a *agent) close() {
	for _, out := range a.outputs {
		out.sink.Close()
	}
	if a.modem != nil {
		a.modem.Close()
	}
}

// getAgentID obtiene el ID del agente (env var, config o default)
func getAgentID(cfg Config) string {
	if id := os.Getenv("AGENT_ID"); id != "" {
		return id
	}
	if cfg.AgentID != "" {
		return cfg.AgentID
	}
	return "AGT-LOCAL-001" // Default para desarrollo
}

// getHostname obtiene el hostname del servidor
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
