package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asaavedra/agent-siminfo/pkg/report"
	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Config contiene la configuración global del agente
type Config struct {
	Mode            string `yaml:"mode"`             // once | watch
	IntervalSeconds int    `yaml:"interval_seconds"` // sólo en watch
	AgentID         string `yaml:"agent_id"`

	Sources struct {
		// Snapshots exportados de teléfonos (YAML)
		Files []string `yaml:"files"`

		// Routers celulares por SNMP
		SNMP struct {
			Enabled           bool           `yaml:"enabled"`
			IPRange           string         `yaml:"ip_range"`
			Community         string         `yaml:"community"`
			Version           string         `yaml:"version"`
			Port              uint16         `yaml:"port"`
			TimeoutMs         int            `yaml:"timeout_ms"`
			Retries           int            `yaml:"retries"`
			MaxConcurrent     int            `yaml:"max_concurrent"`
			ProfilesFile      string         `yaml:"profiles_file"`
			PermissionGranted bool           `yaml:"permission_granted"`
			CapabilityTier    telephony.Tier `yaml:"capability_tier"`
		} `yaml:"snmp"`

		// Módem AT por puerto serie
		Modem struct {
			Enabled        bool           `yaml:"enabled"`
			Port           string         `yaml:"port"`
			Baud           int            `yaml:"baud"`
			ReadTimeoutMs  int            `yaml:"read_timeout_ms"`
			CapabilityTier telephony.Tier `yaml:"capability_tier"`
			Quectel        bool           `yaml:"quectel"`
		} `yaml:"modem"`
	} `yaml:"sources"`

	Report struct {
		Thresholds report.Thresholds `yaml:"thresholds"`
	} `yaml:"report"`

	// Sinks
	Sinks struct {
		File struct {
			Enabled bool   `yaml:"enabled"`
			Path    string `yaml:"path"`
		} `yaml:"file"`
		Stdout struct {
			Enabled bool   `yaml:"enabled"`
			Format  string `yaml:"format"` // text | json
		} `yaml:"stdout"`
	} `yaml:"sinks"`

	// Logging
	Logging struct {
		Verbose bool `yaml:"verbose"`
	} `yaml:"logging"`
}

// LoadConfig carga la configuración desde config.yaml. Los valores que el
// archivo no define quedan con los de DefaultConfig; validar después de
// aplicar los flags.
func LoadConfig(filePath string) (Config, error) {
	cfg := DefaultConfig()

	// Leer archivo
	data, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, fmt.Errorf("error leyendo %s: %w", filePath, err)
	}

	// Parsear YAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parseando YAML: %w", err)
	}

	return cfg, nil
}

// DefaultConfig retorna la configuración por defecto
func DefaultConfig() Config {
	cfg := Config{
		Mode:            "once",
		IntervalSeconds: 60,
	}
	cfg.Sources.SNMP.Community = "public"
	cfg.Sources.SNMP.Version = "2c"
	cfg.Sources.SNMP.Port = 161
	cfg.Sources.SNMP.TimeoutMs = 2000
	cfg.Sources.SNMP.Retries = 1
	cfg.Sources.SNMP.MaxConcurrent = 10
	cfg.Sources.SNMP.ProfilesFile = "configs/profiles.example.yaml"
	cfg.Sources.SNMP.PermissionGranted = true
	cfg.Sources.SNMP.CapabilityTier = telephony.TierQ
	cfg.Sources.Modem.Baud = 115200
	cfg.Sources.Modem.ReadTimeoutMs = 200
	cfg.Sources.Modem.CapabilityTier = telephony.TierQ
	cfg.Report.Thresholds = report.DefaultThresholds()
	cfg.Sinks.File.Enabled = false
	cfg.Sinks.File.Path = "./reports"
	cfg.Sinks.Stdout.Enabled = true
	cfg.Sinks.Stdout.Format = "text"
	return cfg
}

// Validate revisa combinaciones inválidas
func (c Config) Validate() error {
	switch c.Mode {
	case "once", "watch":
	default:
		return fmt.Errorf("mode inválido %q (once|watch)", c.Mode)
	}
	if c.Mode == "watch" && c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds debe ser > 0 en modo watch")
	}
	switch c.Sinks.Stdout.Format {
	case "text", "json":
	default:
		return fmt.Errorf("sinks.stdout.format inválido %q (text|json)", c.Sinks.Stdout.Format)
	}
	if c.Sources.Modem.Enabled && c.Sources.Modem.Port == "" {
		return fmt.Errorf("sources.modem.port requerido")
	}
	return nil
}

// Interval retorna el intervalo de watch
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
