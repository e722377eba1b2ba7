package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := LoadConfig("../../configs/config.example.yaml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if cfg.AgentID != "AGT-CL-001" || len(cfg.Sources.Files) != 1 {
		t.Errorf("agent/files = %q/%v", cfg.AgentID, cfg.Sources.Files)
	}
	if cfg.Sources.SNMP.CapabilityTier != telephony.TierQ || cfg.Sources.SNMP.Port != 161 {
		t.Errorf("snmp = %+v", cfg.Sources.SNMP)
	}
	if cfg.Report.Thresholds.ServiceState != telephony.TierOreo {
		t.Errorf("thresholds = %+v", cfg.Report.Thresholds)
	}
	if !cfg.Sources.Modem.Quectel || cfg.Sources.Modem.Port != "/dev/ttyUSB2" {
		t.Errorf("modem = %+v", cfg.Sources.Modem)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: watch\ninterval_seconds: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Interval() != 30*time.Second {
		t.Errorf("Interval = %v", cfg.Interval())
	}
	if cfg.Sources.SNMP.Community != "public" || cfg.Sinks.Stdout.Format != "text" {
		t.Errorf("defaults perdidos: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "daemon" }},
		{"intervalo", func(c *Config) { c.Mode = "watch"; c.IntervalSeconds = 0 }},
		{"formato", func(c *Config) { c.Sinks.Stdout.Format = "xml" }},
		{"puerto módem", func(c *Config) { c.Sources.Modem.Enabled = true }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig inválida: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("esperaba error")
			}
		})
	}
}
