package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/profile"
	"github.com/asaavedra/agent-siminfo/pkg/scanner"
)

func testRouters() []RouterSurvey {
	p := &profile.Profile{Vendor: "Teltonika"}
	return []RouterSurvey{
		NewRouterSurvey(
			scanner.DiscoveryResult{IP: "192.168.8.1", Vendor: "Teltonika", VendorConfidence: 0.99, ResponseTime: 40 * time.Millisecond},
			p,
			&profile.Coverage{Vendor: "Teltonika", Supported: []string{"sim_state"}, Failed: []string{"phone_number"}},
			nil,
		),
		NewRouterSurvey(
			scanner.DiscoveryResult{IP: "192.168.8.2", Vendor: "Generic", ResponseTime: 80 * time.Millisecond},
			nil, nil, nil,
		),
		NewRouterSurvey(
			scanner.DiscoveryResult{IP: "192.168.8.3", Vendor: "Teltonika"},
			p, nil, errors.New("request timeout"),
		),
	}
}

func TestGenerateSummary(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := GenerateSummary(testRouters(), "192.168.8.1-4", 4, start, start.Add(1500*time.Millisecond), "public")

	if s.TotalFound != 3 || s.WithProfile != 2 {
		t.Errorf("found/withProfile = %d/%d, want 3/2", s.TotalFound, s.WithProfile)
	}
	if s.ByVendor["Teltonika"] != 2 || s.ByVendor["Generic"] != 1 {
		t.Errorf("ByVendor = %v", s.ByVendor)
	}
	if s.AverageResponseTime != 40 {
		t.Errorf("AverageResponseTime = %v, want 40", s.AverageResponseTime)
	}
	if s.SuccessRate != 75 || s.ScanDuration != "1.5s" {
		t.Errorf("SuccessRate/Duration = %v/%q", s.SuccessRate, s.ScanDuration)
	}
}

func TestWriteSurveyAndReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "survey")
	jw := NewJSONWriter(dir)
	routers := testRouters()

	summary, err := jw.WriteSurvey(routers, "192.168.8.0/28", 14, time.Now(), time.Now(), "public")
	if err != nil {
		t.Fatalf("WriteSurvey: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "routers.json"))
	if err != nil {
		t.Fatal(err)
	}
	var out SurveyOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("JSON inválido: %v", err)
	}
	if len(out.Routers) != 3 || out.Routers[2].ProbeError != "request timeout" {
		t.Errorf("routers = %+v", out.Routers)
	}

	if err := jw.WriteReport(summary, routers); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	text, _ := os.ReadFile(filepath.Join(dir, "survey_report.txt"))
	for _, want := range []string{"Teltonika (1/2 campos)", "Sin perfil de OIDs", "Probe falló: request timeout"} {
		if !strings.Contains(string(text), want) {
			t.Errorf("reporte sin %q", want)
		}
	}
}
