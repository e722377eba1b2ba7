package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
)

func TestParseIPRange(t *testing.T) {
	tests := []struct {
		in        string
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{"192.168.1.1-4", 4, "192.168.1.1", "192.168.1.4"},
		{"10.0.0.7", 1, "10.0.0.7", "10.0.0.7"},
		{"10.0.0.0/30", 2, "10.0.0.1", "10.0.0.2"},
		{"10.0.0.8/31", 2, "10.0.0.8", "10.0.0.9"},
		{"10.0.0.5/32", 1, "10.0.0.5", "10.0.0.5"},
		{"172.16.0.0/23", 510, "172.16.0.1", "172.16.1.254"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ips, err := ParseIPRange(tt.in)
			if err != nil {
				t.Fatalf("ParseIPRange: %v", err)
			}
			if len(ips) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(ips), tt.wantLen)
			}
			if ips[0] != tt.wantFirst || ips[len(ips)-1] != tt.wantLast {
				t.Errorf("rango = %s..%s, want %s..%s", ips[0], ips[len(ips)-1], tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestParseIPRangeErrors(t *testing.T) {
	for _, in := range []string{"", "192.168.1.300", "192.168.1.10-5", "192.168.1.1-999", "10.0.0.0/8", "::1-5", "a-b-c"} {
		if _, err := ParseIPRange(in); err == nil {
			t.Errorf("ParseIPRange(%q) debería fallar", in)
		}
	}
}

// fakeRouter responde el grupo system de MIB-II
type fakeRouter struct {
	sysDescr    string
	sysObjectID string
	err         error
	delay       time.Duration
}

func (f *fakeRouter) GetMultiple(ctx context.Context, list []string) (map[string]snmp.Value, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return map[string]snmp.Value{
		oids.SysDescr:    {OID: oids.SysDescr, Text: f.sysDescr, Missing: f.sysDescr == ""},
		oids.SysObjectID: {OID: oids.SysObjectID, Text: f.sysObjectID},
		oids.SysName:     {OID: oids.SysName, Text: "gw-" + f.sysObjectID},
	}, nil
}

func TestDiscoveryScan(t *testing.T) {
	routers := map[string]*fakeRouter{
		"10.0.0.1": {sysDescr: "Teltonika RUT950", delay: 20 * time.Millisecond},
		"10.0.0.2": {err: errors.New("request timeout")},
		"10.0.0.3": {sysDescr: "Linux", sysObjectID: "1.3.6.1.4.1.20542.1"},
		"10.0.0.4": {},
	}

	ds := NewDiscoveryScanner(DiscoveryConfig{MaxConcurrentConnections: 2, Community: "public", SNMPVersion: "2c"}).
		WithClientFactory(func(ip string) snmp.Getter { return routers[ip] })

	results, err := ds.Scan(context.Background(), []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(results), results)
	}

	if results[0].IP != "10.0.0.1" || results[0].Vendor != "Teltonika" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].IP != "10.0.0.3" || results[1].Vendor != "Sierra" || results[1].VendorConfidence != 0.99 {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[0].Community != "public" || results[0].SNMPVersion != "2c" {
		t.Errorf("community/version = %q/%q", results[0].Community, results[0].SNMPVersion)
	}
}

func TestDiscoveryScanCancelled(t *testing.T) {
	ds := NewDiscoveryScanner(DiscoveryConfig{MaxConcurrentConnections: 1}).
		WithClientFactory(func(ip string) snmp.Getter { return &fakeRouter{sysDescr: "RUT950"} })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ds.Scan(ctx, []string{"10.0.0.1", "10.0.0.2"}); !errors.Is(err, context.Canceled) {
		t.Errorf("esperaba context.Canceled, got %v", err)
	}
}
