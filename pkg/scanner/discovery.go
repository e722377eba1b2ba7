package scanner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/detector"
	"github.com/asaavedra/agent-siminfo/pkg/oids"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
)

// DiscoveryResult contiene información de un router descubierto
type DiscoveryResult struct {
	IP               string
	Community        string
	SNMPVersion      string
	SysDescr         string
	SysObjectID      string
	SysName          string
	IsResponsive     bool
	ResponseTime     time.Duration
	DiscoveredAt     time.Time
	Vendor           string
	VendorConfidence float64
	Errors           []string
}

// DiscoveryConfig contiene configuración para el discovery
type DiscoveryConfig struct {
	MaxConcurrentConnections int
	TimeoutPerDevice         time.Duration
	Retries                  int
	Community                string
	SNMPVersion              string
	SNMPPort                 uint16
}

// ClientFactory crea el cliente SNMP para una IP
type ClientFactory func(ip string) snmp.Getter

// DiscoveryScanner ejecuta escaneo SNMP en paralelo
type DiscoveryScanner struct {
	config    DiscoveryConfig
	newClient ClientFactory
}

// NewDiscoveryScanner crea un nuevo scanner de discovery
func NewDiscoveryScanner(config DiscoveryConfig) *DiscoveryScanner {
	if config.MaxConcurrentConnections <= 0 {
		config.MaxConcurrentConnections = 10
	}
	ds := &DiscoveryScanner{config: config}
	ds.newClient = func(ip string) snmp.Getter {
		return snmp.NewSNMPClient(
			ip,
			config.SNMPPort,
			config.Community,
			config.SNMPVersion,
			config.TimeoutPerDevice,
			config.Retries,
		)
	}
	return ds
}

// WithClientFactory reemplaza la creación de clientes SNMP
func (ds *DiscoveryScanner) WithClientFactory(factory ClientFactory) *DiscoveryScanner {
	ds.newClient = factory
	return ds
}

// Scan ejecuta el escaneo de IPs. Retorna sólo los routers que respondieron,
// ordenados por IP de entrada.
func (ds *DiscoveryScanner) Scan(ctx context.Context, ips []string) ([]DiscoveryResult, error) {
	results := make([]DiscoveryResult, 0, len(ips))
	resultsChan := make(chan DiscoveryResult, len(ips))
	var wg sync.WaitGroup

	// Semáforo para limitar concurrencia
	semaphore := make(chan struct{}, ds.config.MaxConcurrentConnections)

	fmt.Printf("Iniciando descubrimiento de %d IPs...\n", len(ips))
	startTime := time.Now()

	for _, ip := range ips {
		wg.Add(1)

		go func(targetIP string) {
			defer wg.Done()

			// Adquirir slot
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-semaphore }()

			resultsChan <- ds.probeIP(ctx, targetIP)
		}(ip)
	}

	// Esperar a que todos terminen
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Recolectar resultados
	for result := range resultsChan {
		if result.IsResponsive {
			results = append(results, result)
		}
	}

	order := make(map[string]int, len(ips))
	for i, ip := range ips {
		order[ip] = i
	}
	sort.Slice(results, func(i, j int) bool { return order[results[i].IP] < order[results[j].IP] })

	fmt.Printf("Descubrimiento completado en %.2f segundos. Encontrados %d routers.\n",
		time.Since(startTime).Seconds(), len(results))

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// probeIP prueba un IP individual: sysDescr, sysObjectID y sysName en un GET
func (ds *DiscoveryScanner) probeIP(ctx context.Context, ip string) DiscoveryResult {
	result := DiscoveryResult{
		IP:           ip,
		Community:    ds.config.Community,
		SNMPVersion:  ds.config.SNMPVersion,
		DiscoveredAt: time.Now(),
	}

	startTime := time.Now()
	client := ds.newClient(ip)

	values, err := client.GetMultiple(ctx, []string{oids.SysDescr, oids.SysObjectID, oids.SysName})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("sysdescr_error: %v", err))
		return result
	}

	sysDescr := values[oids.SysDescr]
	if sysDescr.Missing || sysDescr.Text == "" {
		result.Errors = append(result.Errors, "sysdescr_empty")
		return result
	}

	result.SysDescr = sysDescr.Text
	result.SysObjectID = values[oids.SysObjectID].Text
	result.SysName = values[oids.SysName].Text
	result.IsResponsive = true
	result.ResponseTime = time.Since(startTime)
	result.Vendor, result.VendorConfidence = detector.Detect(result.SysDescr, result.SysObjectID)

	return result
}
