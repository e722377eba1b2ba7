package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Source produce snapshots de un dispositivo (teléfono exportado, router
// SNMP, módem AT)
type Source interface {
	Name() string
	Snapshot(ctx context.Context) (telephony.Snapshot, error)
}

// Result es lo obtenido de una fuente
type Result struct {
	Source           string
	Kind             string // file | snmp | modem
	Vendor           string
	VendorConfidence float64
	Snapshot         telephony.Snapshot
	Err              error
	Duration         time.Duration
	At               time.Time
}

// Kinded lo implementan las fuentes que informan su tipo
type Kinded interface {
	Kind() string
}

// Vendored lo implementan las fuentes que conocen el fabricante
type Vendored interface {
	Vendor() string
	VendorConfidence() float64
}

// Collector consulta varias fuentes en paralelo
type Collector struct {
	rateLimiter *RateLimiter
	timeout     time.Duration
}

// Config contiene configuración del colector
type Config struct {
	MaxConcurrent int
	Timeout       time.Duration // por fuente; 0 = sin límite
}

// NewCollector crea un nuevo colector
func NewCollector(config Config) *Collector {
	return &Collector{
		rateLimiter: NewRateLimiter(config.MaxConcurrent),
		timeout:     config.Timeout,
	}
}

// CollectAll consulta todas las fuentes. Retorna un Result por fuente, en el
// mismo orden; los fallos quedan en Result.Err.
func (c *Collector) CollectAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))
	var wg sync.WaitGroup

	fmt.Printf("Iniciando recolección de %d fuentes...\n", len(sources))
	startTime := time.Now()

	for i, src := range sources {
		wg.Add(1)

		go func(i int, src Source) {
			defer wg.Done()

			results[i] = Result{Source: src.Name(), Kind: kindOf(src), At: time.Now().UTC()}
			if v, ok := src.(Vendored); ok {
				results[i].Vendor = v.Vendor()
				results[i].VendorConfidence = v.VendorConfidence()
			}

			// Usar rate limiter
			if err := c.rateLimiter.Acquire(ctx); err != nil {
				results[i].Err = err
				return
			}
			defer c.rateLimiter.Release()

			results[i] = c.collectOne(ctx, src, results[i])
		}(i, src)
	}

	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	fmt.Printf("Recolección completada en %.2f segundos (%d con error).\n", time.Since(startTime).Seconds(), failed)

	return results
}

// collectOne consulta una fuente con timeout propio
func (c *Collector) collectOne(ctx context.Context, src Source, result Result) Result {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	snap, err := src.Snapshot(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", src.Name(), err)
		return result
	}
	result.Snapshot = snap
	return result
}

func kindOf(src Source) string {
	if k, ok := src.(Kinded); ok {
		return k.Kind()
	}
	return "unknown"
}
