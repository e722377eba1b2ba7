package profile

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
)

// Discoverer verifica qué campos de un perfil responde un router
type Discoverer struct {
	client snmp.Getter
}

// NewDiscoverer crea un nuevo descubridor
func NewDiscoverer(client snmp.Getter) *Discoverer {
	return &Discoverer{client: client}
}

// Probe hace un GET de todos los OIDs del perfil y clasifica los campos en
// soportados y fallidos. Sólo falla si el router no responde.
func (d *Discoverer) Probe(ctx context.Context, p *Profile) (Coverage, error) {
	coverage := Coverage{Vendor: p.Vendor}

	queries := p.Queries()
	values, err := d.client.GetMultiple(ctx, oids.ExtractOIDs(queries))
	if err != nil {
		return coverage, fmt.Errorf("probe %s: %w", p.Vendor, err)
	}

	for _, q := range queries {
		v, ok := values[oids.Normalize(q.OID)]
		if ok && !v.Missing && (v.Text != "" || len(v.Raw) > 0) {
			coverage.Supported = append(coverage.Supported, q.Nombre)
		} else {
			coverage.Failed = append(coverage.Failed, q.Nombre)
			log.Printf("⚠️  %s: sin valor para %s", p.Vendor, FriendlyName(p, q.OID))
		}
	}

	return coverage, nil
}

// Queries retorna los OIDs a consultar del perfil, ordenados por campo
func (p *Profile) Queries() []oids.OIDConsulta {
	queries := make([]oids.OIDConsulta, 0, len(p.Fields)+1)
	for name, fm := range p.Fields {
		queries = append(queries, oids.OIDConsulta{Nombre: name, OID: oids.Normalize(fm.OID)})
	}
	sort.Slice(queries, func(i, j int) bool { return queries[i].Nombre < queries[j].Nombre })

	if p.ServiceStateDump != "" {
		queries = append(queries, oids.OIDConsulta{Nombre: "service_state_dump", OID: oids.Normalize(p.ServiceStateDump)})
	}
	return queries
}
