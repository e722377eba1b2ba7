package report

import (
	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Thresholds define el tier mínimo de cada función dependiente de versión
type Thresholds struct {
	DataNetworkType telephony.Tier `yaml:"data_network_type" json:"data_network_type"` // preferir dataNetworkType sobre networkType
	ServiceState    telephony.Tier `yaml:"service_state" json:"service_state"`         // sección de estado de servicio detallado
	NRDetail        telephony.Tier `yaml:"nr_detail" json:"nr_detail"`                 // sub-estado NR
}

// DefaultThresholds retorna los umbrales de la plataforma Android
func DefaultThresholds() Thresholds {
	return Thresholds{
		DataNetworkType: telephony.TierNougat,
		ServiceState:    telephony.TierOreo,
		NRDetail:        telephony.TierQ,
	}
}

// withDefaults completa umbrales no configurados (cero)
func (t Thresholds) withDefaults() Thresholds {
	def := DefaultThresholds()
	if t.DataNetworkType == 0 {
		t.DataNetworkType = def.DataNetworkType
	}
	if t.ServiceState == 0 {
		t.ServiceState = def.ServiceState
	}
	if t.NRDetail == 0 {
		t.NRDetail = def.NRDetail
	}
	return t
}
