package telephony

import (
	"fmt"
	"strings"
)

// ServiceStateDescriptor es el objeto de diagnóstico de servicio celular.
// No expone un accesor estructurado para el sub-estado 5G: eso sólo aparece
// en su volcado textual. Los accesores con error pueden fallar tarde con
// ErrPermissionDenied.
type ServiceStateDescriptor interface {
	State() int
	OperatorAlphaLong() string
	Roaming() bool
	ManualSelection() bool
	NetworkRegistrations() ([]NetworkRegistration, error)
	Dump() (string, error)
}

// NetworkRegistration es una entrada de registro de red (NetworkRegistrationInfo)
type NetworkRegistration struct {
	Domain                  int    `yaml:"domain" json:"domain"`
	AccessNetworkTechnology int    `yaml:"access_network_technology" json:"accessNetworkTechnology"`
	Text                    string `yaml:"text" json:"text"` // volcado textual de la entrada
}

// String retorna el volcado textual de la entrada
func (nr NetworkRegistration) String() string {
	if nr.Text != "" {
		return nr.Text
	}
	return fmt.Sprintf("NetworkRegistrationInfo{ domain=%s accessNetworkTechnology=%d }",
		domainName(nr.Domain), nr.AccessNetworkTechnology)
}

func domainName(domain int) string {
	switch domain {
	case DomainCS:
		return "CS"
	case DomainPS:
		return "PS"
	default:
		return "UNKNOWN"
	}
}

// StaticServiceState es un ServiceStateDescriptor con valores ya resueltos.
// Lo usan las fuentes SNMP, módem y archivo. RegistrationsErr y DumpErr
// simulan fallos tardíos de acceso.
type StaticServiceState struct {
	StateCode        int                   `yaml:"state"`
	Operator         string                `yaml:"operator_alpha_long"`
	IsRoaming        bool                  `yaml:"roaming"`
	IsManual         bool                  `yaml:"manual_selection"`
	Registrations    []NetworkRegistration `yaml:"registrations"`
	Text             string                `yaml:"dump"`
	RegistrationsErr error                 `yaml:"-"`
	DumpErr          error                 `yaml:"-"`
}

func (s *StaticServiceState) State() int { return s.StateCode }
func (s *StaticServiceState) OperatorAlphaLong() string { return s.Operator }
func (s *StaticServiceState) Roaming() bool { return s.IsRoaming }
func (s *StaticServiceState) ManualSelection() bool { return s.IsManual }

// NetworkRegistrations retorna las entradas de registro
func (s *StaticServiceState) NetworkRegistrations() ([]NetworkRegistration, error) {
	if s.RegistrationsErr != nil {
		return nil, s.RegistrationsErr
	}
	return s.Registrations, nil
}

// Dump retorna el volcado textual. Si no se capturó uno, se genera a partir
// de los campos conocidos.
func (s *StaticServiceState) Dump() (string, error) {
	if s.DumpErr != nil {
		return "", s.DumpErr
	}
	if s.Text != "" {
		return s.Text, nil
	}

	parts := []string{
		fmt.Sprintf("mVoiceRegState=%d", s.StateCode),
		fmt.Sprintf("mOperatorAlphaLong=%s", s.Operator),
		fmt.Sprintf("mIsManualNetworkSelection=%t", s.IsManual),
	}
	regs := make([]string, 0, len(s.Registrations))
	for _, r := range s.Registrations {
		regs = append(regs, r.String())
	}
	parts = append(parts, "mNetworkRegistrationInfos=["+strings.Join(regs, ", ")+"]")
	return "{" + strings.Join(parts, ", ") + "}", nil
}
