package collector

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
	"github.com/asaavedra/agent-siminfo/pkg/profile"
	"github.com/asaavedra/agent-siminfo/pkg/snmp"
	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// codeAbsent es el código de un campo categórico que el router no reportó
const codeAbsent = -1

// SNMPSource arma snapshots leyendo un router celular con su perfil
type SNMPSource struct {
	ip         string
	client     snmp.Getter
	profile    *profile.Profile
	permission bool
	tier       telephony.Tier
	confidence float64
}

// SNMPSourceConfig agrupa la configuración por router
type SNMPSourceConfig struct {
	IP                string
	PermissionGranted bool
	Tier              telephony.Tier
	VendorConfidence  float64 // confianza de la detección del fabricante
}

// NewSNMPSource crea una fuente SNMP
func NewSNMPSource(client snmp.Getter, p *profile.Profile, config SNMPSourceConfig) *SNMPSource {
	return &SNMPSource{
		ip:         config.IP,
		client:     client,
		profile:    p,
		permission: config.PermissionGranted,
		tier:       config.Tier,
		confidence: config.VendorConfidence,
	}
}

// Name retorna "snmp://<ip>"
func (s *SNMPSource) Name() string { return "snmp://" + s.ip }

// Kind identifica el tipo de fuente
func (s *SNMPSource) Kind() string { return "snmp" }

// Vendor retorna el fabricante del perfil usado
func (s *SNMPSource) Vendor() string { return s.profile.Vendor }

// VendorConfidence retorna la confianza de la detección (0-1)
func (s *SNMPSource) VendorConfidence() float64 { return s.confidence }

// Snapshot hace un GET de todos los OIDs del perfil y arma el snapshot.
// Sólo falla si el router no responde; los OIDs sin valor quedan ausentes.
func (s *SNMPSource) Snapshot(ctx context.Context) (telephony.Snapshot, error) {
	queries := s.profile.Queries()
	values, err := s.client.GetMultiple(ctx, oids.ExtractOIDs(queries))
	if err != nil {
		return telephony.Snapshot{}, fmt.Errorf("error leyendo %s: %w", s.ip, err)
	}

	r := fieldReader{profile: s.profile, values: values}

	snap := telephony.Snapshot{
		SIMState:            r.code(profile.FieldSIMState),
		PhoneType:           r.code(profile.FieldPhoneType),
		SIMOperator:         r.text(profile.FieldSIMOperator),
		SIMOperatorName:     r.text(profile.FieldSIMOperatorName),
		SIMCountryISO:       strings.ToLower(r.text(profile.FieldSIMCountryISO)),
		NetworkOperator:     r.text(profile.FieldNetworkOperator),
		NetworkOperatorName: r.text(profile.FieldNetworkOperatorName),
		NetworkCountryISO:   strings.ToLower(r.text(profile.FieldNetworkCountryISO)),
		Roaming:             r.flag(profile.FieldRoaming),
		VoiceCapable:        r.flag(profile.FieldVoiceCapable),
		SMSCapable:          r.flag(profile.FieldSMSCapable),
		NetworkType:         r.code(profile.FieldNetworkType),
		DataNetworkType:     r.code(profile.FieldDataNetworkType),
		CallState:           r.code(profile.FieldCallState),
		DataState:           r.code(profile.FieldDataState),
		PhoneNumber:         telephony.Optional(r.text(profile.FieldPhoneNumber)),
		SubscriberID:        telephony.Optional(r.text(profile.FieldSubscriberID)),
		SIMSerial:           telephony.Optional(r.text(profile.FieldSIMSerial)),
		DeviceID:            telephony.Optional(r.text(profile.FieldDeviceID)),
		PermissionGranted:   s.permission,
		Tier:                s.tier,
	}

	// Un router sin tipo de teléfono configurado es un módem GSM/LTE
	if _, ok := s.profile.Fields[profile.FieldPhoneType]; !ok {
		snap.PhoneType = telephony.PhoneTypeGSM
	}
	// Sin OID de datos se usa el de red
	if _, ok := s.profile.Fields[profile.FieldDataNetworkType]; !ok {
		snap.DataNetworkType = snap.NetworkType
	}

	if ss := s.serviceState(r, snap); ss != nil {
		snap.ServiceState = ss
	}

	return snap, nil
}

// serviceState arma el descriptor si el perfil tiene estado de servicio o
// volcado. El volcado del router se usa como texto de la entrada de registro
// NR para que la heurística vea los tokens nrState.
func (s *SNMPSource) serviceState(r fieldReader, snap telephony.Snapshot) *telephony.StaticServiceState {
	_, hasState := s.profile.Fields[profile.FieldServiceState]
	if !hasState && s.profile.ServiceStateDump == "" {
		return nil
	}

	ss := &telephony.StaticServiceState{
		StateCode: r.code(profile.FieldServiceState),
		Operator:  snap.NetworkOperatorName,
		IsRoaming: snap.Roaming,
		IsManual:  r.flag(profile.FieldManualSelection),
	}

	dump := ""
	if s.profile.ServiceStateDump != "" {
		if v, ok := r.values[oids.Normalize(s.profile.ServiceStateDump)]; ok {
			dump = snmp.DecodeField(v, snmp.DecodeNone)
		}
	}
	ss.Text = dump

	if snap.DataNetworkType > 0 {
		ss.Registrations = []telephony.NetworkRegistration{{
			Domain:                  telephony.DomainPS,
			AccessNetworkTechnology: snap.DataNetworkType,
			Text:                    dump,
		}}
	}

	return ss
}

// fieldReader interpreta los valores leídos según el perfil
type fieldReader struct {
	profile *profile.Profile
	values  map[string]snmp.Value
}

func (r fieldReader) raw(field string) (snmp.Value, profile.FieldMapping, bool) {
	fm, ok := r.profile.Fields[field]
	if !ok {
		return snmp.Value{}, fm, false
	}
	v, ok := r.values[oids.Normalize(fm.OID)]
	if !ok || v.Missing {
		return v, fm, false
	}
	return v, fm, true
}

// text retorna el valor decodificado o ""
func (r fieldReader) text(field string) string {
	v, fm, ok := r.raw(field)
	if !ok {
		return ""
	}
	return snmp.DecodeField(v, fm.Decode)
}

// code traduce un valor categórico al código de plataforma. Sin tabla se
// espera el número; un texto sin traducción queda como codeAbsent.
func (r fieldReader) code(field string) int {
	v, fm, ok := r.raw(field)
	if !ok {
		return codeAbsent
	}

	raw := strings.TrimSpace(snmp.DecodeField(v, fm.Decode))
	if code, found := lookupValue(fm.Values, raw); found {
		return code
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}

	log.Printf("⚠️  %s: valor sin traducción %q para %s", r.profile.Vendor, raw, profile.FriendlyName(r.profile, fm.OID))
	return codeAbsent
}

// flag interpreta valores booleanos habituales en MIBs
func (r fieldReader) flag(field string) bool {
	v, fm, ok := r.raw(field)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(snmp.DecodeField(v, fm.Decode))) {
	case "1", "true", "yes", "on", "enabled", "roaming":
		return true
	default:
		return false
	}
}

func lookupValue(values map[string]int, raw string) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if code, ok := values[raw]; ok {
		return code, true
	}
	for k, code := range values {
		if strings.EqualFold(k, raw) {
			return code, true
		}
	}
	return 0, false
}
