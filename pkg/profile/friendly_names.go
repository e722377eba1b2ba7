package profile

import (
	"fmt"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
)

// fieldNames son los nombres legibles de cada campo, para logs
var fieldNames = map[string]string{
	FieldSIMState:            "SIM state",
	FieldPhoneType:           "Phone type",
	FieldSIMOperator:         "SIM operator (MCC+MNC)",
	FieldSIMOperatorName:     "SIM operator name",
	FieldSIMCountryISO:       "SIM country",
	FieldNetworkOperator:     "Network operator (MCC+MNC)",
	FieldNetworkOperatorName: "Network operator name",
	FieldNetworkCountryISO:   "Network country",
	FieldRoaming:             "Roaming",
	FieldVoiceCapable:        "Voice capable",
	FieldSMSCapable:          "SMS capable",
	FieldNetworkType:         "Network type",
	FieldDataNetworkType:     "Data network type",
	FieldCallState:           "Call state",
	FieldDataState:           "Data state",
	FieldPhoneNumber:         "Phone number",
	FieldSubscriberID:        "Subscriber ID (IMSI)",
	FieldSIMSerial:           "SIM serial (ICCID)",
	FieldDeviceID:            "Device ID (IMEI/MEID)",
	FieldServiceState:        "Service state",
	FieldManualSelection:     "Network selection",
	"service_state_dump":     "Service state dump",
}

// FieldForOID retorna el campo del perfil que lee el OID ("" si ninguno)
func (p *Profile) FieldForOID(oid string) string {
	oid = oids.Normalize(oid)
	for name, fm := range p.Fields {
		if oids.Normalize(fm.OID) == oid {
			return name
		}
	}
	if p.ServiceStateDump != "" && oids.Normalize(p.ServiceStateDump) == oid {
		return "service_state_dump"
	}
	return ""
}

// FriendlyName retorna un nombre legible para un OID del perfil:
// "SIM serial (ICCID) [1.3.6.1...]". OIDs ajenos al perfil se muestran tal cual.
func FriendlyName(p *Profile, oid string) string {
	oid = oids.Normalize(oid)
	field := p.FieldForOID(oid)
	if field == "" {
		return "OID " + oid
	}
	if name, ok := fieldNames[field]; ok {
		return fmt.Sprintf("%s [%s]", name, oid)
	}
	return fmt.Sprintf("%s [%s]", field, oid)
}
