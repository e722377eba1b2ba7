package profile

// Profile describe cómo leer el estado de SIM y red de un modelo de router
// celular por SNMP. Un fabricante = un perfil.
type Profile struct {
	Vendor string   `yaml:"vendor"`
	Match  []string `yaml:"match"` // patrones (minúsculas) buscados en sysDescr

	// Prefijo de sysObjectID del fabricante; tiene prioridad sobre Match
	ObjectIDPrefix string `yaml:"object_id_prefix,omitempty"`

	// Campo del snapshot -> cómo leerlo
	Fields map[string]FieldMapping `yaml:"fields"`

	// OID opcional con el volcado textual del estado de servicio
	ServiceStateDump string `yaml:"service_state_dump,omitempty"`
}

// FieldMapping es la lectura de un campo del snapshot
type FieldMapping struct {
	OID string `yaml:"oid"`

	// Valor crudo (sin distinguir mayúsculas) -> código de plataforma.
	// Sólo para campos categóricos; sin tabla se espera el código numérico.
	Values map[string]int `yaml:"values,omitempty"`

	// "", "hex" o "bcd" (ver snmp.DecodeField)
	Decode string `yaml:"decode,omitempty"`
}

// Nombres de campo aceptados en Fields
const (
	FieldSIMState            = "sim_state"
	FieldPhoneType           = "phone_type"
	FieldSIMOperator         = "sim_operator"
	FieldSIMOperatorName     = "sim_operator_name"
	FieldSIMCountryISO       = "sim_country_iso"
	FieldNetworkOperator     = "network_operator"
	FieldNetworkOperatorName = "network_operator_name"
	FieldNetworkCountryISO   = "network_country_iso"
	FieldRoaming             = "roaming"
	FieldVoiceCapable        = "voice_capable"
	FieldSMSCapable          = "sms_capable"
	FieldNetworkType         = "network_type"
	FieldDataNetworkType     = "data_network_type"
	FieldCallState           = "call_state"
	FieldDataState           = "data_state"
	FieldPhoneNumber         = "phone_number"
	FieldSubscriberID        = "subscriber_id"
	FieldSIMSerial           = "sim_serial"
	FieldDeviceID            = "device_id"
	FieldServiceState        = "service_state"
	FieldManualSelection     = "manual_selection"
)

// FieldKind clasifica cómo se interpreta el valor leído
type FieldKind int

const (
	KindText FieldKind = iota
	KindCode
	KindBool
)

// KnownFields mapea cada campo aceptado a su tipo
var KnownFields = map[string]FieldKind{
	FieldSIMState:            KindCode,
	FieldPhoneType:           KindCode,
	FieldSIMOperator:         KindText,
	FieldSIMOperatorName:     KindText,
	FieldSIMCountryISO:       KindText,
	FieldNetworkOperator:     KindText,
	FieldNetworkOperatorName: KindText,
	FieldNetworkCountryISO:   KindText,
	FieldRoaming:             KindBool,
	FieldVoiceCapable:        KindBool,
	FieldSMSCapable:          KindBool,
	FieldNetworkType:         KindCode,
	FieldDataNetworkType:     KindCode,
	FieldCallState:           KindCode,
	FieldDataState:           KindCode,
	FieldPhoneNumber:         KindText,
	FieldSubscriberID:        KindText,
	FieldSIMSerial:           KindText,
	FieldDeviceID:            KindText,
	FieldServiceState:        KindCode,
	FieldManualSelection:     KindBool,
}

// Coverage indica qué campos del perfil respondieron en un router
type Coverage struct {
	Vendor    string   `json:"vendor"`
	Supported []string `json:"supported_fields"` // campos que respondieron
	Failed    []string `json:"failed_fields"`    // campos sin valor
}
