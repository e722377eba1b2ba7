package telephony

// Códigos de la plataforma (numeración de TelephonyManager / ServiceState).
// Las fuentes que no son Android (SNMP, módem AT) traducen a estos valores.

// Estado de la SIM
const (
	SIMStateUnknown       = 0
	SIMStateAbsent        = 1
	SIMStatePINRequired   = 2
	SIMStatePUKRequired   = 3
	SIMStateNetworkLocked = 4
	SIMStateReady         = 5
	SIMStateNotReady      = 6
)

// Tipo de teléfono
const (
	PhoneTypeNone = 0
	PhoneTypeGSM  = 1
	PhoneTypeCDMA = 2
	PhoneTypeSIP  = 3
)

// Estado de llamada
const (
	CallStateIdle    = 0
	CallStateRinging = 1
	CallStateOffHook = 2
)

// Estado de la conexión de datos
const (
	DataUnknown      = -1
	DataDisconnected = 0
	DataConnecting   = 1
	DataConnected    = 2
	DataSuspended    = 3
)

// Tecnología de acceso radio (network type)
const (
	NetworkTypeUnknown = 0
	NetworkTypeGPRS    = 1
	NetworkTypeEDGE    = 2
	NetworkTypeUMTS    = 3
	NetworkTypeCDMA    = 4
	NetworkTypeEVDO0   = 5
	NetworkTypeEVDOA   = 6
	NetworkType1xRTT   = 7
	NetworkTypeHSDPA   = 8
	NetworkTypeHSUPA   = 9
	NetworkTypeHSPA    = 10
	NetworkTypeIDEN    = 11
	NetworkTypeEVDOB   = 12
	NetworkTypeLTE     = 13
	NetworkTypeEHRPD   = 14
	NetworkTypeHSPAP   = 15
	NetworkTypeGSM     = 16
	NetworkTypeTDSCDMA = 17
	NetworkTypeIWLAN   = 18
	NetworkTypeNR      = 20
)

// Estado de servicio (ServiceState.getState)
const (
	ServiceInService     = 0
	ServiceOutOfService  = 1
	ServiceEmergencyOnly = 2
	ServicePowerOff      = 3
)

// Dominio de NetworkRegistrationInfo
const (
	DomainCS = 1
	DomainPS = 2
)

// Tier es el nivel de capacidad de la plataforma (API level en Android).
// Todas las decisiones por versión se toman comparando contra un Tier.
type Tier int

// Niveles conocidos que usan los umbrales por defecto
const (
	TierNougat Tier = 24 // dataNetworkType disponible
	TierOreo   Tier = 26 // getServiceState disponible
	TierQ      Tier = 29 // NetworkRegistrationInfo con nrState
)
