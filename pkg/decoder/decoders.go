package decoder

import (
	"fmt"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Decode decodifica un código crudo según su categoría.
// Nunca falla: cualquier código fuera de la tabla produce una etiqueta
// explícita que incluye el código original.
func Decode(cat Category, code int) DecodedField {
	var label string
	var known bool

	switch cat {
	case CatSIMState:
		label, known = simStateLabel(code)
	case CatPhoneType:
		label, known = phoneTypeLabel(code)
	case CatCallState:
		label, known = callStateLabel(code)
	case CatDataState:
		label, known = dataStateLabel(code)
	case CatNetworkType:
		label, known = networkTypeLabel(code)
	case CatServiceState:
		label, known = serviceStateLabel(code)
	default:
		label = unknownLabel(code)
	}

	return DecodedField{
		Category: cat,
		Code:     code,
		Label:    label,
		Known:    known,
	}
}

// SIMState decodifica el estado de la SIM
func SIMState(code int) DecodedField { return Decode(CatSIMState, code) }

// PhoneType decodifica el tipo de teléfono
func PhoneType(code int) DecodedField { return Decode(CatPhoneType, code) }

// CallState decodifica el estado de llamada
func CallState(code int) DecodedField { return Decode(CatCallState, code) }

// DataState decodifica el estado de la conexión de datos
func DataState(code int) DecodedField { return Decode(CatDataState, code) }

// NetworkType decodifica la tecnología de acceso radio
func NetworkType(code int) DecodedField { return Decode(CatNetworkType, code) }

// ServiceState decodifica el estado de servicio
func ServiceState(code int) DecodedField { return Decode(CatServiceState, code) }

// IsNR indica si el código de tecnología corresponde a 5G NR
func IsNR(code int) bool {
	return code == telephony.NetworkTypeNR
}

func unknownLabel(code int) string {
	return fmt.Sprintf("unknown (%d)", code)
}

func simStateLabel(code int) (string, bool) {
	switch code {
	case telephony.SIMStateAbsent:
		return "absent", true
	case telephony.SIMStateReady:
		return "ready", true
	case telephony.SIMStatePINRequired:
		return "PIN required", true
	case telephony.SIMStatePUKRequired:
		return "PUK required", true
	case telephony.SIMStateNetworkLocked:
		return "network locked", true
	default:
		return unknownLabel(code), false
	}
}

func phoneTypeLabel(code int) (string, bool) {
	switch code {
	case telephony.PhoneTypeGSM:
		return "GSM (cellular)", true
	case telephony.PhoneTypeCDMA:
		return "CDMA (cellular)", true
	case telephony.PhoneTypeSIP:
		return "SIP (VoIP)", true
	case telephony.PhoneTypeNone:
		return "none", true
	default:
		// El tipo desconocido se reporta como "none" pero conserva el código
		return fmt.Sprintf("none (%d)", code), false
	}
}

func callStateLabel(code int) (string, bool) {
	switch code {
	case telephony.CallStateIdle:
		return "idle", true
	case telephony.CallStateRinging:
		return "ringing", true
	case telephony.CallStateOffHook:
		return "off-hook (in call)", true
	default:
		return unknownLabel(code), false
	}
}

func dataStateLabel(code int) (string, bool) {
	switch code {
	case telephony.DataConnected:
		return "connected", true
	case telephony.DataConnecting:
		return "connecting", true
	case telephony.DataDisconnected:
		return "disconnected", true
	case telephony.DataSuspended:
		return "suspended", true
	default:
		return unknownLabel(code), false
	}
}

// networkTypes mapea cada tecnología conocida a "<TECH> (<gen>G)"
var networkTypes = map[int]string{
	telephony.NetworkTypeGPRS:    "GPRS (2G)",
	telephony.NetworkTypeEDGE:    "EDGE (2G)",
	telephony.NetworkTypeUMTS:    "UMTS (3G)",
	telephony.NetworkTypeCDMA:    "CDMA (2G)",
	telephony.NetworkTypeEVDO0:   "EVDO rev. 0 (3G)",
	telephony.NetworkTypeEVDOA:   "EVDO rev. A (3G)",
	telephony.NetworkType1xRTT:   "1xRTT (2G)",
	telephony.NetworkTypeHSDPA:   "HSDPA (3G)",
	telephony.NetworkTypeHSUPA:   "HSUPA (3G)",
	telephony.NetworkTypeHSPA:    "HSPA (3G)",
	telephony.NetworkTypeIDEN:    "iDEN (2G)",
	telephony.NetworkTypeEVDOB:   "EVDO rev. B (3G)",
	telephony.NetworkTypeLTE:     "LTE (4G)",
	telephony.NetworkTypeEHRPD:   "eHRPD (3G)",
	telephony.NetworkTypeHSPAP:   "HSPA+ (3G)",
	telephony.NetworkTypeGSM:     "GSM (2G)",
	telephony.NetworkTypeTDSCDMA: "TD-SCDMA (3G)",
	telephony.NetworkTypeIWLAN:   "IWLAN (Wi-Fi)",
	telephony.NetworkTypeNR:      "NR (5G)",
}

func networkTypeLabel(code int) (string, bool) {
	if label, ok := networkTypes[code]; ok {
		return label, true
	}
	return fmt.Sprintf("other/unknown (%d)", code), false
}

func serviceStateLabel(code int) (string, bool) {
	switch code {
	case telephony.ServiceInService:
		return "in service", true
	case telephony.ServiceOutOfService:
		return "out of service", true
	case telephony.ServiceEmergencyOnly:
		return "emergency calls only", true
	case telephony.ServicePowerOff:
		return "power off", true
	default:
		return unknownLabel(code), false
	}
}
