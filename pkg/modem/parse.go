package modem

import (
	"strconv"
	"strings"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// cmeSIMNotInserted es el código +CME ERROR de 27.007 para "SIM not inserted"
const cmeSIMNotInserted = 10

// parseErrorCode extrae el código numérico de "+CME ERROR: <n>"
func parseErrorCode(line string) int {
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return -1
	}
	code, err := strconv.Atoi(strings.TrimSpace(line[idx+1:]))
	if err != nil {
		return -1
	}
	return code
}

// fieldsAfter retorna los campos separados por coma de la primera línea que
// empieza con prefix ("+COPS:"), sin comillas
func fieldsAfter(response, prefix string) ([]string, bool) {
	for _, rawLine := range strings.Split(response, "\n") {
		line := strings.TrimSpace(rawLine)
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		parts := strings.Split(rest, ",")
		for i, p := range parts {
			parts[i] = strings.Trim(strings.TrimSpace(p), "\"")
		}
		return parts, true
	}
	return nil, false
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// parseSIMState traduce la respuesta de AT+CPIN? al código de plataforma
func parseSIMState(response string) int {
	fields, ok := fieldsAfter(response, "+CPIN:")
	if !ok || len(fields) == 0 {
		return telephony.SIMStateUnknown
	}

	switch strings.ToUpper(fields[0]) {
	case "READY":
		return telephony.SIMStateReady
	case "SIM PIN", "SIM PIN2":
		return telephony.SIMStatePINRequired
	case "SIM PUK", "SIM PUK2":
		return telephony.SIMStatePUKRequired
	case "PH-NET PIN", "PH-NET PUK":
		return telephony.SIMStateNetworkLocked
	default:
		return telephony.SIMStateUnknown
	}
}

// firstDigitsLine retorna la primera línea (sin prefijo "+XXX:") que tenga al
// menos minLen dígitos. Para ICCID se aceptan hex y la 'F' de relleno.
func firstDigitsLine(response string, minLen int, allowHex bool) string {
	for _, rawLine := range strings.Split(response, "\n") {
		line := strings.TrimSpace(rawLine)
		if idx := strings.Index(line, ":"); idx >= 0 && strings.HasPrefix(line, "+") {
			line = strings.TrimSpace(line[idx+1:])
		}
		line = strings.Trim(line, "\"")
		if len(line) < minLen {
			continue
		}
		if isAllDigits(line) || (allowHex && isHexDigits(line)) {
			return strings.TrimRight(line, "Ff")
		}
	}
	return ""
}

// isAllDigits verifica si el string es sólo dígitos
func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isHexDigits(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return s != ""
}

// parseOwnNumber extrae el número de "+CNUM: "alpha","+8613800000000",145"
func parseOwnNumber(response string) string {
	fields, ok := fieldsAfter(response, "+CNUM:")
	if !ok || len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// operatorInfo es el resultado de AT+COPS?
type operatorInfo struct {
	Mode     int // 0 automático, 1 manual
	Operator string
	AcT      int // -1 si no viene
	Present  bool
}

// parseOperator interpreta "+COPS: <mode>[,<format>,<oper>[,<AcT>]]"
func parseOperator(response string) operatorInfo {
	fields, ok := fieldsAfter(response, "+COPS:")
	if !ok || len(fields) == 0 {
		return operatorInfo{AcT: -1}
	}

	info := operatorInfo{Mode: atoiOr(fields[0], 0), AcT: -1}
	if len(fields) >= 3 {
		info.Operator = fields[2]
		info.Present = info.Operator != ""
	}
	if len(fields) >= 4 {
		info.AcT = atoiOr(fields[3], -1)
	}
	return info
}

// accessTechnologies mapea AcT de 27.007 a network type de la plataforma
var accessTechnologies = map[int]int{
	0:  telephony.NetworkTypeGSM,
	1:  telephony.NetworkTypeGSM, // GSM compact
	2:  telephony.NetworkTypeUMTS,
	3:  telephony.NetworkTypeEDGE,
	4:  telephony.NetworkTypeHSDPA,
	5:  telephony.NetworkTypeHSUPA,
	6:  telephony.NetworkTypeHSPA,
	7:  telephony.NetworkTypeLTE,
	8:  telephony.NetworkTypeGSM, // EC-GSM-IoT
	9:  telephony.NetworkTypeLTE, // NB-IoT
	10: telephony.NetworkTypeLTE, // E-UTRAN conectado a 5GCN
	11: telephony.NetworkTypeNR,
	12: telephony.NetworkTypeNR, // NG-RAN
	13: telephony.NetworkTypeNR, // E-UTRA-NR dual connectivity (EN-DC)
}

// networkTypeFromAcT traduce AcT; valores desconocidos → NetworkTypeUnknown
func networkTypeFromAcT(act int) int {
	if nt, ok := accessTechnologies[act]; ok {
		return nt
	}
	return telephony.NetworkTypeUnknown
}

// nrStateFromAcT retorna el token nrState que corresponde al AcT.
// EN-DC ancla en LTE (NSA); NR/NG-RAN registran directo (SA).
func nrStateFromAcT(act int) string {
	switch act {
	case 13:
		return "CONNECTED"
	case 11, 12:
		return "RESTRICTED"
	default:
		return ""
	}
}

// parseRegistration retorna <stat> de "+CREG: <n>,<stat>[,...]"
func parseRegistration(response string) int {
	fields, ok := fieldsAfter(response, "+CREG:")
	if !ok || len(fields) < 2 {
		return -1
	}
	return atoiOr(fields[1], -1)
}

// serviceStateFromRegistration traduce <stat> (+ CFUN) al estado de servicio
func serviceStateFromRegistration(stat, cfun int) int {
	if cfun == 0 {
		return telephony.ServicePowerOff
	}
	switch stat {
	case 1, 5:
		return telephony.ServiceInService
	case 3:
		// Registro denegado: sólo llamadas de emergencia
		return telephony.ServiceEmergencyOnly
	default:
		return telephony.ServiceOutOfService
	}
}

// parseFunctionality retorna <fun> de "+CFUN: <fun>"
func parseFunctionality(response string) int {
	fields, ok := fieldsAfter(response, "+CFUN:")
	if !ok || len(fields) == 0 {
		return -1
	}
	return atoiOr(fields[0], -1)
}

// parseCallState traduce "+CPAS: <pas>" al estado de llamada.
// 1 (unavailable) y 2 (unknown) no tienen equivalente: -1.
func parseCallState(response string) int {
	fields, ok := fieldsAfter(response, "+CPAS:")
	if !ok || len(fields) == 0 {
		return -1
	}
	switch atoiOr(fields[0], -1) {
	case 0:
		return telephony.CallStateIdle
	case 3:
		return telephony.CallStateRinging
	case 4:
		return telephony.CallStateOffHook
	default:
		return -1
	}
}

// parseDataState traduce "+CGATT: <state>"
func parseDataState(response string) int {
	fields, ok := fieldsAfter(response, "+CGATT:")
	if !ok || len(fields) == 0 {
		return telephony.DataUnknown
	}
	switch atoiOr(fields[0], -1) {
	case 1:
		return telephony.DataConnected
	case 0:
		return telephony.DataDisconnected
	default:
		return telephony.DataUnknown
	}
}

// parseNRBand extrae el número de banda NR de
// "+QNWINFO: "NR5G-NSA","46001","NR5G BAND 78",627264". Retorna 0 si no es NR.
func parseNRBand(response string) int {
	fields, ok := fieldsAfter(response, "+QNWINFO:")
	if !ok || len(fields) < 3 {
		return 0
	}
	band := strings.ToUpper(fields[2])
	if !strings.HasPrefix(band, "NR5G BAND") {
		return 0
	}
	return atoiOr(strings.TrimPrefix(band, "NR5G BAND"), 0)
}

// frequencyRangeToken retorna el token de rango para la banda NR:
// n257–n262 son FR2 (mmWave), el resto FR1
func frequencyRangeToken(band int) string {
	switch {
	case band <= 0:
		return ""
	case band >= 257 && band <= 262:
		return "MMWAVE"
	default:
		return "SUB6"
	}
}
