package modem

import (
	"testing"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

func TestParseSIMState(t *testing.T) {
	tests := []struct {
		response string
		want     int
	}{
		{"+CPIN: READY", telephony.SIMStateReady},
		{"+CPIN: SIM PIN", telephony.SIMStatePINRequired},
		{"+CPIN: SIM PUK", telephony.SIMStatePUKRequired},
		{"+CPIN: PH-NET PIN", telephony.SIMStateNetworkLocked},
		{"+CPIN: PH-SIM PIN", telephony.SIMStateUnknown},
		{"", telephony.SIMStateUnknown},
	}

	for _, tt := range tests {
		if got := parseSIMState(tt.response); got != tt.want {
			t.Errorf("parseSIMState(%q) = %d, want %d", tt.response, got, tt.want)
		}
	}
}

func TestParseErrorCode(t *testing.T) {
	if got := parseErrorCode("+CME ERROR: 10"); got != 10 {
		t.Errorf("parseErrorCode = %d, want 10", got)
	}
	if got := parseErrorCode("ERROR"); got != -1 {
		t.Errorf("parseErrorCode(ERROR) = %d, want -1", got)
	}
}

func TestFirstDigitsLine(t *testing.T) {
	if got := firstDigitsLine("440101234567890", imsiMinLength, false); got != "440101234567890" {
		t.Errorf("IMSI = %q", got)
	}
	if got := firstDigitsLine("+CCID: 89860318740100000F0F", 18, true); got != "89860318740100000F0" {
		t.Errorf("ICCID = %q", got)
	}
	if got := firstDigitsLine("+CCID: \"8981100022345678901F\"", 18, true); got != "8981100022345678901" {
		t.Errorf("ICCID con comillas = %q", got)
	}
	if got := firstDigitsLine("12345", imsiMinLength, false); got != "" {
		t.Errorf("línea corta debería ignorarse, got %q", got)
	}
	if got := firstDigitsLine("ABCDEF0123456789", 14, false); got != "" {
		t.Errorf("hex sin allowHex debería ignorarse, got %q", got)
	}
}

func TestParseOwnNumber(t *testing.T) {
	if got := parseOwnNumber(`+CNUM: "","+819012345678",145`); got != "+819012345678" {
		t.Errorf("parseOwnNumber = %q", got)
	}
	if got := parseOwnNumber(""); got != "" {
		t.Errorf("parseOwnNumber vacío = %q", got)
	}
}

func TestParseOperator(t *testing.T) {
	info := parseOperator(`+COPS: 0,0,"NTT DOCOMO",7`)
	if info.Mode != 0 || info.Operator != "NTT DOCOMO" || info.AcT != 7 || !info.Present {
		t.Errorf("parseOperator = %+v", info)
	}

	info = parseOperator(`+COPS: 1,2,"44010"`)
	if info.Mode != 1 || info.Operator != "44010" || info.AcT != -1 {
		t.Errorf("parseOperator sin AcT = %+v", info)
	}

	info = parseOperator("+COPS: 0")
	if info.Present || info.Operator != "" || info.AcT != -1 {
		t.Errorf("parseOperator sin registro = %+v", info)
	}
}

func TestNetworkTypeFromAcT(t *testing.T) {
	tests := map[int]int{
		0:  telephony.NetworkTypeGSM,
		2:  telephony.NetworkTypeUMTS,
		7:  telephony.NetworkTypeLTE,
		11: telephony.NetworkTypeNR,
		13: telephony.NetworkTypeNR,
		-1: telephony.NetworkTypeUnknown,
		42: telephony.NetworkTypeUnknown,
	}
	for act, want := range tests {
		if got := networkTypeFromAcT(act); got != want {
			t.Errorf("networkTypeFromAcT(%d) = %d, want %d", act, got, want)
		}
	}
}

func TestNRStateFromAcT(t *testing.T) {
	if got := nrStateFromAcT(13); got != "CONNECTED" {
		t.Errorf("EN-DC = %q", got)
	}
	if got := nrStateFromAcT(12); got != "RESTRICTED" {
		t.Errorf("NG-RAN = %q", got)
	}
	if got := nrStateFromAcT(7); got != "" {
		t.Errorf("LTE = %q", got)
	}
}

func TestServiceStateFromRegistration(t *testing.T) {
	tests := []struct {
		stat, cfun int
		want       int
	}{
		{1, 1, telephony.ServiceInService},
		{5, 1, telephony.ServiceInService},
		{3, 1, telephony.ServiceEmergencyOnly},
		{2, 1, telephony.ServiceOutOfService},
		{-1, -1, telephony.ServiceOutOfService},
		{1, 0, telephony.ServicePowerOff},
	}
	for _, tt := range tests {
		if got := serviceStateFromRegistration(tt.stat, tt.cfun); got != tt.want {
			t.Errorf("serviceStateFromRegistration(%d, %d) = %d, want %d", tt.stat, tt.cfun, got, tt.want)
		}
	}
}

func TestParseCallAndDataState(t *testing.T) {
	if got := parseCallState("+CPAS: 4"); got != telephony.CallStateOffHook {
		t.Errorf("CPAS 4 = %d", got)
	}
	if got := parseCallState("+CPAS: 2"); got != -1 {
		t.Errorf("CPAS 2 = %d, want -1", got)
	}
	if got := parseDataState("+CGATT: 1"); got != telephony.DataConnected {
		t.Errorf("CGATT 1 = %d", got)
	}
	if got := parseDataState(""); got != telephony.DataUnknown {
		t.Errorf("CGATT vacío = %d", got)
	}
}

func TestParseNRBand(t *testing.T) {
	if got := parseNRBand(`+QNWINFO: "NR5G-NSA","46001","NR5G BAND 78",627264`); got != 78 {
		t.Errorf("band = %d, want 78", got)
	}
	if got := parseNRBand(`+QNWINFO: "FDD LTE","46001","LTE BAND 3",1650`); got != 0 {
		t.Errorf("LTE band = %d, want 0", got)
	}
	if got := frequencyRangeToken(258); got != "MMWAVE" {
		t.Errorf("n258 = %q", got)
	}
	if got := frequencyRangeToken(78); got != "SUB6" {
		t.Errorf("n78 = %q", got)
	}
	if got := frequencyRangeToken(0); got != "" {
		t.Errorf("sin banda = %q", got)
	}
}

func TestOperatorFromIMSI(t *testing.T) {
	if got := operatorFromIMSI("440101234567890"); got != "44010" {
		t.Errorf("JP = %q", got)
	}
	if got := operatorFromIMSI("310260123456789"); got != "310260" {
		t.Errorf("US = %q", got)
	}
	if got := operatorFromIMSI("4401"); got != "" {
		t.Errorf("corto = %q", got)
	}
	if got := countryFromOperator("44010"); got != "jp" {
		t.Errorf("país = %q", got)
	}
	if got := countryFromOperator("99999"); got != "" {
		t.Errorf("MCC desconocido = %q", got)
	}
}
