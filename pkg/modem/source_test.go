package modem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/asaavedra/agent-siminfo/pkg/nrstate"
	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// fakePort responde cada comando escrito con el texto que retorna handler
type fakePort struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	handler  func(cmd string) string
	writeErr error
	commands []string
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	cmd := string(b)
	p.commands = append(p.commands, strings.TrimSpace(cmd))
	p.buf.WriteString(p.handler(cmd))
	return len(b), nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf.Len() == 0 {
		return 0, io.EOF
	}
	return p.buf.Read(b)
}

func (p *fakePort) Close() error { return nil }

// scriptedModem simula un módulo con respuestas por comando; el formato de
// AT+COPS? depende del último AT+COPS=3,x
func scriptedModem(responses map[string]string, copsLong, copsNumeric string) func(string) string {
	format := "0"
	return func(cmd string) string {
		c := strings.TrimSpace(cmd)
		switch c {
		case "AT+COPS=3,0":
			format = "0"
			return "\r\nOK\r\n"
		case "AT+COPS=3,2":
			format = "2"
			return "\r\nOK\r\n"
		case "AT+COPS?":
			if format == "2" {
				return "\r\n" + copsNumeric + "\r\n\r\nOK\r\n"
			}
			return "\r\n" + copsLong + "\r\n\r\nOK\r\n"
		}
		if resp, ok := responses[c]; ok {
			return resp
		}
		return "\r\nERROR\r\n"
	}
}

func okResponse(line string) string {
	return "\r\n" + line + "\r\n\r\nOK\r\n"
}

func newTestModem(port io.ReadWriteCloser, tier telephony.Tier, quectel bool) *Modem {
	return New(port, Config{
		PortName:       "/dev/ttyUSB2",
		CommandTimeout: 300 * time.Millisecond,
		Tier:           tier,
		Quectel:        quectel,
	})
}

func TestSendCommand(t *testing.T) {
	port := &fakePort{handler: func(cmd string) string {
		// eco + respuesta
		return strings.TrimSpace(cmd) + "\r\n" + okResponse("+CPIN: READY")
	}}
	m := newTestModem(port, 34, false)

	resp, err := m.SendCommand(context.Background(), cmdSIMStatus)
	if err != nil {
		t.Fatalf("SendCommand: %v", err)
	}
	if resp != "+CPIN: READY\n" {
		t.Errorf("respuesta = %q", resp)
	}
}

func TestSendCommandError(t *testing.T) {
	port := &fakePort{handler: func(string) string { return "\r\n+CME ERROR: 10\r\n" }}
	m := newTestModem(port, 34, false)

	_, err := m.SendCommand(context.Background(), cmdSIMStatus)
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("esperaba *CommandError, got %v", err)
	}
	if ce.Code != 10 {
		t.Errorf("Code = %d, want 10", ce.Code)
	}
}

func TestSendCommandTimeout(t *testing.T) {
	port := &fakePort{handler: func(string) string { return "" }}
	m := newTestModem(port, 34, false)

	_, err := m.SendCommand(context.Background(), cmdIMSI)
	if err == nil || IsCommandError(err) {
		t.Fatalf("esperaba timeout, got %v", err)
	}
}

func TestSendCommandContextCancelled(t *testing.T) {
	port := &fakePort{handler: func(string) string { return "" }}
	m := newTestModem(port, 34, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.SendCommand(ctx, cmdIMSI); !errors.Is(err, context.Canceled) {
		t.Errorf("esperaba context.Canceled, got %v", err)
	}
}

func TestSnapshotLTE(t *testing.T) {
	port := &fakePort{handler: scriptedModem(map[string]string{
		"ATE0":      "\r\nOK\r\n",
		"AT+CPIN?":  okResponse("+CPIN: READY"),
		"AT+CIMI":   okResponse("440101234567890"),
		"AT+CCID":   okResponse("+CCID: 8981100022345678901F"),
		"AT+CGSN":   okResponse("356938035643809"),
		"AT+CNUM":   okResponse(`+CNUM: "","+819012345678",145`),
		"AT+CREG?":  okResponse("+CREG: 0,1"),
		"AT+CFUN?":  okResponse("+CFUN: 1"),
		"AT+CPAS":   okResponse("+CPAS: 0"),
		"AT+CGATT?": okResponse("+CGATT: 1"),
	}, `+COPS: 0,0,"NTT DOCOMO",7`, `+COPS: 0,2,"44010",7`)}

	src := NewSource(newTestModem(port, 34, false))
	if src.Name() != "/dev/ttyUSB2" {
		t.Errorf("Name = %q", src.Name())
	}

	snap, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snap.SIMState != telephony.SIMStateReady {
		t.Errorf("SIMState = %d", snap.SIMState)
	}
	if snap.SIMOperator != "44010" || snap.SIMCountryISO != "jp" {
		t.Errorf("SIM operator = %q/%q", snap.SIMOperator, snap.SIMCountryISO)
	}
	if snap.SIMOperatorName != "NTT DOCOMO" {
		t.Errorf("SIMOperatorName = %q", snap.SIMOperatorName)
	}
	if snap.NetworkOperator != "44010" || snap.NetworkOperatorName != "NTT DOCOMO" || snap.NetworkCountryISO != "jp" {
		t.Errorf("network = %q/%q/%q", snap.NetworkOperator, snap.NetworkOperatorName, snap.NetworkCountryISO)
	}
	if snap.SubscriberID == nil || *snap.SubscriberID != "440101234567890" {
		t.Errorf("SubscriberID = %v", snap.SubscriberID)
	}
	if snap.SIMSerial == nil || *snap.SIMSerial != "8981100022345678901" {
		t.Errorf("SIMSerial = %v", snap.SIMSerial)
	}
	if snap.DeviceID == nil || *snap.DeviceID != "356938035643809" {
		t.Errorf("DeviceID = %v", snap.DeviceID)
	}
	if snap.PhoneNumber == nil || *snap.PhoneNumber != "+819012345678" {
		t.Errorf("PhoneNumber = %v", snap.PhoneNumber)
	}
	if snap.NetworkType != telephony.NetworkTypeLTE || snap.DataNetworkType != telephony.NetworkTypeLTE {
		t.Errorf("network type = %d/%d", snap.NetworkType, snap.DataNetworkType)
	}
	if snap.Roaming {
		t.Error("no debería estar en roaming")
	}
	if snap.CallState != telephony.CallStateIdle || snap.DataState != telephony.DataConnected {
		t.Errorf("call/data = %d/%d", snap.CallState, snap.DataState)
	}
	if !snap.PermissionGranted || snap.Tier != 34 || snap.PhoneType != telephony.PhoneTypeGSM {
		t.Errorf("permission/tier/phone = %v/%d/%d", snap.PermissionGranted, snap.Tier, snap.PhoneType)
	}

	ss := snap.ServiceState
	if ss == nil {
		t.Fatal("ServiceState nil")
	}
	if ss.State() != telephony.ServiceInService || ss.OperatorAlphaLong() != "NTT DOCOMO" || ss.ManualSelection() {
		t.Errorf("service state = %d/%q/%v", ss.State(), ss.OperatorAlphaLong(), ss.ManualSelection())
	}
	if nrstate.Extract(ss).Determined() {
		t.Error("LTE no debería determinar modo NR")
	}

	// Sin Quectel no se consulta QNWINFO
	for _, c := range port.commands {
		if c == "AT+QNWINFO" {
			t.Error("no debería consultar AT+QNWINFO")
		}
	}
}

func TestSnapshotNRWithBand(t *testing.T) {
	port := &fakePort{handler: scriptedModem(map[string]string{
		"ATE0":       "\r\nOK\r\n",
		"AT+CPIN?":   okResponse("+CPIN: READY"),
		"AT+CIMI":    okResponse("310260123456789"),
		"AT+CREG?":   okResponse("+CREG: 0,5"),
		"AT+CFUN?":   okResponse("+CFUN: 1"),
		"AT+CPAS":    okResponse("+CPAS: 0"),
		"AT+CGATT?":  okResponse("+CGATT: 1"),
		"AT+QNWINFO": okResponse(`+QNWINFO: "NR5G-NSA","310260","NR5G BAND 260",2254165`),
	}, `+COPS: 1,0,"T-Mobile",13`, `+COPS: 1,2,"310260",13`)}

	snap, err := NewSource(newTestModem(port, 34, true)).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snap.NetworkType != telephony.NetworkTypeNR {
		t.Fatalf("NetworkType = %d, want NR", snap.NetworkType)
	}
	if !snap.Roaming {
		t.Error("CREG stat 5 es roaming")
	}
	if !snap.ServiceState.ManualSelection() {
		t.Error("COPS mode 1 es selección manual")
	}
	// ICCID/IMEI/CNUM rechazados → ausentes, no error
	if snap.SIMSerial != nil || snap.DeviceID != nil || snap.PhoneNumber != nil {
		t.Errorf("esperaba identificadores ausentes: %v %v %v", snap.SIMSerial, snap.DeviceID, snap.PhoneNumber)
	}

	got := nrstate.Extract(snap.ServiceState)
	if got.Mode != nrstate.ModeNonStandalone || got.Frequency != nrstate.FrequencyMMWave {
		t.Errorf("nr = %+v, want NSA + mmWave", got)
	}
}

func TestSnapshotNoSIM(t *testing.T) {
	port := &fakePort{handler: scriptedModem(map[string]string{
		"ATE0":     "\r\nOK\r\n",
		"AT+CPIN?": "\r\n+CME ERROR: 10\r\n",
		"AT+CREG?": okResponse("+CREG: 0,0"),
		"AT+CFUN?": okResponse("+CFUN: 1"),
	}, "+COPS: 0", "+COPS: 0")}

	snap, err := NewSource(newTestModem(port, 29, false)).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.SIMState != telephony.SIMStateAbsent {
		t.Errorf("SIMState = %d, want absent", snap.SIMState)
	}
	if snap.SubscriberID != nil || snap.SIMOperator != "" {
		t.Errorf("sin SIM no debería haber IMSI: %v %q", snap.SubscriberID, snap.SIMOperator)
	}
	if snap.NetworkType != telephony.NetworkTypeUnknown {
		t.Errorf("NetworkType = %d", snap.NetworkType)
	}
	if snap.ServiceState.State() != telephony.ServiceOutOfService {
		t.Errorf("service = %d", snap.ServiceState.State())
	}
	regs, err := snap.ServiceState.NetworkRegistrations()
	if err != nil || len(regs) != 0 {
		t.Errorf("registrations = %v, %v", regs, err)
	}
}

func TestSnapshotTransportError(t *testing.T) {
	port := &fakePort{writeErr: errors.New("device unplugged")}

	_, err := NewSource(newTestModem(port, 34, false)).Snapshot(context.Background())
	if err == nil {
		t.Fatal("esperaba error de transporte")
	}
	if IsCommandError(err) {
		t.Errorf("no debería ser CommandError: %v", err)
	}
}

func TestBuildServiceStateDump(t *testing.T) {
	ss := buildServiceState(serviceStateInput{
		state:    telephony.ServiceInService,
		operator: "Movistar",
		act:      12,
		band:     78,
	})
	dump, err := ss.Dump()
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	for _, want := range []string{"mOperatorAlphaLong=Movistar", "nrState=RESTRICTED", "nrFrequencyRange=SUB6"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump %q no contiene %q", dump, want)
		}
	}

	got := nrstate.Extract(ss)
	if got.Mode != nrstate.ModeStandalone || got.Frequency != nrstate.FrequencySub6 {
		t.Errorf("nr = %+v, want SA + sub-6", got)
	}
}
