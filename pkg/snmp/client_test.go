package snmp

import (
	"errors"
	"testing"

	"github.com/gosnmp/gosnmp"
)

// v1Agent responde como un agente SNMPv1: si algún OID no existe, rechaza
// el PDU entero con noSuchName
type v1Agent struct {
	values map[string]string
	calls  int
	err    error
}

func (a *v1Agent) Get(oids []string) (*gosnmp.SnmpPacket, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	pkt := &gosnmp.SnmpPacket{}
	for i, oid := range oids {
		text, ok := a.values[oid]
		if !ok {
			return &gosnmp.SnmpPacket{Error: gosnmp.NoSuchName, ErrorIndex: uint8(i + 1)}, nil
		}
		pkt.Variables = append(pkt.Variables, gosnmp.SnmpPDU{Name: "." + oid, Type: gosnmp.OctetString, Value: []byte(text)})
	}
	return pkt, nil
}

func TestGetChunkV1NoSuchNameFallsBackPerOID(t *testing.T) {
	agent := &v1Agent{values: map[string]string{
		"1.3.6.1.2.1.1.1.0":       "RUT955",
		"1.3.6.1.4.1.48690.2.1.0": "Movistar",
	}}
	oids := []string{"1.3.6.1.2.1.1.1.0", "1.3.6.1.4.1.48690.9.9.0", "1.3.6.1.4.1.48690.2.1.0"}

	values := map[string]Value{}
	if err := getChunk(agent, oids, values); err != nil {
		t.Fatalf("getChunk: %v", err)
	}

	if v := values["1.3.6.1.2.1.1.1.0"]; v.Text != "RUT955" || v.Missing {
		t.Errorf("sysDescr = %+v", v)
	}
	if v := values["1.3.6.1.4.1.48690.2.1.0"]; v.Text != "Movistar" {
		t.Errorf("operador = %+v", v)
	}
	if v, ok := values["1.3.6.1.4.1.48690.9.9.0"]; !ok || !v.Missing {
		t.Errorf("OID inexistente = %+v, want Missing", v)
	}
	// un PDU completo + uno por OID
	if agent.calls != 4 {
		t.Errorf("calls = %d, want 4", agent.calls)
	}
}

func TestGetChunkSinglePDU(t *testing.T) {
	agent := &v1Agent{values: map[string]string{"1.3.6.1.2.1.1.5.0": "router-01"}}

	values := map[string]Value{}
	if err := getChunk(agent, []string{"1.3.6.1.2.1.1.5.0"}, values); err != nil {
		t.Fatalf("getChunk: %v", err)
	}
	if values["1.3.6.1.2.1.1.5.0"].Text != "router-01" || agent.calls != 1 {
		t.Errorf("values = %+v, calls = %d", values, agent.calls)
	}
}

func TestGetChunkTransportError(t *testing.T) {
	timeout := errors.New("request timeout")
	agent := &v1Agent{err: timeout}

	err := getChunk(agent, []string{"1.3.6.1.2.1.1.1.0"}, map[string]Value{})
	if !errors.Is(err, timeout) {
		t.Errorf("err = %v, want %v", err, timeout)
	}
}
