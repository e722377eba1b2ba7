package snmp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// Value es el valor de un OID tal como llegó del router
type Value struct {
	OID     string
	Text    string // valor legible (texto o número)
	Raw     []byte // octetos crudos si era OCTET STRING
	Missing bool   // noSuchObject / noSuchInstance / NULL
}

// Getter es lo que necesitan las fuentes para leer OIDs
type Getter interface {
	GetMultiple(ctx context.Context, oids []string) (map[string]Value, error)
}

// SNMPClient wrapper alrededor de gosnmp para manejar SNMP v1/v2c
type SNMPClient struct {
	host      string
	port      uint16
	community string
	version   string
	timeout   time.Duration
	retries   int
}

// NewSNMPClient crea un nuevo cliente SNMP
func NewSNMPClient(host string, port uint16, community, version string, timeout time.Duration, retries int) *SNMPClient {
	if port == 0 {
		port = 161
	}
	return &SNMPClient{
		host:      host,
		port:      port,
		community: community,
		version:   version,
		timeout:   timeout,
		retries:   retries,
	}
}

// GetMultiple obtiene múltiples OIDs. Los OIDs que el agente no implementa
// vuelven con Missing=true, no como error.
func (sc *SNMPClient) GetMultiple(ctx context.Context, oids []string) (map[string]Value, error) {
	values := make(map[string]Value, len(oids))
	if len(oids) == 0 {
		return values, nil
	}

	client, err := sc.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Conn.Close()

	// gosnmp limita la cantidad de OIDs por PDU
	for start := 0; start < len(oids); start += gosnmp.MaxOids {
		end := start + gosnmp.MaxOids
		if end > len(oids) {
			end = len(oids)
		}
		if err := getChunk(client, oids[start:end], values); err != nil {
			return nil, err
		}
	}

	return values, nil
}

// pduGetter es la parte de gosnmp.GoSNMP que usa getChunk
type pduGetter interface {
	Get(oids []string) (*gosnmp.SnmpPacket, error)
}

// getChunk hace un GET de un PDU y agrega los valores a values.
// En SNMPv1 un solo OID inexistente rechaza el PDU entero con noSuchName:
// se reintenta OID por OID y los rechazados quedan como Missing.
func getChunk(g pduGetter, oids []string, values map[string]Value) error {
	result, err := g.Get(oids)
	if err != nil {
		return fmt.Errorf("error SNMP GET múltiple: %w", err)
	}
	if result == nil {
		return fmt.Errorf("sin respuesta para OIDs")
	}

	if result.Error == gosnmp.NoSuchName {
		if len(oids) == 1 {
			oid := strings.TrimPrefix(oids[0], ".")
			values[oid] = Value{OID: oid, Missing: true}
			return nil
		}
		for _, oid := range oids {
			if err := getChunk(g, []string{oid}, values); err != nil {
				return err
			}
		}
		return nil
	}
	if result.Error != gosnmp.NoError {
		return fmt.Errorf("SNMP error %d: %s", result.Error, result.Error.String())
	}

	for _, variable := range result.Variables {
		v := parseValue(variable)
		values[v.OID] = v
	}
	return nil
}

// connect establece conexión SNMP
func (sc *SNMPClient) connect(ctx context.Context) (*gosnmp.GoSNMP, error) {
	var version gosnmp.SnmpVersion

	switch sc.version {
	case "1":
		version = gosnmp.Version1
	case "2c":
		version = gosnmp.Version2c
	default:
		version = gosnmp.Version2c
	}

	params := &gosnmp.GoSNMP{
		Target:    sc.host,
		Port:      sc.port,
		Community: sc.community,
		Version:   version,
		Timeout:   sc.timeout,
		Retries:   sc.retries,
		Context:   ctx,
		MaxOids:   gosnmp.MaxOids,
	}

	err := params.Connect()
	if err != nil {
		return nil, fmt.Errorf("error conectando a %s:%d: %w", sc.host, sc.port, err)
	}

	return params, nil
}

// parseValue convierte un PDU en Value. gosnmp entrega los nombres con
// punto inicial; se normalizan sin él.
func parseValue(variable gosnmp.SnmpPDU) Value {
	v := Value{OID: strings.TrimPrefix(variable.Name, ".")}

	switch variable.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.Null, gosnmp.EndOfMibView:
		v.Missing = true
		return v
	}

	switch val := variable.Value.(type) {
	case nil:
		v.Missing = true
	case string:
		v.Text = strings.TrimRight(val, "\x00")
		v.Raw = []byte(val)
	case []byte:
		v.Raw = val
		if isLikelyText(val) {
			v.Text = strings.TrimRight(string(val), "\x00")
		}
	default:
		// Integer, Counter32, Gauge32, TimeTicks...
		v.Text = gosnmp.ToBigInt(val).String()
	}

	return v
}
