package modem

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Source arma snapshots consultando el módem con comandos AT.
// Implementa collector.Source.
type Source struct {
	modem *Modem
	name  string
}

// NewSource crea una fuente sobre un Modem abierto
func NewSource(m *Modem) *Source {
	name := m.config.PortName
	if name == "" {
		name = "modem"
	}
	return &Source{modem: m, name: name}
}

// Name identifica la fuente (el puerto serie)
func (s *Source) Name() string {
	return s.name
}

// Kind identifica el tipo de fuente
func (s *Source) Kind() string { return "modem" }

// Close cierra el puerto del módem
func (s *Source) Close() error { return s.modem.Close() }

// Snapshot consulta el módem y arma un telephony.Snapshot.
// Los rechazos del módem (+CME ERROR) en lecturas privilegiadas se
// convierten en valores ausentes; sólo los fallos de transporte son error.
func (s *Source) Snapshot(ctx context.Context) (telephony.Snapshot, error) {
	m := s.modem
	snap := telephony.Snapshot{
		PhoneType:         telephony.PhoneTypeGSM,
		VoiceCapable:      true,
		SMSCapable:        true,
		PermissionGranted: true, // sobre AT no hay permisos de plataforma
		Tier:              m.config.Tier,
	}

	if _, err := m.query(ctx, cmdEchoOff); err != nil {
		return snap, fmt.Errorf("módem no responde: %w", err)
	}

	simState, err := m.readSIMState(ctx)
	if err != nil {
		return snap, err
	}
	snap.SIMState = simState

	// Identidad de la SIM y del equipo
	imsiResp, err := m.query(ctx, cmdIMSI)
	if err != nil {
		return snap, err
	}
	imsi := firstDigitsLine(imsiResp, imsiMinLength, false)
	snap.SubscriberID = telephony.Optional(imsi)
	snap.SIMOperator = operatorFromIMSI(imsi)
	snap.SIMCountryISO = countryFromOperator(snap.SIMOperator)

	iccidResp, err := m.query(ctx, cmdICCID)
	if err != nil {
		return snap, err
	}
	snap.SIMSerial = telephony.Optional(firstDigitsLine(iccidResp, 18, true))

	imeiResp, err := m.query(ctx, cmdIMEI)
	if err != nil {
		return snap, err
	}
	snap.DeviceID = telephony.Optional(firstDigitsLine(imeiResp, 14, false))

	numResp, err := m.query(ctx, cmdOwnNumber)
	if err != nil {
		return snap, err
	}
	snap.PhoneNumber = telephony.Optional(parseOwnNumber(numResp))

	// Operador de red: nombre largo y MCC+MNC numérico
	longOp, err := m.readOperator(ctx, cmdOperatorLong)
	if err != nil {
		return snap, err
	}
	numOp, err := m.readOperator(ctx, cmdOperatorNumber)
	if err != nil {
		return snap, err
	}
	snap.NetworkOperatorName = longOp.Operator
	snap.NetworkOperator = numOp.Operator
	snap.NetworkCountryISO = countryFromOperator(numOp.Operator)
	if snap.SIMOperatorName == "" && snap.SIMOperator != "" && snap.SIMOperator == snap.NetworkOperator {
		// En red propia el nombre de la SIM coincide con el de la red
		snap.SIMOperatorName = longOp.Operator
	}

	act := longOp.AcT
	if act < 0 {
		act = numOp.AcT
	}
	snap.NetworkType = networkTypeFromAcT(act)
	snap.DataNetworkType = snap.NetworkType

	// Registro y estado de servicio
	regResp, err := m.query(ctx, cmdRegistration)
	if err != nil {
		return snap, err
	}
	funResp, err := m.query(ctx, cmdFunctionality)
	if err != nil {
		return snap, err
	}
	stat := parseRegistration(regResp)
	snap.Roaming = stat == 5

	activityResp, err := m.query(ctx, cmdActivity)
	if err != nil {
		return snap, err
	}
	snap.CallState = parseCallState(activityResp)

	attachResp, err := m.query(ctx, cmdAttach)
	if err != nil {
		return snap, err
	}
	snap.DataState = parseDataState(attachResp)

	band := 0
	if m.config.Quectel && snap.DataNetworkType == telephony.NetworkTypeNR {
		infoResp, err := m.query(ctx, cmdNetworkInfo)
		if err != nil {
			return snap, err
		}
		band = parseNRBand(infoResp)
	}

	snap.ServiceState = buildServiceState(serviceStateInput{
		state:    serviceStateFromRegistration(stat, parseFunctionality(funResp)),
		operator: longOp.Operator,
		roaming:  snap.Roaming,
		manual:   longOp.Mode == 1,
		act:      act,
		band:     band,
	})

	return snap, nil
}

// readSIMState consulta AT+CPIN?. "+CME ERROR: 10" significa SIM ausente.
func (m *Modem) readSIMState(ctx context.Context) (int, error) {
	resp, err := m.SendCommand(ctx, cmdSIMStatus)
	if err == nil {
		return parseSIMState(resp), nil
	}

	var ce *CommandError
	if errors.As(err, &ce) {
		if ce.Code == cmeSIMNotInserted {
			return telephony.SIMStateAbsent, nil
		}
		log.Printf("%s %v", logPrefix, err)
		return telephony.SIMStateUnknown, nil
	}
	return telephony.SIMStateUnknown, err
}

// readOperator fija el formato de AT+COPS y lo consulta
func (m *Modem) readOperator(ctx context.Context, formatCmd string) (operatorInfo, error) {
	if _, err := m.query(ctx, formatCmd); err != nil {
		return operatorInfo{AcT: -1}, err
	}
	resp, err := m.query(ctx, cmdOperatorQuery)
	if err != nil {
		return operatorInfo{AcT: -1}, err
	}
	return parseOperator(resp), nil
}

type serviceStateInput struct {
	state    int
	operator string
	roaming  bool
	manual   bool
	act      int
	band     int
}

// buildServiceState arma el descriptor con un volcado en el mismo formato
// que la plataforma, para que la heurística NR aplique sin cambios
func buildServiceState(in serviceStateInput) *telephony.StaticServiceState {
	ss := &telephony.StaticServiceState{
		StateCode: in.state,
		Operator:  in.operator,
		IsRoaming: in.roaming,
		IsManual:  in.manual,
	}

	networkType := networkTypeFromAcT(in.act)
	if networkType != telephony.NetworkTypeUnknown {
		text := fmt.Sprintf("NetworkRegistrationInfo{ domain=PS accessNetworkTechnology=%d", networkType)
		if nrState := nrStateFromAcT(in.act); nrState != "" {
			text += " nrState=" + nrState
		}
		text += " }"
		ss.Registrations = []telephony.NetworkRegistration{{
			Domain:                  telephony.DomainPS,
			AccessNetworkTechnology: networkType,
			Text:                    text,
		}}
	}

	parts := []string{
		fmt.Sprintf("mVoiceRegState=%d", in.state),
		fmt.Sprintf("mOperatorAlphaLong=%s", in.operator),
		fmt.Sprintf("mIsManualNetworkSelection=%t", in.manual),
	}
	for _, r := range ss.Registrations {
		parts = append(parts, r.String())
	}
	if token := frequencyRangeToken(in.band); token != "" {
		parts = append(parts, "nrFrequencyRange="+token)
	}
	ss.Text = "{" + strings.Join(parts, ", ") + "}"

	return ss
}
