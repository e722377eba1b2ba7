package report

import (
	"fmt"

	"github.com/asaavedra/agent-siminfo/pkg/decoder"
	"github.com/asaavedra/agent-siminfo/pkg/nrstate"
	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Builder transforma Snapshot → Report
// Responsabilidad ÚNICA: decodificar y aplicar la política de disponibilidad.
// No hace I/O: el shell ya resolvió cada lectura privilegiada antes.
type Builder struct {
	thresholds Thresholds
}

// NewBuilder crea un builder con la tabla de umbrales dada
func NewBuilder(thresholds Thresholds) *Builder {
	return &Builder{thresholds: thresholds.withDefaults()}
}

// Build construye un reporte con los umbrales por defecto
func Build(snap telephony.Snapshot) Report {
	return NewBuilder(DefaultThresholds()).Build(snap)
}

// Build convierte un Snapshot en un Report completo.
// Nunca falla; cada condición de no disponibilidad se vuelve un placeholder.
// Es seguro llamarlo concurrentemente.
func (b *Builder) Build(snap telephony.Snapshot) Report {
	rep := Report{
		Permission: snap.PermissionGranted,
		Tier:       snap.Tier,
		Sections:   make([]Section, 0, 5),
	}

	rep.Sections = append(rep.Sections, b.buildPermission(snap))
	rep.Sections = append(rep.Sections, b.buildUnrestricted(snap))

	restricted, nrDetail := b.buildRestricted(snap)
	rep.Sections = append(rep.Sections, restricted)
	if nrDetail != nil {
		rep.Sections = append(rep.Sections, *nrDetail)
	}

	if snap.PermissionGranted {
		rep.Sections = append(rep.Sections, b.buildServiceState(snap))
	}

	return rep
}

// buildPermission: siempre presente, no depende de la versión
func (b *Builder) buildPermission(snap telephony.Snapshot) Section {
	status := "denied"
	if snap.PermissionGranted {
		status = "granted"
	}
	return Section{
		ID:    SectionPermission,
		Title: "Permission",
		Entries: []Entry{
			{Label: "READ_PHONE_STATE", Value: status},
		},
	}
}

// buildUnrestricted: campos legibles sin permiso. Los strings vacíos pasan tal cual.
func (b *Builder) buildUnrestricted(snap telephony.Snapshot) Section {
	return Section{
		ID:    SectionUnrestricted,
		Title: "Available without permission",
		Entries: []Entry{
			textEntry("SIM operator (MCC+MNC)", snap.SIMOperator),
			textEntry("SIM operator name", snap.SIMOperatorName),
			textEntry("SIM country", snap.SIMCountryISO),
			decodedEntry("SIM state", decoder.SIMState(snap.SIMState)),
			textEntry("Network operator (MCC+MNC)", snap.NetworkOperator),
			textEntry("Network operator name", snap.NetworkOperatorName),
			textEntry("Network country", snap.NetworkCountryISO),
			textEntry("Roaming", yesNo(snap.Roaming)),
			decodedEntry("Phone type", decoder.PhoneType(snap.PhoneType)),
			textEntry("Voice capable", yesNo(snap.VoiceCapable)),
			textEntry("SMS capable", yesNo(snap.SMSCapable)),
		},
	}
}

// buildRestricted: campos que requieren READ_PHONE_STATE.
// Retorna además la sección NR cuando corresponde.
func (b *Builder) buildRestricted(snap telephony.Snapshot) (Section, *Section) {
	sec := Section{
		ID:    SectionRestricted,
		Title: "Requires READ_PHONE_STATE",
	}

	if !snap.PermissionGranted {
		sec.Entries = []Entry{placeholderEntry("Status", PlaceholderPermissionDenied)}
		return sec, nil
	}

	networkType := decoder.NetworkType(b.selectNetworkType(snap))
	networkEntry := decodedEntry("Network type", networkType)

	var nrSection *Section
	if decoder.IsNR(networkType.Code) && snap.Tier >= b.thresholds.NRDetail {
		// Si la consulta de diagnóstico falló no hay sub-estado que leer
		ss := snap.ServiceState
		if snap.ServiceStateErr != nil {
			ss = nil
		}
		result := nrstate.Extract(ss)
		networkEntry.Value += result.Suffix()
		s := buildNRDetail(result)
		nrSection = &s
	}

	sec.Entries = []Entry{
		optionalEntry("Phone number", snap.PhoneNumber),
		optionalEntry("Subscriber ID (IMSI)", snap.SubscriberID),
		optionalEntry("SIM serial (ICCID)", snap.SIMSerial),
		optionalEntry("Device ID (IMEI/MEID)", snap.DeviceID),
		decodedEntry("Call state", decoder.CallState(snap.CallState)),
		decodedEntry("Data state", decoder.DataState(snap.DataState)),
		networkEntry,
	}

	return sec, nrSection
}

// selectNetworkType elige exactamente una fuente según el tier
func (b *Builder) selectNetworkType(snap telephony.Snapshot) int {
	if snap.Tier >= b.thresholds.DataNetworkType {
		return snap.DataNetworkType
	}
	return snap.NetworkType
}

func buildNRDetail(result nrstate.Result) Section {
	mode := result.Mode.String()
	if mode == "" {
		mode = PlaceholderNotDetermined
	}
	freq := result.Frequency.String()
	if freq == "" {
		freq = PlaceholderNotDetermined
	}
	return Section{
		ID:    SectionNRDetail,
		Title: "5G NR detail",
		Entries: []Entry{
			{Label: "Deployment mode", Value: mode, Placeholder: result.Mode == nrstate.ModeUndetermined},
			{Label: "Frequency range", Value: freq, Placeholder: result.Frequency == nrstate.FrequencyUndetermined},
		},
	}
}

// buildServiceState: estado de servicio detallado, gateado por versión
// independientemente de la sección NR. Un descriptor que entra en pánico
// (p.ej. puntero nil dentro de la interfaz) cuenta como consulta fallida.
func (b *Builder) buildServiceState(snap telephony.Snapshot) (sec Section) {
	sec = Section{
		ID:    SectionServiceState,
		Title: "Detailed network state",
	}
	defer func() {
		if r := recover(); r != nil {
			sec.Entries = []Entry{placeholderEntry("Service state", PlaceholderServiceStateFailed)}
		}
	}()

	if snap.Tier < b.thresholds.ServiceState {
		msg := fmt.Sprintf("not supported below API %d", b.thresholds.ServiceState)
		sec.Entries = []Entry{placeholderEntry("Service state", msg)}
		return sec
	}

	// La consulta tiene su propio permiso: puede fallar aunque el flag sea true
	if snap.ServiceStateErr != nil {
		sec.Entries = []Entry{placeholderEntry("Service state", PlaceholderServiceStateFailed)}
		return sec
	}

	ss := snap.ServiceState
	if ss == nil {
		sec.Entries = []Entry{textEntry("Service state", "unknown (absent)")}
		return sec
	}

	selection := "automatic"
	if ss.ManualSelection() {
		selection = "manual"
	}

	sec.Entries = []Entry{
		decodedEntry("Service state", decoder.ServiceState(ss.State())),
		textEntry("Connected operator", ss.OperatorAlphaLong()),
		textEntry("Roaming (detail)", yesNo(ss.Roaming())),
		textEntry("Network selection", selection),
	}
	return sec
}

func textEntry(label, value string) Entry {
	return Entry{Label: label, Value: value}
}

func decodedEntry(label string, field decoder.DecodedField) Entry {
	return Entry{Label: label, Value: field.Label, Field: &field}
}

func placeholderEntry(label, value string) Entry {
	return Entry{Label: label, Value: value, Placeholder: true}
}

// optionalEntry: la fila siempre existe; nil se reporta con placeholder
func optionalEntry(label string, value *string) Entry {
	if value == nil {
		return placeholderEntry(label, PlaceholderUnavailable)
	}
	return textEntry(label, *value)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
