package collector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// snapshotFile es el formato YAML de un snapshot capturado en un teléfono
// o escrito a mano. Los campos opcionales ausentes quedan en nil.
type snapshotFile struct {
	PermissionGranted bool           `yaml:"permission_granted"`
	Tier              telephony.Tier `yaml:"tier"`

	SIMState            int    `yaml:"sim_state"`
	PhoneType           int    `yaml:"phone_type"`
	SIMOperator         string `yaml:"sim_operator"`
	SIMOperatorName     string `yaml:"sim_operator_name"`
	SIMCountryISO       string `yaml:"sim_country_iso"`
	NetworkOperator     string `yaml:"network_operator"`
	NetworkOperatorName string `yaml:"network_operator_name"`
	NetworkCountryISO   string `yaml:"network_country_iso"`
	Roaming             bool   `yaml:"roaming"`
	VoiceCapable        bool   `yaml:"voice_capable"`
	SMSCapable          bool   `yaml:"sms_capable"`

	NetworkType     int `yaml:"network_type"`
	DataNetworkType int `yaml:"data_network_type"`
	CallState       int `yaml:"call_state"`
	DataState       int `yaml:"data_state"`

	PhoneNumber  *string `yaml:"phone_number"`
	SubscriberID *string `yaml:"subscriber_id"`
	SIMSerial    *string `yaml:"sim_serial"`
	DeviceID     *string `yaml:"device_id"`

	ServiceState      *telephony.StaticServiceState `yaml:"service_state"`
	ServiceStateError string                        `yaml:"service_state_error"`

	// Fallos tardíos de acceso al descriptor
	RegistrationsError string `yaml:"registrations_error"`
	DumpError          string `yaml:"dump_error"`
}

// FileSource lee un snapshot desde un archivo YAML
type FileSource struct {
	path string
}

// NewFileSource crea una fuente de archivo
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name retorna la ruta del archivo
func (fs *FileSource) Name() string { return fs.path }

// Kind identifica el tipo de fuente
func (fs *FileSource) Kind() string { return "file" }

// Snapshot lee y convierte el archivo. Se relee en cada llamada para que
// watch refleje los cambios.
func (fs *FileSource) Snapshot(ctx context.Context) (telephony.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return telephony.Snapshot{}, err
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return telephony.Snapshot{}, fmt.Errorf("error leyendo snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot convierte YAML en Snapshot
func ParseSnapshot(data []byte) (telephony.Snapshot, error) {
	var f snapshotFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return telephony.Snapshot{}, fmt.Errorf("error parseando snapshot: %w", err)
	}

	snap := telephony.Snapshot{
		SIMState:            f.SIMState,
		PhoneType:           f.PhoneType,
		SIMOperator:         f.SIMOperator,
		SIMOperatorName:     f.SIMOperatorName,
		SIMCountryISO:       f.SIMCountryISO,
		NetworkOperator:     f.NetworkOperator,
		NetworkOperatorName: f.NetworkOperatorName,
		NetworkCountryISO:   f.NetworkCountryISO,
		Roaming:             f.Roaming,
		VoiceCapable:        f.VoiceCapable,
		SMSCapable:          f.SMSCapable,
		NetworkType:         f.NetworkType,
		DataNetworkType:     f.DataNetworkType,
		CallState:           f.CallState,
		DataState:           f.DataState,
		PhoneNumber:         f.PhoneNumber,
		SubscriberID:        f.SubscriberID,
		SIMSerial:           f.SIMSerial,
		DeviceID:            f.DeviceID,
		PermissionGranted:   f.PermissionGranted,
		Tier:                f.Tier,
	}

	if f.ServiceStateError != "" {
		snap.ServiceStateErr = accessError(f.ServiceStateError)
	}
	if f.ServiceState != nil {
		ss := f.ServiceState
		if f.RegistrationsError != "" {
			ss.RegistrationsErr = accessError(f.RegistrationsError)
		}
		if f.DumpError != "" {
			ss.DumpErr = accessError(f.DumpError)
		}
		snap.ServiceState = ss
	}

	return snap, nil
}

// accessError convierte el texto del fixture en error; "permission denied"
// se mapea al sentinel para que errors.Is funcione
func accessError(msg string) error {
	if strings.Contains(strings.ToLower(msg), telephony.ErrPermissionDenied.Error()) {
		return fmt.Errorf("%s: %w", msg, telephony.ErrPermissionDenied)
	}
	return errors.New(msg)
}
