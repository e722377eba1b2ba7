package telephony

import (
	"errors"
)

// ErrPermissionDenied indica que un acceso privilegiado fue rechazado en el
// momento de la consulta, aunque el permiso general figure como concedido.
var ErrPermissionDenied = errors.New("permission denied")

// Snapshot contiene el estado crudo de SIM y red capturado por el shell.
// Se construye una vez por reporte y nunca se modifica.
type Snapshot struct {
	// Campos sin permiso
	SIMState            int
	PhoneType           int
	SIMOperator         string // MCC+MNC
	SIMOperatorName     string
	SIMCountryISO       string
	NetworkOperator     string // MCC+MNC
	NetworkOperatorName string
	NetworkCountryISO   string
	Roaming             bool
	VoiceCapable        bool
	SMSCapable          bool

	// Tecnología de acceso: fuente legacy y fuente de datos (más específica)
	NetworkType     int
	DataNetworkType int

	// Campos con permiso (nil = no disponible / rechazado en la consulta)
	CallState    int
	DataState    int
	PhoneNumber  *string
	SubscriberID *string // IMSI
	SIMSerial    *string // ICCID
	DeviceID     *string // IMEI / MEID

	// Objeto de diagnóstico opaco. ServiceStateErr != nil cuando la consulta
	// misma falló en tiempo de ejecución.
	ServiceState    ServiceStateDescriptor
	ServiceStateErr error

	PermissionGranted bool
	Tier              Tier
}

// Optional retorna un puntero al valor, o nil si está vacío
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
