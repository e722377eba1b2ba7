package sink

import (
	"context"
	"fmt"
)

// Sink es la interfaz abstracta para "dónde va el reporte serializado"
// Implementaciones: disco local (un archivo por reporte) y un io.Writer
// (stdout)
type Sink interface {
	// Write envía los bytes a su destino
	// Retorna error si no puede escribir
	Write(ctx context.Context, data []byte, deviceID string) error

	// Close cierra recursos (archivos, etc)
	Close() error
}

// SinkError es un error personalizado que incluye contexto
type SinkError struct {
	Sink      string // nombre del sink (file, stdout)
	Operation string // operación que falló (write, mkdir)
	Err       error  // error subyacente
	DeviceID  string // ID del dispositivo cuyo reporte falló
}

// Error implementa la interfaz error
func (se *SinkError) Error() string {
	return fmt.Sprintf("[%s] %s failed for device %s: %v", se.Sink, se.Operation, se.DeviceID, se.Err)
}

// Unwrap permite errors.Is / errors.As sobre el error subyacente
func (se *SinkError) Unwrap() error {
	return se.Err
}
