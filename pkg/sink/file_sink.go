package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileSink escribe cada reporte serializado a un archivo en disco
type FileSink struct {
	dir       string
	extension string
	now       func() time.Time
}

// NewFileSink crea un nuevo file sink
// dir: directorio donde guardar los archivos (ej: ./reports)
// extension: ".json" o ".txt" según el serializador
func NewFileSink(dir, extension string) (*FileSink, error) {
	// Crear directorio si no existe
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &SinkError{Sink: "file", Operation: "mkdir", Err: err}
	}
	if extension == "" {
		extension = ".json"
	}

	return &FileSink{
		dir:       dir,
		extension: extension,
		now:       time.Now,
	}, nil
}

// Write guarda el reporte en un archivo con naming: {epoch}_{device_id}{ext}
func (fs *FileSink) Write(ctx context.Context, data []byte, deviceID string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty data for device %s", deviceID)
	}
	if err := ctx.Err(); err != nil {
		return &SinkError{Sink: "file", Operation: "write", Err: err, DeviceID: deviceID}
	}

	filename := fmt.Sprintf("%d_%s%s", fs.now().Unix(), deviceID, fs.extension)
	path := filepath.Join(fs.dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &SinkError{
			Sink:      "file",
			Operation: "write",
			Err:       err,
			DeviceID:  deviceID,
		}
	}

	return nil
}

// Close cierra el FileSink (no tiene recursos abiertos)
func (fs *FileSink) Close() error {
	return nil
}
