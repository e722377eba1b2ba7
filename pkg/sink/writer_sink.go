package sink

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterSink escribe los reportes en un io.Writer (normalmente stdout),
// separados por una línea en blanco
type WriterSink struct {
	mu   sync.Mutex
	w    io.Writer
	name string
}

// NewWriterSink crea un sink sobre w
func NewWriterSink(name string, w io.Writer) *WriterSink {
	return &WriterSink{w: w, name: name}
}

// Write escribe el reporte completo; escrituras concurrentes no se mezclan
func (ws *WriterSink) Write(ctx context.Context, data []byte, deviceID string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty data for device %s", deviceID)
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if _, err := ws.w.Write(data); err != nil {
		return &SinkError{Sink: ws.name, Operation: "write", Err: err, DeviceID: deviceID}
	}
	sep := "\n\n"
	if data[len(data)-1] == '\n' {
		sep = "\n"
	}
	if _, err := io.WriteString(ws.w, sep); err != nil {
		return &SinkError{Sink: ws.name, Operation: "write", Err: err, DeviceID: deviceID}
	}
	return nil
}

// Close no cierra el writer subyacente
func (ws *WriterSink) Close() error {
	return nil
}
