// Package modem obtiene el estado de SIM y red de un módulo celular (4G/5G)
// mediante comandos AT sobre un puerto serie.
package modem

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/asaavedra/agent-siminfo/pkg/telephony"
)

// Config contiene la configuración del módem
type Config struct {
	PortName       string
	BaudRate       int
	ReadTimeout    time.Duration  // timeout de lectura del puerto serie
	CommandTimeout time.Duration  // timeout total por comando AT
	Tier           telephony.Tier // tier informado en el snapshot
	Quectel        bool           // habilita AT+QNWINFO para banda NR
}

// Modem es una sesión AT abierta sobre un puerto
type Modem struct {
	port   io.ReadWriteCloser
	reader *bufio.Reader
	config Config
}

// Open abre el puerto serie y crea el Modem
func Open(config Config) (*Modem, error) {
	if config.BaudRate == 0 {
		config.BaudRate = 115200
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 200 * time.Millisecond
	}

	c := &serial.Config{
		Name:        config.PortName,
		Baud:        config.BaudRate,
		ReadTimeout: config.ReadTimeout,
	}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("error abriendo puerto %s: %w", config.PortName, err)
	}

	return New(p, config), nil
}

// New crea un Modem sobre un puerto ya abierto
func New(port io.ReadWriteCloser, config Config) *Modem {
	if config.CommandTimeout == 0 {
		config.CommandTimeout = defaultResponseTimeout
	}
	return &Modem{
		port:   port,
		reader: bufio.NewReader(port),
		config: config,
	}
}

// Close cierra el puerto (si está abierto)
func (m *Modem) Close() error {
	if m.port == nil {
		return nil
	}
	return m.port.Close()
}
