package modem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"
)

const (
	defaultResponseTimeout = 5 * time.Second
	recoverableBackoff     = 20 * time.Millisecond
	logPrefix              = "[MODEM]"
)

// Comandos AT usados para armar el snapshot
const (
	cmdEchoOff        = "ATE0\r"
	cmdSIMStatus      = "AT+CPIN?\r"
	cmdIMSI           = "AT+CIMI\r"
	cmdICCID          = "AT+CCID\r"
	cmdIMEI           = "AT+CGSN\r"
	cmdOwnNumber      = "AT+CNUM\r"
	cmdOperatorLong   = "AT+COPS=3,0\r"
	cmdOperatorNumber = "AT+COPS=3,2\r"
	cmdOperatorQuery  = "AT+COPS?\r"
	cmdRegistration   = "AT+CREG?\r"
	cmdFunctionality  = "AT+CFUN?\r"
	cmdActivity       = "AT+CPAS\r"
	cmdAttach         = "AT+CGATT?\r"
	cmdNetworkInfo    = "AT+QNWINFO\r"
)

// CommandError es una respuesta de error del módem (ERROR, +CME ERROR, +CMS ERROR)
type CommandError struct {
	Command  string
	Response string
	Code     int // -1 si el error no trae código
}

// Error implementa la interfaz error
func (ce *CommandError) Error() string {
	return fmt.Sprintf("comando %s falló: %s", strings.TrimSpace(ce.Command), ce.Response)
}

// IsCommandError indica si err es un rechazo del módem (no un fallo de transporte)
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}

// writeCommand escribe el comando en el puerto
func (m *Modem) writeCommand(cmd string) error {
	if _, err := m.port.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("error escribiendo comando: %w", err)
	}
	return nil
}

// readNextLine lee una línea. Timeouts y EOF del puerto son recuperables:
// retorna "" y nil para que el llamador siga esperando.
func (m *Modem) readNextLine() (string, error) {
	line, err := m.reader.ReadString('\n')
	if err == nil {
		return line, nil
	}
	if line != "" {
		// Línea parcial: se completa en la próxima lectura
		return line, nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		time.Sleep(recoverableBackoff)
		return "", nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrNoProgress) {
		time.Sleep(recoverableBackoff)
		return "", nil
	}
	return "", fmt.Errorf("error leyendo respuesta: %w", err)
}

// terminalStatus clasifica una línea final: "OK", "ERROR" o "" si no es final
func terminalStatus(line string) string {
	t := strings.TrimSpace(line)
	switch {
	case t == "OK":
		return "OK"
	case t == "ERROR", strings.HasPrefix(t, "+CME ERROR"), strings.HasPrefix(t, "+CMS ERROR"):
		return "ERROR"
	default:
		return ""
	}
}

// SendCommand envía un comando AT y junta la respuesta hasta OK/ERROR.
// Un ERROR del módem se retorna como *CommandError.
func (m *Modem) SendCommand(ctx context.Context, cmd string) (string, error) {
	if err := m.writeCommand(cmd); err != nil {
		return "", err
	}

	deadline := time.Now().Add(m.config.CommandTimeout)
	var response strings.Builder
	var pending string

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("timeout de respuesta AT (%s) para %s", m.config.CommandTimeout, strings.TrimSpace(cmd))
		}

		chunk, err := m.readNextLine()
		if err != nil {
			return "", err
		}
		if chunk == "" {
			continue
		}

		pending += chunk
		if !strings.HasSuffix(pending, "\n") {
			continue
		}
		line := pending
		pending = ""

		switch terminalStatus(line) {
		case "OK":
			return response.String(), nil
		case "ERROR":
			return "", &CommandError{
				Command:  cmd,
				Response: strings.TrimSpace(line),
				Code:     parseErrorCode(line),
			}
		}

		// Eco del comando (si ATE0 no se aplicó) y líneas vacías se ignoran
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "AT") {
			continue
		}
		response.WriteString(trimmed)
		response.WriteString("\n")
	}
}

// query envía un comando y registra los rechazos del módem sin abortar.
// Retorna ("", nil) cuando el módem responde ERROR.
func (m *Modem) query(ctx context.Context, cmd string) (string, error) {
	resp, err := m.SendCommand(ctx, cmd)
	if err == nil {
		return resp, nil
	}
	if IsCommandError(err) {
		log.Printf("%s %v", logPrefix, err)
		return "", nil
	}
	return "", err
}
