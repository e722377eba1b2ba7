package snmp

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Modos de decodificación declarados en los perfiles
const (
	DecodeNone = ""
	DecodeHex  = "hex" // texto hex ASCII: "4e5454" -> "NTT"
	DecodeBCD  = "bcd" // BCD con nibbles invertidos (ICCID, IMSI en EF de la SIM)
)

// DecodeField aplica el modo de decodificación del perfil al valor
func DecodeField(v Value, mode string) string {
	if v.Missing {
		return ""
	}

	switch mode {
	case DecodeHex:
		if decoded, ok := DecodeHexASCII(v.Text); ok {
			return decoded
		}
		return v.Text
	case DecodeBCD:
		return DecodeSwappedBCD(v)
	default:
		return strings.TrimSpace(v.Text)
	}
}

// IsHexASCII verifica si el texto parece una cadena hexadecimal ASCII
// Ejemplo: "4150535643" (hex de APSVSC)
func IsHexASCII(s string) bool {
	if len(s)%2 != 0 {
		return false
	}

	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}

	return len(s) > 0
}

// DecodeHexASCII intenta decodificar una cadena hex ASCII a string legible
// Ejemplo: "4150535643" -> "APSVSC"
func DecodeHexASCII(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if !IsHexASCII(s) {
		return "", false
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		return "", false
	}

	// Verificar si el resultado es texto válido (no caracteres de control)
	if isLikelyText(decoded) {
		return strings.TrimRight(string(decoded), "\x00"), true
	}

	return "", false
}

// DecodeSwappedBCD decodifica BCD con nibbles invertidos:
// 0x98 0x10 -> "8901". Los nibbles 0xF de relleno se descartan.
// Acepta los octetos crudos o su representación hex en texto.
func DecodeSwappedBCD(v Value) string {
	raw := v.Raw
	if v.Text != "" {
		text := strings.ReplaceAll(strings.TrimSpace(v.Text), " ", "")
		if !IsHexASCII(text) {
			// Ya viene decodificado por el router
			return text
		}
		if b, err := hex.DecodeString(text); err == nil {
			raw = b
		}
	}
	if len(raw) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, b := range raw {
		for _, nibble := range []byte{b & 0x0F, b >> 4} {
			if nibble > 9 {
				// 0xF es relleno; otros valores no son dígitos
				continue
			}
			sb.WriteByte('0' + nibble)
		}
	}
	return sb.String()
}

// isLikelyText verifica si bytes parecen ser texto (no caracteres de control raros)
func isLikelyText(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}

	// Contar cuántos bytes son caracteres imprimibles o espacios en blanco
	printableCount := 0
	for _, c := range b {
		// ASCII printable: 32-126, más tab/newline/carriage return; multibyte UTF-8 cuenta
		if (c >= 32 && c <= 126) || c == 9 || c == 10 || c == 13 || c >= 0x80 {
			printableCount++
		}
	}

	// Si al menos el 80% de los bytes son imprimibles, parece texto
	return float64(printableCount)/float64(len(b)) >= 0.8
}
