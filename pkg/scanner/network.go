package scanner

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// maxCIDRHosts limita el tamaño de los rangos CIDR aceptados (/20)
const maxCIDRHosts = 4096

// ParseIPRange parsea un rango de IPs en formato "192.168.1.1-254",
// "192.168.1.0/24" o una IP individual. Retorna lista de IPs individuales.
func ParseIPRange(ipRange string) ([]string, error) {
	ipRange = strings.TrimSpace(ipRange)

	if strings.Contains(ipRange, "/") {
		return parseCIDR(ipRange)
	}

	parts := strings.Split(ipRange, "-")
	if len(parts) == 2 {
		// Formato: 192.168.1.1-254
		return parseRangeFormat(parts[0], parts[1])
	}

	if len(parts) == 1 {
		// IP individual
		if net.ParseIP(ipRange) != nil {
			return []string{ipRange}, nil
		}
		return nil, fmt.Errorf("formato de IP inválido: %s", ipRange)
	}

	return nil, fmt.Errorf("formato de rango inválido: %s. Use: 192.168.1.1-254 o 192.168.1.0/24", ipRange)
}

// parseRangeFormat maneja rangos como "192.168.1.1" y "254"
func parseRangeFormat(startIP, endOctet string) ([]string, error) {
	// Parsear IP inicial
	ip := net.ParseIP(strings.TrimSpace(startIP))
	if ip == nil {
		return nil, fmt.Errorf("IP inicial inválida: %s", startIP)
	}

	// Si startIP es una IPv4
	ipv4 := ip.To4()
	if ipv4 == nil {
		return nil, fmt.Errorf("solo se soporta IPv4: %s", startIP)
	}

	// Parsear octeto final
	endNum, err := strconv.Atoi(strings.TrimSpace(endOctet))
	if err != nil {
		return nil, fmt.Errorf("octeto final inválido: %s", endOctet)
	}

	if endNum < 0 || endNum > 255 {
		return nil, fmt.Errorf("octeto fuera de rango (0-255): %d", endNum)
	}

	startNum := int(ipv4[3])
	if endNum < startNum {
		return nil, fmt.Errorf("rango descendente: %d-%d", startNum, endNum)
	}

	// Generar rango de IPs
	ips := make([]string, 0, endNum-startNum+1)
	for i := startNum; i <= endNum; i++ {
		ips = append(ips, net.IPv4(ipv4[0], ipv4[1], ipv4[2], byte(i)).String())
	}

	return ips, nil
}

// parseCIDR expande "10.0.0.0/30" a sus hosts, sin red ni broadcast
// (salvo /31 y /32)
func parseCIDR(cidr string) ([]string, error) {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("CIDR inválido: %s", cidr)
	}

	base := network.IP.To4()
	if base == nil {
		return nil, fmt.Errorf("solo se soporta IPv4: %s", cidr)
	}

	ones, bits := network.Mask.Size()
	total := 1 << uint(bits-ones)
	if total > maxCIDRHosts {
		return nil, fmt.Errorf("rango demasiado grande: %s (%d direcciones, máximo %d)", cidr, total, maxCIDRHosts)
	}

	start := uint32(base[0])<<24 | uint32(base[1])<<16 | uint32(base[2])<<8 | uint32(base[3])

	first, last := 0, total-1
	if total > 2 {
		first, last = 1, total-2
	}

	ips := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		n := start + uint32(i)
		ips = append(ips, net.IPv4(byte(n>>24), byte(n>>16), byte(n>>8), byte(n)).String())
	}

	return ips, nil
}
