package port

import (
	"fmt"
	"net"
)

// Scanner checks whether specific ports are available on the host machine.
//
// It asks the operating system directly by binding a listener, rather than
// parsing /proc/net/* or shelling out to lsof/ss which may need elevated
// permissions.
type Scanner struct {
	// host is the address the probe binds to. Launched apps are local
	// services, so the loopback interface is what matters.
	host string
}

// NewScanner creates a Scanner that probes 127.0.0.1.
func NewScanner() *Scanner {
	return &Scanner{host: "127.0.0.1"}
}

// IsPortAvailable checks whether a single port is free on the host.
//
// For TCP, it attempts net.Listen. For UDP, net.ListenPacket. If the bind
// succeeds the port is free and the socket is closed immediately.
// Unknown protocols report false.
func (s *Scanner) IsPortAvailable(port int, protocol string) bool {
	addr := net.JoinHostPort(s.host, fmt.Sprint(port))

	switch protocol {
	case "tcp":
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return false
		}
		defer func() { _ = listener.Close() }()
		return true

	case "udp":
		conn, err := net.ListenPacket("udp", addr)
		if err != nil {
			return false
		}
		defer func() { _ = conn.Close() }()
		return true

	default:
		return false
	}
}

// GetUsedPorts returns the TCP ports in [startPort, endPort) that are
// currently bound on the host.
func (s *Scanner) GetUsedPorts(startPort, endPort int) []int {
	var used []int
	for port := startPort; port < endPort; port++ {
		if !s.IsPortAvailable(port, "tcp") {
			used = append(used, port)
		}
	}
	return used
}
