// Package ports provides port availability checking.
package ports

import (
	"fmt"
	"net"
)

// Check returns an error if nothing can bind port on all interfaces.
func Check(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("port %d is in use: %w", port, err)
	}
	_ = ln.Close()
	return nil
}

// IsAvailable reports whether port can be bound.
func IsAvailable(port int) bool {
	return Check(port) == nil
}
