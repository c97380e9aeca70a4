// Package netx builds network listeners for the server.
package netx

import (
	"context"
	"fmt"
	"net"
	"time"
)

// DefaultKeepAlive is applied to accepted TCP connections.
const DefaultKeepAlive = 30 * time.Second

// Listen binds a TCP listener on addr ("host:port"). A bind failure is
// returned wrapped with the address so startup logs say what failed.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{KeepAlive: DefaultKeepAlive}
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return l, nil
}
