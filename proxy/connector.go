package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-mclib/proxy/logger"
)

// DefaultRetryDelay is how long the connector waits after a refused
// connection before dialing again.
const DefaultRetryDelay = 3 * time.Second

// Connector opens connections to the upstream server. A refused connection
// is retried after RetryDelay (the server may still be starting up); any
// other dial error is fatal.
type Connector struct {
	Addr       string
	RetryDelay time.Duration

	log *logger.Logger
}

// NewConnector creates a connector for the upstream address.
func NewConnector(addr string) *Connector {
	return &Connector{
		Addr:       addr,
		RetryDelay: DefaultRetryDelay,
		log:        logger.New("serverconnector"),
	}
}

// Connect dials the upstream, retrying refused connections until ctx ends.
func (c *Connector) Connect(ctx context.Context) (net.Conn, error) {
	addr, err := resolveMinecraftAddress(c.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upstream address: %w", err)
	}

	var dialer net.Dialer
	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			return conn, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, syscall.ECONNREFUSED) {
			return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
		}

		c.log.Warningf("connection to %s refused, retrying in %s", addr, c.RetryDelay)
		select {
		case <-time.After(c.RetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// HostPort returns the resolved upstream host and port.
func (c *Connector) HostPort() (string, uint16, error) {
	addr, err := resolveMinecraftAddress(c.Addr)
	if err != nil {
		return "", 0, err
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return "", 0, err
	}
	return host, uint16(port), nil
}

// resolveMinecraftAddress resolves a Minecraft server address using SRV
// records if available, falling back to the default port 25565 when no port
// is specified.
func resolveMinecraftAddress(address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		// no port specified, treat entire address as hostname
		host = address
		port = ""
	}

	// an explicit port wins over SRV lookup
	if port != "" {
		return net.JoinHostPort(host, port), nil
	}

	// lookup SRV _minecraft._tcp.<host>
	if _, srvRecords, err := net.LookupSRV("minecraft", "tcp", host); err == nil && len(srvRecords) > 0 {
		srv := srvRecords[0]
		target := strings.TrimSuffix(srv.Target, ".")
		return net.JoinHostPort(target, strconv.Itoa(int(srv.Port))), nil
	}

	return net.JoinHostPort(host, "25565"), nil
}
