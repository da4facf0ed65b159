package network

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Connector waits for network access to the arrivals API host
type Connector struct {
	address       string // host:port dialed to test reachability
	retryInterval time.Duration
	dialTimeout   time.Duration
	logger        *zap.SugaredLogger
}

// NewConnector creates a connector for the host in apiURL.
// The port defaults to 443 for https and 80 otherwise.
func NewConnector(apiURL string, retryInterval time.Duration, logger *zap.SugaredLogger) (*Connector, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("invalid API URL %q: missing host", apiURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}

	if retryInterval <= 0 {
		retryInterval = time.Second
	}

	return &Connector{
		address:       net.JoinHostPort(u.Hostname(), port),
		retryInterval: retryInterval,
		dialTimeout:   5 * time.Second,
		logger:        logger,
	}, nil
}

// Connect blocks until the API host accepts a TCP connection and returns the
// local address used to reach it. It only fails when ctx is done.
func (c *Connector) Connect(ctx context.Context) (net.IP, error) {
	dialer := &net.Dialer{Timeout: c.dialTimeout}

	c.logger.Infof("Connecting to %s...", c.address)
	attempts := 0
	for {
		attempts++
		conn, err := dialer.DialContext(ctx, "tcp", c.address)
		if err == nil {
			local := conn.LocalAddr()
			conn.Close()

			ip := localIP(local)
			c.logger.Infof("Network connected! IP: %s (after %d attempts)", ip, attempts)
			return ip, nil
		}

		c.logger.Debugw("Network not ready", "address", c.address, "attempt", attempts, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up connecting to %s: %w", c.address, ctx.Err())
		case <-time.After(c.retryInterval):
		}
	}
}

func localIP(addr net.Addr) net.IP {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return nil
	}
	return net.ParseIP(host)
}
