package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"golang.org/x/time/rate"

	"github.com/go-mclib/proxy/logger"
)

// Listener accepts client connections and runs one dissected session per
// client. Accepts are paced so a reconnect storm cannot spawn unbounded
// sessions.
type Listener struct {
	Addr      string
	Connector *Connector

	limiter *rate.Limiter
	log     *logger.Logger
}

// NewListener creates a listener bound to addr, proxying to connector's
// upstream.
func NewListener(addr string, connector *Connector) *Listener {
	return &Listener{
		Addr:      addr,
		Connector: connector,
		limiter:   rate.NewLimiter(rate.Limit(32), 32),
		log:       logger.New("clientlistener"),
	}
}

// Run accepts clients until ctx ends. Each session runs in its own scope; a
// session failure is logged, not propagated.
func (l *Listener) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", l.Addr, err)
	}
	defer func() { _ = ln.Close() }()

	// cancellation must unblock Accept
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-done:
		}
	}()

	l.log.Noticef("listening on %s, upstream %s", ln.Addr(), l.Connector.Addr)

	var sessions sync.WaitGroup
	defer sessions.Wait()

	for {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}

		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		l.log.Noticef("client connected from %s", conn.RemoteAddr())

		sessions.Add(1)
		go func(clientConn net.Conn) {
			defer sessions.Done()
			l.handle(ctx, clientConn)
		}(conn)
	}
}

// handle runs one client session end to end and reports its outcome.
func (l *Listener) handle(ctx context.Context, clientConn net.Conn) {
	defer func() { _ = clientConn.Close() }()

	serverConn, err := l.Connector.Connect(ctx)
	if err != nil {
		if ctx.Err() == nil {
			l.log.Errorf("upstream connect failed: %v", err)
		}
		return
	}

	err = RunSession(ctx, clientConn, serverConn)
	switch {
	case err == nil:
		l.log.Noticef("session with %s ended", clientConn.RemoteAddr())
	case errors.Is(err, ErrEncryptionUnsupported):
		l.log.Noticef("session with %s ended: %v", clientConn.RemoteAddr(), err)
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		l.log.Debugf("session with %s cancelled", clientConn.RemoteAddr())
	default:
		l.log.Errorf("session with %s failed: %v", clientConn.RemoteAddr(), err)
	}
}
