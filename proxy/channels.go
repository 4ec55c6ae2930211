// Package proxy implements the intercepting relay: per-connection state
// machines for both peers, the packet mirror between them, and the monitor
// tap, all inside one supervised session scope per accepted client.
package proxy

import (
	"context"
	"errors"
	"fmt"

	jp "github.com/go-mclib/proxy/java_protocol"
)

// ErrUnexpectedPacket tags a packet whose type does not match what the
// current phase step prescribes. Fatal to the session.
var ErrUnexpectedPacket = errors.New("unexpected packet")

// ErrEncryptionUnsupported is returned when the upstream server requests
// online-mode encryption, which a pass-through dissector cannot follow.
var ErrEncryptionUnsupported = errors.New("server requested online-mode encryption")

// TappedPacket is one relayed packet copied into the monitor, tagged with
// its direction (serverbound = client to server).
type TappedPacket struct {
	Serverbound bool
	Packet      jp.Packet
}

// recv receives from ch, honoring cancellation. ok is false once ch is
// closed and drained.
func recv[T any](ctx context.Context, ch <-chan T) (v T, ok bool, err error) {
	select {
	case v, ok = <-ch:
		return v, ok, nil
	case <-ctx.Done():
		return v, false, ctx.Err()
	}
}

// send sends v to ch, honoring cancellation.
func send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// expect narrows a packet to the type the state machine requires next.
func expect[T jp.Packet](p jp.Packet) (T, error) {
	t, ok := p.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: expected %T, got %s", ErrUnexpectedPacket, zero, p)
	}
	return t, nil
}
