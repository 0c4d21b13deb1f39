package emitter

import (
	"errors"

	"github.com/dmitrymomot/sioemitter/pkg/packet"
)

var (
	// ErrUnencodableValue is returned when an argument has no structured representation.
	// Nothing is published in that case.
	ErrUnencodableValue = packet.ErrUnencodableValue

	// ErrEmptyEvent is returned when Emit is called without an event name.
	ErrEmptyEvent = packet.ErrEmptyEvent

	// ErrTransport wraps publisher failures. The publisher's error stays
	// reachable through errors.Is and errors.As.
	ErrTransport = errors.New("emitter: publish failed")

	// ErrNoPublisher is returned by an Emitter constructed without a Publisher.
	ErrNoPublisher = errors.New("emitter: no publisher configured")
)
