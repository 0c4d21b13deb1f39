package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". All-nil input yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil err yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Channel records the pub/sub channel name.
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// Namespace records the socket.io namespace.
func Namespace(nsp string) slog.Attr {
	return slog.String("namespace", nsp)
}

// Room records the target room or socket id. An empty id yields an empty Attr.
func Room(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("room", id)
}

// Event records the emitted event name.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// PacketID records the packet identifier. An empty id yields an empty Attr.
func PacketID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("packet_id", id)
}

// RequestID records the request identifier under "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}
