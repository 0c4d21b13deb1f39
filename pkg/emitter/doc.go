// Package emitter publishes socket.io events from processes that are not
// socket.io servers.
//
// An Emitter selects a namespace and optionally a single room or socket id,
// encodes the event with package packet and publishes the frame once on a
// channel that socket.io Redis adapters subscribe to:
//
//	<prefix>#<namespace>#            every socket of the namespace
//	<prefix>#<namespace>#<target>#   one room or socket id
//
// # Usage
//
//	e, pub, err := emitter.Connect(ctx, cfg, emitter.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer pub.Close()
//
//	// socket.io#/chat#room42#
//	err = e.Of("/chat").To("room42").Emit(ctx, "message", "hello", 42)
//
// Narrowing methods return copies, so a root Emitter can be stored once and
// shared between goroutines:
//
//	admins := e.Of("/admin")
//	go admins.To("ops").Emit(ctx, "alert", payload)
//	go admins.Volatile().Emit(ctx, "tick")
//
// Any value implementing Publisher can carry the frames. redis.Publisher is
// the production transport and broadcast.MemoryBroadcaster[[]byte] serves
// tests and single-process setups.
//
// # Errors
//
//   - ErrUnencodableValue: an argument cannot be encoded. Nothing is published.
//   - ErrEmptyEvent: the event name is empty.
//   - ErrTransport: the publisher failed. The cause is joined and never retried.
//   - ErrNoPublisher: the Emitter is a zero value.
package emitter
