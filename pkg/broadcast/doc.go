// Package broadcast provides an in-memory, channel-addressed pub/sub bus.
//
// MemoryBroadcaster[[]byte] implements the same Publish signature as the
// Redis publisher, so an emitter can publish into it directly. Local
// listeners subscribe to the exact channel names they care about:
//
//	bus := broadcast.NewMemoryBroadcaster[[]byte](16)
//	defer bus.Close()
//
//	sub := bus.Subscribe(ctx, "socket.io#/#room42#")
//	e := emitter.New(bus)
//	_ = e.To("room42").Emit(ctx, "ping")
//
//	msg := <-sub.Receive(ctx)
//	p, _ := packet.Decode(msg.Data)
//
// Subscribers are cleaned up when:
//   - their context is cancelled
//   - their buffer is full when a message arrives (slow consumers are dropped)
//   - the broadcaster is closed
package broadcast
