package broadcast

import "errors"

// ErrBroadcasterClosed is returned by Broadcast and Publish after Close.
var ErrBroadcasterClosed = errors.New("broadcast: broadcaster is closed")
