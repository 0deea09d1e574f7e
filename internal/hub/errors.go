package hub

import "errors"

var ErrClosed = errors.New("hub: connection closed")
