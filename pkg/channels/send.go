package channels

import "errors"

// SendNonBlock attempts to send a message without blocking.
// Returns error if the channel is full or closed.
func SendNonBlock[T any](ch chan<- T, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrChannelClosed
		}
	}()

	select {
	case ch <- msg:
		return nil
	default:
		return ErrChannelFull
	}
}

// SendLatest sends msg without blocking, evicting the oldest buffered message
// when the channel is full. Returns true if a message was evicted.
// The caller must be the only sender on ch.
func SendLatest[T any](ch chan T, msg T) (evicted bool, err error) {
	err = SendNonBlock(ch, msg)
	if err == nil || cap(ch) == 0 {
		return false, err
	}
	if !errors.Is(err, ErrChannelFull) {
		return false, err
	}

	select {
	case <-ch:
		evicted = true
	default:
	}

	return evicted, SendNonBlock(ch, msg)
}
