package stream

import "fmt"

// FrameError places a decode failure at the stream offset of the frame's tag
// byte. Err is an itch error (unknown type, truncated, ...).
type FrameError struct {
	Offset int64
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("stream: offset %d: %v", e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
