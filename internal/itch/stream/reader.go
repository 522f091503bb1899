package stream

import (
	"errors"
	"io"

	"github.com/danmuck/tempo/internal/itch"
)

// Reader frames messages from an io.Reader. It reads the tag byte first and
// then exactly the remainder of that frame, so it never reads ahead of the
// current message.
type Reader struct {
	r   io.Reader
	buf [itch.MaxFrameLen]byte
	off int64
	err error
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFrame returns the next raw frame. The slice is reused by the next call.
// It returns io.EOF only when the stream ends exactly on a frame boundary.
func (r *Reader) ReadFrame() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		return nil, r.stop(err)
	}
	tag := itch.MessageType(r.buf[0])
	n, err := itch.FrameLength(tag)
	if err != nil {
		return nil, r.stop(&FrameError{Offset: r.off, Err: err})
	}
	if k, err := io.ReadFull(r.r, r.buf[1:n]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			err = &FrameError{Offset: r.off, Err: &itch.TruncatedError{Tag: tag, Want: n, Have: 1 + k}}
		}
		return nil, r.stop(err)
	}
	r.off += int64(n)
	return r.buf[:n], nil
}

// ReadMessage reads and decodes the next frame.
func (r *Reader) ReadMessage() (itch.Message, error) {
	frame, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}
	msg, err := itch.Decode(itch.MessageType(frame[0]), frame)
	if err != nil {
		return nil, r.stop(&FrameError{Offset: r.off - int64(len(frame)), Err: err})
	}
	return msg, nil
}

// Drain dispatches every remaining frame to h. A clean end of stream returns
// a nil error.
func (r *Reader) Drain(h Handler) error {
	for {
		frame, err := r.ReadFrame()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := dispatch(h, frame); err != nil {
			return r.stop(&FrameError{Offset: r.off - int64(len(frame)), Err: err})
		}
	}
}

// Offset is the number of bytes of complete frames consumed so far.
func (r *Reader) Offset() int64 {
	return r.off
}

// stop makes err sticky; after a framing failure the position in the stream
// is no longer trustworthy.
func (r *Reader) stop(err error) error {
	r.err = err
	return err
}
