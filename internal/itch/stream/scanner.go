package stream

import "github.com/danmuck/tempo/internal/itch"

// Scanner walks frames in an in-memory feed.
type Scanner struct {
	data  []byte
	off   int
	frame []byte
	msg   itch.Message
	err   error
}

func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next advances to the next frame and decodes it. It returns false at the end
// of the data or on the first error; check Err to tell them apart.
func (s *Scanner) Next() bool {
	if !s.advance() {
		return false
	}
	msg, err := itch.Decode(itch.MessageType(s.frame[0]), s.frame)
	if err != nil {
		s.off -= len(s.frame)
		s.fail(err)
		return false
	}
	s.msg = msg
	return true
}

// advance frames the next message without decoding it.
func (s *Scanner) advance() bool {
	s.frame = nil
	s.msg = nil
	if s.err != nil || s.off >= len(s.data) {
		return false
	}
	rest := s.data[s.off:]
	tag := itch.MessageType(rest[0])
	n, err := itch.FrameLength(tag)
	if err != nil {
		s.fail(err)
		return false
	}
	if len(rest) < n {
		s.fail(&itch.TruncatedError{Tag: tag, Want: n, Have: len(rest)})
		return false
	}
	s.frame = rest[:n]
	s.off += n
	return true
}

func (s *Scanner) fail(err error) {
	s.frame = nil
	s.msg = nil
	s.err = &FrameError{Offset: int64(s.off), Err: err}
}

// Message is the record decoded by the last successful Next.
func (s *Scanner) Message() itch.Message {
	return s.msg
}

// Frame is the raw bytes of the current frame. It aliases the scanned data.
func (s *Scanner) Frame() []byte {
	return s.frame
}

// Offset is the number of bytes consumed so far. After a clean end it equals
// the length of the data; after an error it is the offset of the bad frame.
func (s *Scanner) Offset() int {
	return s.off
}

func (s *Scanner) Err() error {
	return s.err
}

// Parse frames all of data into h and returns the bytes consumed. On error,
// consumed is the offset of the frame that could not be framed or decoded.
func Parse(data []byte, h Handler) (int, error) {
	s := NewScanner(data)
	for s.advance() {
		if err := dispatch(h, s.frame); err != nil {
			s.off -= len(s.frame)
			s.fail(err)
			break
		}
	}
	return s.off, s.err
}
