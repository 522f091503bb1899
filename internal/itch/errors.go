package itch

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownType = errors.New("itch: unknown message type")
	ErrTruncated   = errors.New("itch: truncated message")
	ErrTagMismatch = errors.New("itch: message type mismatch")
)

// UnknownTypeError reports a tag that is not in the frame length table.
// Framing cannot continue past it.
type UnknownTypeError struct {
	Tag MessageType
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("itch: unknown message type %s", e.Tag)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// TruncatedError reports fewer bytes than the frame length of Tag.
type TruncatedError struct {
	Tag  MessageType
	Want int
	Have int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("itch: truncated %s message: have %d of %d bytes", e.Tag, e.Have, e.Want)
}

func (e *TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// TagMismatchError reports a frame whose leading byte is not the tag the
// decoder was asked for.
type TagMismatchError struct {
	Want MessageType
	Got  MessageType
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("itch: message type mismatch: got %s want %s", e.Got, e.Want)
}

func (e *TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}
