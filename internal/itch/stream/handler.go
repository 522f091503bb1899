package stream

import "github.com/danmuck/tempo/internal/itch"

// Handler receives decoded frames in stream order.
type Handler interface {
	OnAddOrder(itch.AddOrder)
	OnExecuted(itch.Executed)
	OnCancel(itch.Cancel)
	// OnOther receives frames that are framed but not decoded. frame aliases
	// the input and is only valid for the duration of the call.
	OnOther(tag itch.MessageType, frame []byte)
}

// HandlerFuncs adapts optional callbacks to Handler. Nil callbacks drop the
// frame.
type HandlerFuncs struct {
	AddOrder func(itch.AddOrder)
	Executed func(itch.Executed)
	Cancel   func(itch.Cancel)
	Other    func(itch.MessageType, []byte)
}

func (h HandlerFuncs) OnAddOrder(m itch.AddOrder) {
	if h.AddOrder != nil {
		h.AddOrder(m)
	}
}

func (h HandlerFuncs) OnExecuted(m itch.Executed) {
	if h.Executed != nil {
		h.Executed(m)
	}
}

func (h HandlerFuncs) OnCancel(m itch.Cancel) {
	if h.Cancel != nil {
		h.Cancel(m)
	}
}

func (h HandlerFuncs) OnOther(tag itch.MessageType, frame []byte) {
	if h.Other != nil {
		h.Other(tag, frame)
	}
}

// dispatch decodes one complete frame straight into h without boxing the
// record in an itch.Message.
func dispatch(h Handler, frame []byte) error {
	tag := itch.MessageType(frame[0])
	switch tag {
	case itch.TypeAddOrder:
		m, err := itch.DecodeAddOrder(frame)
		if err != nil {
			return err
		}
		h.OnAddOrder(m)
	case itch.TypeExecuted:
		m, err := itch.DecodeExecuted(frame)
		if err != nil {
			return err
		}
		h.OnExecuted(m)
	case itch.TypeCancel:
		m, err := itch.DecodeCancel(frame)
		if err != nil {
			return err
		}
		h.OnCancel(m)
	default:
		h.OnOther(tag, frame)
	}
	return nil
}
