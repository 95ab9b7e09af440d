package message

import (
	"atlas-introductions/kafka/producer"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
)

// Buffer accumulates messages per topic token so an operation's notifications
// are emitted together only after the operation itself has succeeded.
type Buffer struct {
	buffer map[string][]kafka.Message
}

func NewBuffer() *Buffer {
	return &Buffer{
		buffer: make(map[string][]kafka.Message),
	}
}

func (b *Buffer) Put(t string, p model.Provider[[]kafka.Message]) error {
	ms, err := p()
	if err != nil {
		return err
	}
	b.buffer[t] = append(b.buffer[t], ms...)
	return nil
}

func (b *Buffer) GetAll() map[string][]kafka.Message {
	return b.buffer
}

// Emit runs the buffering function and flushes everything it accumulated.
func Emit(p producer.Provider) func(f func(buf *Buffer) error) error {
	return func(f func(buf *Buffer) error) error {
		b := NewBuffer()
		err := f(b)
		if err != nil {
			return err
		}
		for t, ms := range b.GetAll() {
			err = p(t)(model.FixedProvider(ms))
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// EmitMultiple accumulates messages across several operations and flushes them
// in one pass, so notifications for a compound transition travel together.
func EmitMultiple(p producer.Provider) func(...func(*Buffer) error) error {
	return func(operations ...func(*Buffer) error) error {
		buf := NewBuffer()
		for _, operation := range operations {
			if err := operation(buf); err != nil {
				return err
			}
		}
		for t, ms := range buf.GetAll() {
			if err := p(t)(model.FixedProvider(ms)); err != nil {
				return err
			}
		}
		return nil
	}
}
