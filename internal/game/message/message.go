// Package message delivers player-visible combat narration.
package message

import (
	"sync"

	"go.uber.org/zap"
)

// Sink receives narration. Implementations must not influence game state.
type Sink interface {
	Notify(text string)
}

// LogSink writes every message to a zap logger at info level.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a LogSink writing to logger.
//
// Precondition: logger is non-nil.
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("message")}
}

// Notify logs text.
func (s *LogSink) Notify(text string) {
	s.logger.Info(text)
}

// Buffer collects messages in memory.
type Buffer struct {
	mu   sync.Mutex
	msgs []string
}

// Notify appends text.
func (b *Buffer) Notify(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, text)
}

// Messages returns a copy of the collected messages.
func (b *Buffer) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.msgs))
	copy(out, b.msgs)
	return out
}

// Drain returns and clears the collected messages.
func (b *Buffer) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.msgs
	b.msgs = nil
	return out
}

// Tee fans a message out to several sinks.
type Tee []Sink

// Notify forwards text to every sink in order.
func (t Tee) Notify(text string) {
	for _, s := range t {
		s.Notify(text)
	}
}

// Discard drops every message.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(string) {}
