package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/delve/internal/game/message"
)

func TestBuffer(t *testing.T) {
	var b message.Buffer
	b.Notify("The jackal bites!")
	b.Notify("You kill the jackal!")
	assert.Equal(t, []string{"The jackal bites!", "You kill the jackal!"}, b.Messages())
	assert.Len(t, b.Drain(), 2)
	assert.Empty(t, b.Messages())
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := message.NewLogSink(zap.New(core))
	s.Notify("You miss the newt.")
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "You miss the newt.", entries[0].Message)
		assert.Equal(t, "message", entries[0].LoggerName)
	}
}

func TestTee(t *testing.T) {
	var a, b message.Buffer
	tee := message.Tee{&a, &b, message.Discard}
	tee.Notify("hello")
	assert.Equal(t, []string{"hello"}, a.Messages())
	assert.Equal(t, []string{"hello"}, b.Messages())
}
