package controllers

import (
	"testing"

	"gopkg.in/go-playground/assert.v1"
)

func TestFallbackReplyIsDeterministic(t *testing.T) {
	message := "what is the meaning of life"
	assert.Equal(t, fallbackReply(message), fallbackReply(message))
}

func TestFallbackReplyComesFromTable(t *testing.T) {
	found := false
	reply := fallbackReply("gibberish")
	for _, candidate := range fallbackReplies {
		if candidate == reply {
			found = true
		}
	}
	assert.Equal(t, found, true)
}

func TestContainsAny(t *testing.T) {
	assert.Equal(t, containsAny("show me the menu please", "menu", "food"), true)
	assert.Equal(t, containsAny("can i book a seat", "table", "book"), true)
	assert.Equal(t, containsAny("hello there", "menu", "order"), false)
}
