package model

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []Message
		wantErr bool
	}{
		{"empty", nil, false},
		{"alternating", []Message{{RoleUser, "a"}, {RoleAssistant, "b"}}, false},
		{"system entry", []Message{{RoleSystem, "be evil"}}, true},
		{"unknown role", []Message{{RoleUser, "a"}, {Role("tool"), "x"}}, true},
		{"missing role", []Message{{Content: "a"}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateHistory(tc.history)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppendTurn_DoesNotAliasInput(t *testing.T) {
	prior := make([]Message, 2, 8)
	prior[0] = Message{RoleUser, "first"}
	prior[1] = Message{RoleAssistant, "reply"}

	next := AppendTurn(prior, "second", "another reply")

	require.Len(t, next, 4)
	assert.Equal(t, prior, next[:2])
	assert.Equal(t, Message{RoleUser, "second"}, next[2])
	assert.Equal(t, Message{RoleAssistant, "another reply"}, next[3])

	// writing past len(prior) must not be visible through the original backing array
	extended := prior[:cap(prior)]
	assert.Empty(t, extended[2].Content)
}

func TestWindow(t *testing.T) {
	history := []Message{
		{RoleUser, "u1"}, {RoleAssistant, "a1"},
		{RoleUser, "u2"}, {RoleAssistant, "a2"},
		{RoleUser, "u3"}, {RoleAssistant, "a3"},
	}

	assert.Equal(t, history, Window(history, 0))
	assert.Equal(t, history, Window(history, 10))
	assert.Equal(t, history[2:], Window(history, 4))
	// an odd limit would start on an assistant entry; it is dropped
	assert.Equal(t, history[4:], Window(history, 3))
	assert.Empty(t, Window(history, 1))
}

func TestToSchema(t *testing.T) {
	out := ToSchema([]Message{{RoleUser, "hi"}, {RoleAssistant, "hello"}})

	require.Len(t, out, 2)
	assert.Equal(t, schema.User, out[0].Role)
	assert.Equal(t, "hi", out[0].Content)
	assert.Equal(t, schema.Assistant, out[1].Role)
}
