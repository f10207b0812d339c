package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext_SetNotifiesSubscribers(t *testing.T) {
	ctx := New(Dark)
	assert.Equal(t, Dark, ctx.Current())

	var seenA, seenB []Theme
	ctx.Subscribe(func(th Theme) { seenA = append(seenA, th) })
	cancelB := ctx.Subscribe(func(th Theme) { seenB = append(seenB, th) })

	ctx.Set(Light)
	assert.Equal(t, Light, ctx.Current())
	assert.Equal(t, []Theme{Light}, seenA)
	assert.Equal(t, []Theme{Light}, seenB)

	// same value: no notification
	ctx.Set(Light)
	assert.Len(t, seenA, 1)

	cancelB()
	ctx.Set(Dark)
	assert.Equal(t, []Theme{Light, Dark}, seenA)
	assert.Equal(t, []Theme{Light}, seenB)
}

func TestContext_SubscriberSeesNewTheme(t *testing.T) {
	ctx := New(Dark)
	ctx.Subscribe(func(th Theme) {
		if th == Light {
			assert.Equal(t, Light, ctx.Current())
		}
	})

	assert.NotPanics(t, func() { ctx.Set(Light) })
}
