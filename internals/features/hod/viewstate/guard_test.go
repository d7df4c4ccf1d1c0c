package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuard_LatestTicketWins(t *testing.T) {
	var g Guard
	var got string

	first := g.Begin("available")
	second := g.Begin("available")

	assert.True(t, g.Commit(second, func() { got = "second" }))
	assert.False(t, g.Commit(first, func() { got = "first" }))
	assert.Equal(t, "second", got)
}

func TestGuard_SlotsAreIndependent(t *testing.T) {
	var g Guard
	a := g.Begin("assignments")
	_ = g.Begin("available")
	assert.True(t, g.Commit(a, func() {}))
}

func TestGuard_NoCommitAfterClose(t *testing.T) {
	var g Guard
	tk := g.Begin("assignments")
	g.Close()

	ran := false
	assert.False(t, g.Commit(tk, func() { ran = true }))
	assert.False(t, ran)
	assert.True(t, g.Closed())
}
