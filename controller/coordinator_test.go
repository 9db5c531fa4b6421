package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestInvocation(tag string) (*invocation[int], *testHandle[int]) {
	h := newTestHandle[int](tag)
	_, cancel := context.WithCancel(context.Background())
	return &invocation[int]{id: tag + "-inv", handle: h, tag: tag, cancel: cancel}, h
}

func TestCoordinator_DistinctTagsAbortPrevious(t *testing.T) {
	var co coordinator[int]

	inv1, h1 := newTestInvocation("")
	inv2, h2 := newTestInvocation("")

	co.arrive(inv1)
	assert.True(t, co.authoritative(inv1))

	co.arrive(inv2)
	assert.Equal(t, 1, h1.aborts())
	assert.Equal(t, 0, h2.aborts())
	assert.False(t, co.authoritative(inv1), "pre-empted invocation loses authority")
	assert.True(t, co.authoritative(inv2))
}

func TestCoordinator_SharedTagKeepsBoth(t *testing.T) {
	var co coordinator[int]

	inv1, h1 := newTestInvocation("req-42")
	inv2, h2 := newTestInvocation("req-42")

	co.arrive(inv1)
	co.arrive(inv2)

	assert.Equal(t, 0, h1.aborts())
	assert.Equal(t, 0, h2.aborts())
	assert.True(t, co.authoritative(inv1), "same logical request stays authoritative")
	assert.True(t, co.authoritative(inv2))
}

func TestCoordinator_DifferentNonEmptyTagsAbort(t *testing.T) {
	var co coordinator[int]

	inv1, h1 := newTestInvocation("req-1")
	inv2, _ := newTestInvocation("req-2")

	co.arrive(inv1)
	co.arrive(inv2)

	assert.Equal(t, 1, h1.aborts())
	assert.False(t, co.authoritative(inv1))
}

func TestCoordinator_AbortCurrent(t *testing.T) {
	var co coordinator[int]

	// Safe on an empty slot.
	co.abortCurrent()

	inv, h := newTestInvocation("")
	co.arrive(inv)
	co.abortCurrent()
	assert.Equal(t, 1, h.aborts())
}

func TestSameRequest(t *testing.T) {
	assert.True(t, sameRequest("a", "a"))
	assert.False(t, sameRequest("a", "b"))
	assert.False(t, sameRequest("", ""), "empty tags never match")
	assert.False(t, sameRequest("a", ""))
}
