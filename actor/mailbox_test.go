package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailboxScanRemoveFirstMatch(t *testing.T) {
	mb := newMailbox()
	mb.push(int64(1))
	mb.push("two")
	mb.push(int64(3))

	idx, v, ok := mb.scanRemove([]Shape{AnyString})
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, "two", v)
	require.Equal(t, 2, mb.len())
}

func TestMailboxScanRemovePreservesOrderOfNonMatches(t *testing.T) {
	mb := newMailbox()
	mb.push(int64(1))
	mb.push("two")
	mb.push(int64(3))

	_, _, ok := mb.scanRemove([]Shape{AnyString})
	require.True(t, ok)

	_, first, ok := mb.scanRemove([]Shape{AnyInt})
	require.True(t, ok)
	require.Equal(t, int64(1), first)

	_, second, ok := mb.scanRemove([]Shape{AnyInt})
	require.True(t, ok)
	require.Equal(t, int64(3), second)
}

func TestMailboxScanRemoveNoMatch(t *testing.T) {
	mb := newMailbox()
	mb.push(int64(1))

	_, _, ok := mb.scanRemove([]Shape{AnyString})
	require.False(t, ok)
	require.Equal(t, 1, mb.len())
}

func TestMailboxScanRemoveTiesBrokenByPatternOrder(t *testing.T) {
	mb := newMailbox()
	mb.push(int64(5))

	idx, v, ok := mb.scanRemove([]Shape{AnyString, AnyInt})
	require.True(t, ok)
	require.Equal(t, 1, idx)
	require.Equal(t, int64(5), v)
}

func TestMailboxPushNotifiesWithoutBlocking(t *testing.T) {
	mb := newMailbox()
	mb.push(int64(1))
	mb.push(int64(2))

	select {
	case <-mb.notify:
	default:
		t.Fatal("expected a pending notification after push")
	}
}
