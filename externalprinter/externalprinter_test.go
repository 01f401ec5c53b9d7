package externalprinter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendThenDrainPreservesOrder(t *testing.T) {
	p := New(4)
	p.Send("one")
	p.Send("two")
	p.Send("three")

	got := p.Drain()
	assert.Equal(t, []string{"one", "two", "three"}, got)
	assert.Empty(t, p.Drain())
}

func TestTrySendFailsWhenFullNeverDrops(t *testing.T) {
	p := New(1)
	require.True(t, p.TrySend("a"))
	assert.False(t, p.TrySend("b"))

	got := p.Drain()
	assert.Equal(t, []string{"a"}, got)
}

func TestSendBlocksUntilDrainFreesCapacity(t *testing.T) {
	p := New(1)
	p.Send("first")

	unblocked := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Send("second")
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("Send returned before capacity was freed")
	case <-time.After(50 * time.Millisecond):
	}

	p.Drain()

	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("Send never unblocked after Drain freed capacity")
	}
	wg.Wait()
}

func TestSendContextRespectsCancellation(t *testing.T) {
	p := New(1)
	p.Send("fill")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.SendContext(ctx, "second")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDefaultCapacityAppliedForNonPositive(t *testing.T) {
	p := New(0)
	for i := 0; i < DefaultCapacity; i++ {
		require.True(t, p.TrySend("x"))
	}
	assert.False(t, p.TrySend("overflow"))
}
