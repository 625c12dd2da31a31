package stagger

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	d := Step(50 * time.Millisecond)
	assert.Equal(t, time.Duration(0), d(0))
	assert.Equal(t, 50*time.Millisecond, d(1))
	assert.Equal(t, 550*time.Millisecond, d(11))
	assert.Equal(t, time.Duration(0), Zero(7))
}

func TestRenderKeepsInputOrder(t *testing.T) {
	items := make([]int, 40)
	for i := range items {
		items[i] = i
	}
	out, err := Render(context.Background(), items, Step(100*time.Millisecond), func(i, item int, delay time.Duration) (string, error) {
		// Finish in a scrambled order.
		time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
		return fmt.Sprintf("%d@%s", item, delay), nil
	})
	require.NoError(t, err)
	require.Len(t, out, len(items))
	for i, s := range out {
		assert.Equal(t, fmt.Sprintf("%d@%s", i, time.Duration(i)*100*time.Millisecond), s)
	}
}

func TestRenderNilDelayIsZero(t *testing.T) {
	out, err := Render(context.Background(), []string{"a", "b"}, nil, func(_ int, item string, delay time.Duration) (string, error) {
		assert.Zero(t, delay)
		return item, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render(context.Background(), nil, Zero, func(int, string, time.Duration) (string, error) {
		t.Error("render called for empty input")
		return "", nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRenderReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	out, err := Render(context.Background(), []int{1, 2, 3}, Zero, func(i, _ int, _ time.Duration) (string, error) {
		if i == 1 {
			return "", boom
		}
		return "ok", nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestRenderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, []int{1, 2}, Zero, func(int, int, time.Duration) (string, error) {
		return "x", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
