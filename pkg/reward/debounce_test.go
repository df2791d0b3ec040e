package reward

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type collector struct {
	mu      sync.Mutex
	results []Result
	got     chan struct{}
}

func newCollector() *collector {
	return &collector{got: make(chan struct{}, 16)}
}

func (c *collector) add(r Result) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
	c.got <- struct{}{}
}

func (c *collector) all() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Result(nil), c.results...)
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.got:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced result")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	c := newCollector()
	d := NewDebouncer(30*time.Millisecond, c.add)
	defer d.Stop()

	d.Submit(100, 5)
	d.Submit(1000, 5)
	d.Submit(8500, 5)
	c.wait(t)

	// Give a superseded timer the chance to misfire
	time.Sleep(60 * time.Millisecond)

	results := c.all()
	require.Len(t, results, 1)
	assert.Equal(t, 8500.0, results[0].Achievement)
	assert.InDelta(t, 425, results[0].Estimated, 1e-9)
	assert.NoError(t, results[0].Err)
}

func TestDebouncerSeparateBursts(t *testing.T) {
	c := newCollector()
	d := NewDebouncer(10*time.Millisecond, c.add)
	defer d.Stop()

	d.Submit(100, 10)
	c.wait(t)
	d.Submit(200, 10)
	c.wait(t)

	results := c.all()
	require.Len(t, results, 2)
	assert.InDelta(t, 10, results[0].Estimated, 1e-9)
	assert.InDelta(t, 20, results[1].Estimated, 1e-9)
}

func TestDebouncerFlush(t *testing.T) {
	c := newCollector()
	d := NewDebouncer(time.Hour, c.add)
	defer d.Stop()

	d.Submit(8500, 5)
	d.Flush()

	results := c.all()
	require.Len(t, results, 1)
	assert.InDelta(t, 425, results[0].Estimated, 1e-9)

	// Nothing pending: a second flush delivers nothing
	d.Flush()
	assert.Len(t, c.all(), 1)
}

func TestDebouncerStop(t *testing.T) {
	c := newCollector()
	d := NewDebouncer(10*time.Millisecond, c.add)

	d.Submit(8500, 5)
	d.Stop()
	d.Submit(100, 5)
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, c.all())
}

func TestDebouncerInvalidInputDeliversZero(t *testing.T) {
	c := newCollector()
	d := NewDebouncer(time.Millisecond, c.add)
	defer d.Stop()

	d.Submit(-1, 5)
	c.wait(t)

	results := c.all()
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].Estimated)
	assert.NoError(t, results[0].Err)
}
