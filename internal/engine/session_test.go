package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"chartweb/internal/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *engine.SessionStore {
	t.Helper()
	return engine.NewSessionStore(newTestDispatcher(t), map[engine.Key]string{keyA: "a0", keyB: "b0"})
}

func TestSessionStore_GetCreatesFromDefaults(t *testing.T) {
	st := newTestStore(t)
	sess := st.Get("")

	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, map[engine.Key]string{keyA: "a0", keyB: "b0"}, sess.Values())
	assert.Same(t, sess, st.Get(sess.ID))
	assert.Equal(t, 1, st.Len())
}

func TestSessionStore_GetKeepsUnknownUUID(t *testing.T) {
	st := newTestStore(t)
	id := uuid.NewString()
	assert.Equal(t, id, st.Get(id).ID)
	assert.NotEqual(t, "not-a-uuid", st.Get("not-a-uuid").ID)
}

func TestSessionStore_ApplyIsolatesSessions(t *testing.T) {
	st := newTestStore(t)
	s1 := st.Get("")
	s2 := st.Get("")

	out, err := st.Apply(s1, engine.Event{Component: "a", Property: "value", Value: "X"})
	require.NoError(t, err)
	assert.Equal(t, map[engine.Key]any{outSum: "Xb0"}, out)

	out, err = st.Initial(s2)
	require.NoError(t, err)
	assert.Equal(t, "a0b0", out[outSum])
	assert.Equal(t, "X", s1.Values()[keyA])
	assert.Equal(t, "a0", s2.Values()[keyA])
}

func TestSessionStore_ApplyUnknownInput(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Apply(st.Get(""), engine.Event{Component: "sum", Property: "children", Value: "x"})
	assert.ErrorIs(t, err, engine.ErrUnknownInput)
}

func TestSessionStore_ConcurrentApply(t *testing.T) {
	st := newTestStore(t)
	sess := st.Get("")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Apply(sess, engine.Event{Component: "b", Property: "value", Value: "z"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, "z", sess.Values()[keyB])
}

func TestSessionStore_Prune(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st.Now = func() time.Time { return now }

	old := st.Get("")
	now = now.Add(20 * time.Minute)
	fresh := st.Get("")

	assert.Equal(t, 1, st.Prune(15*time.Minute))
	assert.Equal(t, 1, st.Len())
	assert.Same(t, fresh, st.Get(fresh.ID))
	assert.NotSame(t, old, st.Get(old.ID))
}

func TestSessionStore_RunPrunerStops(t *testing.T) {
	st := newTestStore(t)
	st.Get("")
	ctx, cancel := context.WithCancel(context.Background())

	pruned := make(chan int, 1)
	done := make(chan error, 1)
	go func() {
		done <- st.RunPruner(ctx, time.Millisecond, -time.Hour, func(n int) {
			select {
			case pruned <- n:
			default:
			}
		})
	}()

	select {
	case n := <-pruned:
		assert.Equal(t, 1, n)
	case <-time.After(5 * time.Second):
		t.Fatal("pruner never ran")
	}
	cancel()
	require.NoError(t, <-done)
}
