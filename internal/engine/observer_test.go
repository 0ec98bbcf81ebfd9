package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/rabbet/internal/query/operations/join"
)

// MockObserver records every event it receives
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) types() []EventType {
	out := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}

func TestObservers_AddAndRemove(t *testing.T) {
	eng := New(nil)
	first, second := &MockObserver{}, &MockObserver{}

	eng.AddObserver(first)
	eng.AddObserver(second)
	require.Len(t, eng.observers, 2)

	eng.RemoveObserver(first)
	require.Len(t, eng.observers, 1)
	assert.Same(t, second, eng.observers[0])

	// removing an unknown observer is a no-op
	eng.RemoveObserver(&MockObserver{})
	assert.Len(t, eng.observers, 1)
}

func TestNotify_FansOutAndStamps(t *testing.T) {
	eng := New(nil)
	eng.notify(Event{Type: EventBindStart, RunID: "nobody-listening"})

	a, b := &MockObserver{}, &MockObserver{}
	eng.AddObserver(a)
	eng.AddObserver(b)

	eng.notify(Event{Type: EventBindEnd, RunID: "run-1", Data: 2})

	for _, o := range []*MockObserver{a, b} {
		require.Len(t, o.Events, 1)
		assert.Equal(t, EventBindEnd, o.Events[0].Type)
		assert.Equal(t, "run-1", o.Events[0].RunID)
		assert.Equal(t, 2, o.Events[0].Data)
		assert.False(t, o.Events[0].Timestamp.IsZero())
	}
}

func TestJoinEvents_CarryStepInfo(t *testing.T) {
	eng := newTestEngine()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	_, err := eng.RunJoin(JoinRequest{
		Paths: []string{"users.csv", "orders.csv"},
		On:    []string{"T1.id=T2.user_id"},
		Type:  join.JoinTypeLeft,
	})
	require.NoError(t, err)

	var steps []join.StepInfo
	var end map[string]any
	for _, e := range observer.Events {
		switch e.Type {
		case EventJoinStep:
			steps = append(steps, e.Data.(join.StepInfo))
		case EventJoinEnd:
			end = e.Data.(map[string]any)
		}
	}

	require.Len(t, steps, 1)
	assert.Equal(t, join.JoinTypeLeft, steps[0].Type)
	assert.Equal(t, "T1", steps[0].Left)
	assert.Equal(t, "T2", steps[0].Right)
	assert.Equal(t, map[string]any{"label": "T1", "rows": steps[0].Rows}, end)
}

func TestLegacyRightJoin_WarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := newTestEngine(WithLegacyProvenance(true)).RunJoin(JoinRequest{
		Paths: []string{"users.csv", "orders.csv"},
		On:    []string{"T1.id=T2.user_id"},
		Type:  join.JoinTypeRight,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"), buf.String())
	assert.Contains(t, buf.String(), "run_id=")
}

func TestLoggingObserver_WritesDebugRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewLoggingObserver(logger).OnEvent(Event{Type: EventJoinEnd, RunID: "r", Data: map[string]any{"rows": 1}})
	assert.Contains(t, buf.String(), "event=join_end")
	assert.Contains(t, buf.String(), "run_id=r")

	// a nil logger falls back to the default
	NewLoggingObserver(nil).OnEvent(Event{Type: EventJoinStep})
}
