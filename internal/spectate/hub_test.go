package spectate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	_ "github.com/vovakirdan/snakebot/internal/solver"
	"github.com/vovakirdan/snakebot/internal/storage"
)

type memSaver struct {
	mu   sync.Mutex
	runs []storage.Run
}

func (m *memSaver) SaveRun(run storage.Run) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return int64(len(m.runs)), nil
}

func (m *memSaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.runs)
}

func newHub(t *testing.T, solverID string) *Hub {
	t.Helper()
	h, err := NewHub(HubConfig{
		Size:       grid.Size{W: 6, H: 6},
		Solver:     solverID,
		TickRate:   1000,
		StallLimit: 144,
		Seed:       1,
	}, nil)
	require.NoError(t, err)
	return h
}

// drain returns every event queued on the viewer.
func drain(v *ChannelViewer) []Event {
	var out []Event
	for {
		select {
		case evt := <-v.Events():
			out = append(out, evt)
		default:
			return out
		}
	}
}

func TestChannelViewerDropsOldest(t *testing.T) {
	v := NewChannelViewer("v", 2)
	for game := 1; game <= 3; game++ {
		v.Send(FrameEvent{Frame: Frame{Game: game}})
	}

	events := drain(v)
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].(FrameEvent).Frame.Game)
	assert.Equal(t, 3, events[1].(FrameEvent).Frame.Game)
}

func TestChannelViewerIgnoresSendAfterClose(t *testing.T) {
	v := NewChannelViewer("v", 4)
	v.Close()
	v.Close()
	v.Send(FrameEvent{})
	assert.Empty(t, drain(v))
}

func TestRegistryDropsClosedViewers(t *testing.T) {
	r := NewRegistry()
	open, closed := NewChannelViewer("open", 4), NewChannelViewer("closed", 4)
	r.Register(open)
	r.Register(closed)
	closed.Close()

	r.Broadcast(FrameEvent{})
	assert.Equal(t, 1, r.Count())
	assert.Len(t, drain(open), 1)
}

func TestNewHubErrors(t *testing.T) {
	_, err := NewHub(HubConfig{Size: grid.Size{W: 6, H: 6}, Solver: "nope", TickRate: 10}, nil)
	assert.Error(t, err)

	_, err = NewHub(HubConfig{Size: grid.Size{W: 6, H: 6}, Solver: "astar"}, nil)
	assert.Error(t, err)

	_, err = NewHub(HubConfig{Size: grid.Size{W: 2, H: 2}, Solver: "astar", TickRate: 10}, nil)
	assert.ErrorIs(t, err, arena.ErrTooSmall)
}

func TestHubJoinSendsCurrentFrame(t *testing.T) {
	h := newHub(t, "astar")
	v := NewChannelViewer("v", 8)

	h.handle(JoinMsg{Viewer: v})
	assert.Equal(t, 1, h.Viewers())

	events := drain(v)
	require.Len(t, events, 1)
	f := events[0].(FrameEvent).Frame
	assert.Equal(t, 1, f.Game)
	assert.Equal(t, "astar", f.Summary.Solver)
	assert.Equal(t, arena.InitialLength, f.Summary.Length)

	h.handle(LeaveMsg{ID: "v"})
	assert.Zero(t, h.Viewers())
}

func TestHubStepPublishesFrames(t *testing.T) {
	h := newHub(t, "greedy")
	v := NewChannelViewer("v", 16)
	h.handle(JoinMsg{Viewer: v})
	drain(v)

	for i := 0; i < 3; i++ {
		h.step()
	}
	events := drain(v)
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[2].(FrameEvent).Frame.Stats.Ticks)
	assert.Equal(t, 3, h.Last().Stats.Ticks)
}

func TestHubSavesAndRestarts(t *testing.T) {
	h := newHub(t, "hamilton")
	saver := &memSaver{}
	h.SetRunSaver(saver)
	v := NewChannelViewer("v", 4)
	h.handle(JoinMsg{Viewer: v})

	for i := 0; i < 20000 && saver.count() == 0; i++ {
		h.step()
	}
	require.Equal(t, 1, saver.count(), "game never ended")
	assert.Equal(t, "hamilton", saver.runs[0].Solver)
	assert.Equal(t, int64(1), saver.runs[0].Seed)

	var over *GameOverEvent
	for _, evt := range drain(v) {
		if e, ok := evt.(GameOverEvent); ok {
			over = &e
		}
	}
	require.NotNil(t, over, "viewer missed the game over event")
	assert.Equal(t, 1, over.Game)

	h.step()
	assert.Equal(t, 2, h.Last().Game)
	assert.Equal(t, int64(2), h.Last().Summary.Seed)
	assert.Equal(t, arena.StatePlaying, h.Last().Summary.State)
}

func TestHubRestartDelay(t *testing.T) {
	h, err := NewHub(HubConfig{
		Size:         grid.Size{W: 6, H: 6},
		Solver:       "random",
		TickRate:     10,
		RestartDelay: 300 * time.Millisecond,
		Seed:         5,
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 10000 && !h.runner.State().Over(); i++ {
		h.step()
	}
	require.True(t, h.runner.State().Over())

	for i := 0; i < 3; i++ {
		h.step()
		assert.Equal(t, 1, h.Last().Game, "restarted after %d waiting ticks", i+1)
	}
	h.step()
	assert.Equal(t, 2, h.Last().Game)
}

func TestHubNextSolver(t *testing.T) {
	h := newHub(t, "astar")
	v := NewChannelViewer("v", 8)
	h.handle(JoinMsg{Viewer: v})
	drain(v)

	h.handle(NextSolverMsg{By: "v"})
	assert.Equal(t, "greedy", h.runner.Solver().Name())
	assert.Equal(t, "greedy", h.Last().Summary.Solver)

	events := drain(v)
	require.NotEmpty(t, events)
	assert.Equal(t, SolverChangedEvent{Solver: "greedy", By: "v"}, events[0])
}

func TestHubRestartMsg(t *testing.T) {
	h := newHub(t, "astar")
	h.step()
	h.handle(RestartMsg{})
	assert.Equal(t, 2, h.Last().Game)
	assert.Zero(t, h.Last().Stats.Ticks)
}

func TestHubRunStopsOnCancel(t *testing.T) {
	h := newHub(t, "hamilton")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	v := NewChannelViewer("v", 64)
	h.Send(JoinMsg{Viewer: v})

	frames := 0
	timeout := time.After(5 * time.Second)
	for frames < 3 {
		select {
		case evt := <-v.Events():
			if _, ok := evt.(FrameEvent); ok {
				frames++
			}
		case <-timeout:
			t.Fatal("no frames from a running hub")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
