package spectate

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/storage"
)

// HubConfig holds configuration for the hub.
type HubConfig struct {
	Size       grid.Size
	Solver     string
	TickRate   int // ticks per second
	StallLimit int
	// RestartDelay is how long a finished board stays up before the next
	// game starts.
	RestartDelay time.Duration
	// Seed is the seed of the first game; every new game adds one.
	Seed int64
}

// RunSaver persists finished games.
type RunSaver interface {
	SaveRun(run storage.Run) (int64, error)
}

// Hub plays one autopilot game at a time and broadcasts every tick to the
// attached viewers. All game state is owned by the hub's goroutine; viewers
// talk to it through Send.
type Hub struct {
	config  HubConfig
	logger  *log.Logger
	saver   RunSaver // optional
	viewers *Registry

	runner   *arena.Runner
	game     int
	seed     int64
	waitLeft int // ticks until the next game once the current one is over

	mu   sync.RWMutex
	last Frame

	msgChan  chan Message
	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a hub and lays out its first game.
func NewHub(cfg HubConfig, logger *log.Logger) (*Hub, error) {
	if cfg.TickRate < 1 {
		return nil, fmt.Errorf("spectate: tick rate must be positive, got %d", cfg.TickRate)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s, err := registry.Create(cfg.Solver, registry.Options{Logger: logger, Seed: cfg.Seed})
	if err != nil {
		return nil, err
	}
	r, err := arena.NewRunner(cfg.Size, s, logger, arena.RunnerOptions{StallLimit: cfg.StallLimit})
	if err != nil {
		return nil, err
	}

	h := &Hub{
		config:  cfg,
		logger:  logger,
		viewers: NewRegistry(),
		runner:  r,
		seed:    cfg.Seed,
		msgChan: make(chan Message, 64),
		done:    make(chan struct{}),
	}
	h.newGame()
	return h, nil
}

// SetRunSaver sets the optional store for finished games.
func (h *Hub) SetRunSaver(saver RunSaver) {
	h.saver = saver
}

// Run drives the game until ctx is cancelled or Stop is called.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(h.config.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.step()
		case msg := <-h.msgChan:
			h.handle(msg)
		case <-ctx.Done():
			return
		case <-h.done:
			return
		}
	}
}

// Stop ends Run. Safe to call multiple times.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Send queues a message for the hub's goroutine.
func (h *Hub) Send(msg Message) {
	select {
	case h.msgChan <- msg:
	case <-h.done:
	}
}

// Viewers returns the number of attached viewers.
func (h *Hub) Viewers() int {
	return h.viewers.Count()
}

// Rate returns the tick rate.
func (h *Hub) Rate() int {
	return h.config.TickRate
}

// Last returns the most recent frame.
func (h *Hub) Last() Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

func (h *Hub) handle(msg Message) {
	switch m := msg.(type) {
	case JoinMsg:
		h.viewers.Register(m.Viewer)
		m.Viewer.Send(FrameEvent{Frame: h.Last()})
		h.logger.Info("viewer joined", "viewer", m.Viewer.ID(), "viewers", h.viewers.Count())
	case LeaveMsg:
		h.viewers.Unregister(m.ID)
		h.logger.Info("viewer left", "viewer", m.ID, "viewers", h.viewers.Count())
	case NextSolverMsg:
		h.nextSolver(m.By)
	case RestartMsg:
		h.newGame()
		h.publish()
	}
}

func (h *Hub) nextSolver(by ViewerID) {
	id := registry.Next(h.runner.Solver().Name())
	s, err := registry.Create(id, registry.Options{Logger: h.logger, Seed: h.seed})
	if err != nil {
		h.logger.Error("cannot switch solver", "solver", id, "error", err)
		return
	}
	h.runner.SetSolver(s)
	h.logger.Info("solver switched", "solver", id, "by", by)
	h.viewers.Broadcast(SolverChangedEvent{Solver: id, By: by})
	h.publish()
}

func (h *Hub) newGame() {
	h.game++
	if h.game > 1 {
		h.seed++
	}
	h.waitLeft = int(h.config.RestartDelay * time.Duration(h.config.TickRate) / time.Second)
	h.runner.Reset(h.seed)
	h.capture()
}

// step advances the game by one tick, or counts down to the next game.
func (h *Hub) step() {
	if h.runner.State().Over() {
		if h.waitLeft > 0 {
			h.waitLeft--
			return
		}
		h.newGame()
		h.publish()
		return
	}

	h.runner.Tick()
	if h.runner.State().Over() {
		h.gameOver()
	}
	h.publish()
}

func (h *Hub) gameOver() {
	sum := h.runner.Summary()
	h.logger.Info("game over",
		"game", h.game,
		"solver", sum.Solver,
		"state", sum.State,
		"length", sum.Length,
		"ticks", sum.Ticks,
	)

	if h.saver != nil {
		if _, err := h.saver.SaveRun(storage.NewRun(sum)); err != nil {
			h.logger.Warn("cannot save run", "error", err)
		}
	}
	h.viewers.Broadcast(GameOverEvent{Game: h.game, Summary: sum})
}

func (h *Hub) capture() {
	f := Capture(h.runner, h.game)
	h.mu.Lock()
	h.last = f
	h.mu.Unlock()
}

func (h *Hub) publish() {
	h.capture()
	h.viewers.Broadcast(FrameEvent{Frame: h.Last()})
}
