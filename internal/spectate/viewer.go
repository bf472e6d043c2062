package spectate

import "sync"

// ViewerID uniquely identifies a viewer (e.g., an SSH session).
type ViewerID string

// Viewer is the transport-neutral interface the hub sends events through.
type Viewer interface {
	// ID returns the unique viewer identifier.
	ID() ViewerID

	// Send delivers an event. Must be non-blocking.
	Send(evt Event)

	// Done returns a channel that closes when the viewer goes away.
	Done() <-chan struct{}
}

// ChannelViewer is a Viewer backed by a buffered channel. The terminal UI
// reads its events.
type ChannelViewer struct {
	id       ViewerID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelViewer creates a viewer that buffers up to size events.
func NewChannelViewer(id ViewerID, size int) *ChannelViewer {
	if size < 1 {
		size = 64
	}
	return &ChannelViewer{
		id:     id,
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// ID returns the viewer identifier.
func (v *ChannelViewer) ID() ViewerID {
	return v.id
}

// Send queues an event. When the buffer is full the oldest event is dropped,
// so a slow viewer skips frames instead of stalling the hub.
func (v *ChannelViewer) Send(evt Event) {
	select {
	case <-v.done:
		return
	default:
	}

	select {
	case v.events <- evt:
	default:
		select {
		case <-v.events:
		default:
		}
		select {
		case v.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (v *ChannelViewer) Events() <-chan Event {
	return v.events
}

// Done returns the done channel.
func (v *ChannelViewer) Done() <-chan struct{} {
	return v.done
}

// Close marks the viewer as gone. Safe to call multiple times.
func (v *ChannelViewer) Close() {
	v.doneOnce.Do(func() {
		close(v.done)
	})
}

// Registry tracks attached viewers. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	viewers map[ViewerID]Viewer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{viewers: make(map[ViewerID]Viewer)}
}

// Register adds a viewer.
func (r *Registry) Register(v Viewer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewers[v.ID()] = v
}

// Unregister removes a viewer.
func (r *Registry) Unregister(id ViewerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.viewers, id)
}

// Count returns the number of attached viewers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.viewers)
}

// Broadcast sends an event to every viewer, dropping the ones that are done.
func (r *Registry) Broadcast(evt Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.viewers {
		select {
		case <-v.Done():
			delete(r.viewers, id)
			continue
		default:
		}
		v.Send(evt)
	}
}
