package event

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Recorder keeps published event types in memory
type Recorder struct {
	mu    sync.Mutex
	types []string
}

func (r *Recorder) Publish(_ context.Context, resource string, action Action, _ uuid.UUID, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, Type(resource, action))
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}
