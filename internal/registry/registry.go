// Package registry holds the observable in-memory project store.
// The registry is the sole owner of the project sequence; every read
// leaves through a defensive snapshot and every write goes through
// AddProject or MoveProject.
package registry

import (
	"sync"

	"github.com/dmelton/plank/internal/log"
	"github.com/dmelton/plank/internal/project"
)

// Listener receives a fresh snapshot of the full project sequence after
// every mutation. Snapshots are independent copies: mutating one does
// not affect the registry or any other listener.
type Listener func(projects []project.Project)

// Registry is the observable project store. It is owned by the Update
// loop and is not safe for concurrent use; the only sharing is the
// snapshot copies handed to listeners.
type Registry struct {
	projects  []project.Project
	listeners []Listener
}

// New creates an empty registry. The app constructs one instance and
// passes it by reference; Default exists for hosts that want
// process-wide state.
func New() *Registry {
	return &Registry{}
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default returns the lazily initialized process-wide registry.
func Default() *Registry {
	once.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// AddListener registers a callback for post-mutation snapshots.
// Duplicate registrations both fire; registrations are permanent for
// the registry's lifetime (no unregister in this system's scope).
func (r *Registry) AddListener(fn Listener) {
	r.listeners = append(r.listeners, fn)
}

// AddProject appends a new Active project and notifies all listeners.
// Callers are responsible for validating title, description, and people
// before calling; AddProject cannot fail for well-formed inputs.
func (r *Registry) AddProject(title, description string, people int) {
	p := project.New(title, description, people)
	r.projects = append(r.projects, p)
	log.Debug(log.CatRegistry, "project added", "id", p.ID, "title", title, "people", people)
	r.notify()
}

// MoveProject changes the status of the project with the given id.
// Unknown ids and same-status moves are silent no-ops: a stale id must
// not disturb listeners, and an idempotent move must not trigger a
// redundant re-render.
func (r *Registry) MoveProject(id string, status project.Status) {
	for i := range r.projects {
		if r.projects[i].ID != id {
			continue
		}
		if r.projects[i].Status == status {
			return
		}
		r.projects[i].Status = status
		log.Debug(log.CatRegistry, "project moved", "id", id, "status", status)
		r.notify()
		return
	}
}

// Len returns the number of projects in the registry.
func (r *Registry) Len() int {
	return len(r.projects)
}

// Snapshot returns an independent copy of the current project sequence.
func (r *Registry) Snapshot() []project.Project {
	return r.snapshot()
}

// notify invokes every listener in registration order, each with its
// own fresh snapshot. Fan-out is synchronous and depth-first; a
// panicking listener propagates to the mutating caller.
func (r *Registry) notify() {
	for _, fn := range r.listeners {
		fn(r.snapshot())
	}
}

func (r *Registry) snapshot() []project.Project {
	snap := make([]project.Project, len(r.projects))
	copy(snap, r.projects)
	return snap
}
