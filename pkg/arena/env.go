package arena

import (
	"container/list"
	"sync"
)

// Env is the global environment: a mutex-guarded registry of context
// groups (wikrt_env's doubly-linked cxm list). It exists so a host
// process can enumerate and eventually tear down every arena it has
// created; the runtime core itself never needs more than one Group.
type Env struct {
	mu     sync.Mutex
	groups list.List
	count  uint32
}

// NewEnv creates an empty environment.
func NewEnv() *Env { return &Env{} }

// NewGroup creates a Group of the given size and registers it.
func (e *Env) NewGroup(sizeBytes int) *Group {
	g := NewGroup(sizeBytes)
	e.mu.Lock()
	e.groups.PushBack(g)
	e.count++
	e.mu.Unlock()
	return g
}

// Release removes a Group from the environment's registry. It does
// not touch the Group's memory; Go's GC reclaims it once unreferenced.
func (e *Env) Release(g *Group) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for el := e.groups.Front(); el != nil; el = el.Next() {
		if el.Value.(*Group) == g {
			e.groups.Remove(el)
			return
		}
	}
}

// GroupCount reports how many live groups this environment tracks.
func (e *Env) GroupCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.groups.Len()
}

// GroupsCreated is a monotonic creation counter (mirrors wikrt_env's
// cxm_created stat).
func (e *Env) GroupsCreated() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}
