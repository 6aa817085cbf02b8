package netlist

// Walk is the per-query scratch state threaded through a traversal: the
// ordered path walked so far, which doubles as the visited set. The
// ordered list and the membership set are kept in lockstep on every mutation
// and on every Clone, so copy-on-branch search never has to reconcile them.
type Walk struct {
	Path []string
	seen map[string]bool
}

// NewWalk returns an empty Walk.
func NewWalk() *Walk {
	return &Walk{seen: make(map[string]bool)}
}

// Contains reports whether qualifiedPin already appears on the walk.
func (w *Walk) Contains(qualifiedPin string) bool {
	return w.seen[qualifiedPin]
}

// Append adds qualifiedPin to the path if it is not already present,
// reporting whether it was added. Appending an already-visited pin is a
// no-op that returns false, matching "attempted only if not already in
// walkState.path".
func (w *Walk) Append(qualifiedPin string) bool {
	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	if w.seen[qualifiedPin] {
		return false
	}
	w.seen[qualifiedPin] = true
	w.Path = append(w.Path, qualifiedPin)
	return true
}

// Clone returns an independent copy of w, so a failed branch can be
// discarded without disturbing the caller's walk (the "copy-on-branch"
// semantics the trace and pull engines both rely on).
func (w *Walk) Clone() *Walk {
	clone := &Walk{
		Path: make([]string, len(w.Path)),
		seen: make(map[string]bool, len(w.seen)),
	}
	copy(clone.Path, w.Path)
	for k, v := range w.seen {
		clone.seen[k] = v
	}
	return clone
}
