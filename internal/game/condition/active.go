package condition

// Active is one applied condition.
type Active struct {
	Flag Flag
	// Remaining is turns left, or Permanent.
	Remaining int
}

// Set tracks all conditions currently applied to one actor.
// It is not safe for concurrent use; the caller must serialise access.
type Set struct {
	active [flagCount]*Active
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{}
}

// Apply adds f for duration turns, or extends it when already present.
// A duration of 0 or less other than Permanent is ignored.
//
// Postcondition: when applied, Has(f) is true and Remaining(f) is the larger
// of the previous and the new duration, Permanent dominating.
func (s *Set) Apply(f Flag, duration int) bool {
	Lookup(f)
	if duration <= 0 && duration != Permanent {
		return false
	}
	if cur := s.active[f]; cur != nil {
		if cur.Remaining == Permanent {
			return true
		}
		if duration == Permanent || duration > cur.Remaining {
			cur.Remaining = duration
		}
		return true
	}
	s.active[f] = &Active{Flag: f, Remaining: duration}
	return true
}

// Remove clears f and reports whether it was present.
//
// Postcondition: Has(f) is false.
func (s *Set) Remove(f Flag) bool {
	Lookup(f)
	was := s.active[f] != nil
	s.active[f] = nil
	return was
}

// Has reports whether f is active.
func (s *Set) Has(f Flag) bool {
	if s == nil || f < 0 || f >= flagCount {
		return false
	}
	return s.active[f] != nil
}

// Remaining returns the turns left on f, Permanent, or 0 when absent.
func (s *Set) Remaining(f Flag) int {
	if !s.Has(f) {
		return 0
	}
	return s.active[f].Remaining
}

// Tick decrements every timed condition and returns those that expired, in
// flag order.
//
// Postcondition: for every returned flag, Has(flag) is false.
func (s *Set) Tick() []Flag {
	var expired []Flag
	for i, a := range s.active {
		if a == nil || a.Remaining == Permanent {
			continue
		}
		a.Remaining--
		if a.Remaining <= 0 {
			expired = append(expired, Flag(i))
			s.active[i] = nil
		}
	}
	return expired
}

// All returns copies of the active conditions in flag order.
func (s *Set) All() []Active {
	if s == nil {
		return nil
	}
	var out []Active
	for _, a := range s.active {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Clear removes every condition.
func (s *Set) Clear() {
	s.active = [flagCount]*Active{}
}
