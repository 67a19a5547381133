package condition

// AttackPenalty returns the total to-hit penalty the set imposes on its
// owner's attacks.
//
// Postcondition: Returns >= 0.
func AttackPenalty(s *Set) int {
	total := 0
	for _, a := range s.All() {
		total += defs[a.Flag].AttackPenalty
	}
	return total
}

// Exposure returns the total to-hit bonus granted to attackers of the set's
// owner.
//
// Postcondition: Returns >= 0.
func Exposure(s *Set) int {
	total := 0
	for _, a := range s.All() {
		total += defs[a.Flag].Exposure
	}
	return total
}

// Helpless reports whether any active condition leaves its owner unable to
// defend itself.
func Helpless(s *Set) bool {
	for _, a := range s.All() {
		if defs[a.Flag].Helpless {
			return true
		}
	}
	return false
}
