package countryexplorer

// ComparisonSet is an ordered collection of distinct countries keyed by code.
// Insertion order is preserved. There is no size limit.
//
// The zero value is an empty set ready to use. Not safe for concurrent use;
// the Controller serializes access.
type ComparisonSet struct {
	members []Country
	codes   map[string]struct{}
}

// Add appends country unless a member with the same code is already present.
// It reports whether an insertion happened. Countries without a code are
// never inserted.
func (s *ComparisonSet) Add(country Country) bool {
	if country.Code == "" || s.Contains(country.Code) {
		return false
	}
	if s.codes == nil {
		s.codes = make(map[string]struct{})
	}
	s.codes[country.Code] = struct{}{}
	s.members = append(s.members, country)
	return true
}

// Remove drops the member with the given code. Removing a non-member is a no-op.
// It reports whether a member was removed.
func (s *ComparisonSet) Remove(code string) bool {
	if !s.Contains(code) {
		return false
	}
	delete(s.codes, code)
	for i, c := range s.members {
		if c.Code == code {
			// Build a fresh slice so sequences handed out earlier stay intact.
			kept := make([]Country, 0, len(s.members)-1)
			kept = append(kept, s.members[:i]...)
			s.members = append(kept, s.members[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether a member has the given code.
func (s *ComparisonSet) Contains(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Len returns the number of members.
func (s *ComparisonSet) Len() int {
	return len(s.members)
}

// Countries returns the members in insertion order. The slice is a copy.
func (s *ComparisonSet) Countries() []Country {
	out := make([]Country, len(s.members))
	copy(out, s.members)
	return out
}

// Codes returns the member codes in insertion order.
func (s *ComparisonSet) Codes() []string {
	codes := make([]string, len(s.members))
	for i, c := range s.members {
		codes[i] = c.Code
	}
	return codes
}

// Clear empties the set.
func (s *ComparisonSet) Clear() {
	s.members = nil
	s.codes = nil
}
