package countryexplorer

// Phase is the data-load progress of an ExplorerState.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// ExplorerState is the search-and-comparison state of one explorer session.
//
// It moves Loading -> Ready or Loading -> Failed exactly once. Failed is
// terminal; a manual refresh creates a new state. All methods run to
// completion synchronously; an instance must be owned by a single goroutine
// (see Controller).
type ExplorerState struct {
	phase      Phase
	index      *CountryIndex
	searchTerm string
	comparison ComparisonSet
	viewport   Viewport
	cause      error
}

// NewExplorerState returns a state in the Loading phase with the world viewport.
func NewExplorerState() *ExplorerState {
	return &ExplorerState{
		phase:    PhaseLoading,
		index:    NewCountryIndex(nil),
		viewport: DefaultViewport(),
	}
}

// OnLoadSucceeded moves Loading -> Ready with the loaded countries.
// It reports false and changes nothing when the state is not Loading.
func (s *ExplorerState) OnLoadSucceeded(countries []Country) bool {
	if s.phase != PhaseLoading {
		return false
	}
	s.index = NewCountryIndex(countries)
	s.cause = nil
	s.phase = PhaseReady
	return true
}

// OnLoadFailed moves Loading -> Failed, clearing the country list.
// It reports false and changes nothing when the state is not Loading.
func (s *ExplorerState) OnLoadFailed(err error) bool {
	if s.phase != PhaseLoading {
		return false
	}
	if err == nil {
		err = ErrNetworkFailure
	}
	s.index = NewCountryIndex(nil)
	s.cause = err
	s.phase = PhaseFailed
	return true
}

// SetSearchTerm replaces the active search term. Allowed in every phase.
func (s *ExplorerState) SetSearchTerm(term string) {
	s.searchTerm = term
}

// SelectCountry adds country to the comparison set and clears the search term.
// When the country was newly inserted the viewport focuses on it.
// It reports whether an insertion happened.
func (s *ExplorerState) SelectCountry(country Country) bool {
	inserted := s.comparison.Add(country)
	if inserted {
		s.viewport = FocusOn(country)
	}
	s.searchTerm = ""
	return inserted
}

// DeselectCountry removes the country with code from the comparison set.
// The viewport is left where it is.
func (s *ExplorerState) DeselectCountry(code string) bool {
	return s.comparison.Remove(code)
}

// Phase returns the current phase.
func (s *ExplorerState) Phase() Phase { return s.phase }

// Loading reports whether the country list is still being fetched.
func (s *ExplorerState) Loading() bool { return s.phase == PhaseLoading }

// Err returns a human-readable failure message, or "" unless Failed.
func (s *ExplorerState) Err() string {
	if s.cause == nil {
		return ""
	}
	return s.cause.Error()
}

// Cause returns the load error, or nil unless Failed.
func (s *ExplorerState) Cause() error { return s.cause }

// SearchTerm returns the active search term.
func (s *ExplorerState) SearchTerm() string { return s.searchTerm }

// Index returns the loaded country index. It is empty unless Ready.
func (s *ExplorerState) Index() *CountryIndex { return s.index }

// AllCountries returns the loaded list in load order.
func (s *ExplorerState) AllCountries() []Country { return s.index.All() }

// Results returns the countries matching the active search term.
func (s *ExplorerState) Results(opts ...SearchOptions) []Country {
	return s.index.Search(s.searchTerm, opts...)
}

// Search runs term against the loaded list without touching the active term.
func (s *ExplorerState) Search(term string, opts ...SearchOptions) []Country {
	return s.index.Search(term, opts...)
}

// Comparison returns the selected countries in insertion order.
func (s *ExplorerState) Comparison() []Country { return s.comparison.Countries() }

// IsSelected reports whether code is in the comparison set.
func (s *ExplorerState) IsSelected(code string) bool { return s.comparison.Contains(code) }

// Viewport returns the current map viewport.
func (s *ExplorerState) Viewport() Viewport { return s.viewport }
