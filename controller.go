package countryexplorer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrAlreadyLoaded is returned by a second Load on the same session.
	ErrAlreadyLoaded = errors.New("country list already requested")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("controller closed")
)

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// View is a read-only projection of an ExplorerState.
type View struct {
	Phase      Phase
	Error      string // human-readable failure, "" unless Failed
	Cause      error
	SearchTerm string
	Results    []Country
	Comparison []Country
	Viewport   Viewport
}

// Controller owns one ExplorerState and applies user actions to it one at a time.
// Safe for concurrent use.
type Controller struct {
	source DataSource
	logger *slog.Logger

	mu        sync.Mutex
	state     *ExplorerState
	session   uint64
	requested bool
	closed    bool
}

// NewController creates a Controller in the Loading phase. Nothing is fetched
// until Load is called.
func NewController(source DataSource, opts ...ControllerOption) *Controller {
	c := &Controller{
		source: source,
		logger: slog.Default(),
		state:  NewExplorerState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load issues the single fetch for the current session and applies the result.
//
// The fetch runs without holding the controller lock. If Close or Reload
// happens before it resolves, the result is discarded and ErrClosed is
// returned. A second Load on the same session returns ErrAlreadyLoaded. A
// failed fetch is not an error of Load; it moves the state to Failed and the
// cause is available from the state.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.requested {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.requested = true
	session := c.session
	c.mu.Unlock()

	c.logger.Debug("fetching country list")
	countries, err := c.source.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.session != session {
		c.logger.Debug("discarding country list result for released session")
		return ErrClosed
	}

	if err != nil {
		c.state.OnLoadFailed(err)
		c.logger.Warn("country list load failed", "error", err)
		return nil
	}
	c.state.OnLoadSucceeded(countries)
	if dropped := c.state.Index().Dropped(); dropped > 0 {
		c.logger.Warn("dropped duplicate country records", "dropped", dropped)
	}
	c.logger.Info("country list loaded", "countries", c.state.Index().Len())
	return nil
}

// Reload restarts the state machine with a fresh state and loads once.
// The comparison set, search term and viewport are reset. A fetch still in
// flight from the previous session is discarded when it resolves.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.session++
	c.state = NewExplorerState()
	c.requested = false
	c.mu.Unlock()
	return c.Load(ctx)
}

// Close releases the controller. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// SetSearchTerm replaces the active search term.
func (c *Controller) SetSearchTerm(term string) error {
	return c.apply(func(s *ExplorerState) {
		s.SetSearchTerm(term)
	})
}

// Select adds the country with code from the loaded list to the comparison set.
// It reports false when the code is unknown or already selected.
func (c *Controller) Select(code string) (bool, error) {
	var inserted bool
	err := c.apply(func(s *ExplorerState) {
		country, ok := s.Index().Lookup(code)
		if !ok {
			return
		}
		inserted = s.SelectCountry(country)
	})
	return inserted, err
}

// SelectCountry adds country to the comparison set.
func (c *Controller) SelectCountry(country Country) (bool, error) {
	var inserted bool
	err := c.apply(func(s *ExplorerState) {
		inserted = s.SelectCountry(country)
	})
	return inserted, err
}

// Deselect removes the country with code from the comparison set. Codes
// resolve case-insensitively against the loaded list, as in Select.
func (c *Controller) Deselect(code string) (bool, error) {
	var removed bool
	err := c.apply(func(s *ExplorerState) {
		if removed = s.DeselectCountry(code); removed {
			return
		}
		if country, ok := s.Index().Lookup(code); ok {
			removed = s.DeselectCountry(country.Code)
		}
	})
	return removed, err
}

// Nearest returns the loaded country closest to the point.
func (c *Controller) Nearest(lat, lng float64) (Country, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Index().Nearest(lat, lng)
}

// Snapshot returns the current view. Results use opts for the active term.
func (c *Controller) Snapshot(opts ...SearchOptions) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	return View{
		Phase:      s.Phase(),
		Error:      s.Err(),
		Cause:      s.Cause(),
		SearchTerm: s.SearchTerm(),
		Results:    s.Results(opts...),
		Comparison: s.Comparison(),
		Viewport:   s.Viewport(),
	}
}

func (c *Controller) apply(fn func(*ExplorerState)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	fn(c.state)
	return nil
}
