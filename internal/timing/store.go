package timing

import (
	"sync"

	"github.com/patchtools/patchmon/internal/logger"
)

// Store holds the last successfully parsed timing series per method.
// A failed re-read keeps the previous series (stale but valid), so a
// corrupted log degrades the display to old data rather than no data.
type Store struct {
	resultsDir string
	methods    []string
	log        logger.Logger

	mu     sync.RWMutex
	series map[string][]float64
}

// NewStore creates a store tracking the given methods, in priority order.
func NewStore(resultsDir string, methods []string) *Store {
	return &Store{
		resultsDir: resultsDir,
		methods:    append([]string(nil), methods...),
		log:        logger.NewEnvLogger("[timing]"),
		series:     make(map[string][]float64),
	}
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(l logger.Logger) {
	s.log = l
}

// Methods returns the tracked method names in priority order.
func (s *Store) Methods() []string {
	return append([]string(nil), s.methods...)
}

// Refresh re-reads every method's timing log. Each successfully parsed
// file fully replaces that method's series; parse failures are logged and
// leave the previous series in place. Missing files leave the method
// empty ("no data yet").
func (s *Store) Refresh() {
	for _, method := range s.methods {
		path := LogPath(s.resultsDir, method)
		series, err := ReadSeries(path)
		if err != nil {
			s.log.Warn("keeping previous series for %s: %v", method, err)
			continue
		}
		if series == nil {
			continue
		}

		s.mu.Lock()
		s.series[method] = series
		s.mu.Unlock()
	}
}

// Get returns the current series for a method, or nil if none was ever read.
func (s *Store) Get(method string) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.series[method]...)
}

// Snapshot returns a deep copy of every method's series, keyed by method.
// Methods with no data are omitted.
func (s *Store) Snapshot() map[string][]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(map[string][]float64, len(s.series))
	for method, series := range s.series {
		if len(series) == 0 {
			continue
		}
		snap[method] = append([]float64(nil), series...)
	}
	return snap
}
