package proptext

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/camaradados/proptext/cleaning"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrNoAnalyzer = errors.New("no analyzer configured")
)

const (
	defaultExtractionWorkers = 4
	defaultAnalysisWorkers   = 10
	defaultFetchTimeout      = 50 * time.Second
)

type clock func() time.Time

// Service imports propositions, extracts and cleans their full texts and
// runs the downstream analyses over the cleaned text.
type Service struct {
	provider DocumentProvider
	cleaner  *cleaning.Cleaner
	store    Store
	cache    TextCache
	analyzer Analyzer
	logger   *zap.Logger
	now      clock

	// cleaningConfig is the cleaner's fingerprint; cached texts produced
	// under another one are ignored.
	cleaningConfig string

	extractionWorkers int
	analysisWorkers   int
	fetchTimeout      time.Duration
}

type Option func(*Service)

func WithTextCache(cache TextCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithAnalyzer(analyzer Analyzer) Option {
	return func(s *Service) {
		s.analyzer = analyzer
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithExtractionWorkers bounds how many documents are fetched and cleaned
// at the same time.
func WithExtractionWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.extractionWorkers = n
		}
	}
}

// WithAnalysisWorkers bounds how many analyzer calls run at the same time.
func WithAnalysisWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.analysisWorkers = n
		}
	}
}

// WithFetchTimeout limits how long a single document fetch may take.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

func New(provider DocumentProvider, cleaner *cleaning.Cleaner, storeAdapter Store, options ...Option) *Service {
	s := &Service{
		provider:          provider,
		cleaner:           cleaner,
		cleaningConfig:    cleaner.Config().Fingerprint(),
		store:             storeAdapter,
		logger:            zap.NewNop(),
		now:               func() time.Time { return time.Now().UTC() },
		extractionWorkers: defaultExtractionWorkers,
		analysisWorkers:   defaultAnalysisWorkers,
		fetchTimeout:      defaultFetchTimeout,
	}

	for _, o := range options {
		o(s)
	}

	return s
}
