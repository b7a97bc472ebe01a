package proptext

import (
	"context"
	"database/sql"
	"time"

	"github.com/camaradados/proptext/cleaning"
)

// DocumentProvider fetches and decodes the full text document behind a URL.
// Implementations apply their own timeouts and size limits.
type DocumentProvider interface {
	Fetch(ctx context.Context, url string) (cleaning.Document, error)
}

// CachedText is a cleaning outcome remembered for a document URL. Config is
// the fingerprint of the cleaning configuration that produced it.
type CachedText struct {
	Status  TextStatus
	Text    string
	Config  string
	Cleaned time.Time
}

// TextCache remembers cleaning outcomes so that the same document is not
// downloaded twice.
type TextCache interface {
	Get(ctx context.Context, url string) (CachedText, bool, error)
	Set(ctx context.Context, url string, text CachedText) error
}

// Analyzer uses a language model to summarize and classify cleaned texts.
type Analyzer interface {
	Summarize(ctx context.Context, text string) (Summary, error)
	ClassifyTopic(ctx context.Context, text string, topics []string) (string, error)
}

type Store interface {
	Transactional
	AuthorStore
	PropositionStore
	AnalysisStore
}

type Transactional interface {
	Transactional(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error
}

type AuthorStore interface {
	SaveAuthors(ctx context.Context, authors ...Author) error
	ListAuthors(ctx context.Context, params SortParams) ([]Author, error)
}

type PropositionStore interface {
	SavePropositions(ctx context.Context, propositions ...*Proposition) error
	ListPropositions(ctx context.Context, filter PropositionFilter, params SortParams) ([]*Proposition, error)
	FindProposition(ctx context.Context, id PropositionID) (*Proposition, error)
}

type AnalysisStore interface {
	SaveSummaries(ctx context.Context, summaries ...Summary) error
	FindSummary(ctx context.Context, id PropositionID) (Summary, error)
	SaveTopics(ctx context.Context, topics ...TopicClassification) error
	FindTopic(ctx context.Context, id PropositionID) (TopicClassification, error)
	SaveWordClouds(ctx context.Context, clouds ...WordCloud) error
	FindWordCloud(ctx context.Context, id PropositionID) (WordCloud, error)
}
