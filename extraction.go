package proptext

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/camaradados/proptext/cleaning"
)

const missingURLMessage = "proposition has no full text url"

type ExtractionStats struct {
	Extracted int
	NoText    int
	Failed    int
	Cached    int
}

func (s ExtractionStats) Total() int {
	return s.Extracted + s.NoText + s.Failed
}

// CleanDocument runs the cleaning heuristic over an already decoded document.
func (s *Service) CleanDocument(doc cleaning.Document) (string, error) {
	return s.cleaner.Clean(doc)
}

// ExtractTexts fetches and cleans the full text of up to limit pending
// propositions. A document that cannot be fetched or decoded marks its
// proposition as failed without failing the batch. Outcomes are saved in a
// single transaction once every document has been processed.
func (s *Service) ExtractTexts(ctx context.Context, limit int) (ExtractionStats, error) {
	propositions, err := s.listPropositions(ctx, PropositionFilter{Status: TextStatusPending}, limit)
	if err != nil {
		return ExtractionStats{}, err
	}

	if len(propositions) == 0 {
		return ExtractionStats{}, nil
	}

	logger := s.logger.With(zap.Stringer("run", uuid.Must(uuid.NewV4())))
	logger.Info("extracting texts", zap.Int("propositions", len(propositions)), zap.Int("workers", s.extractionWorkers))

	var (
		cached = make([]bool, len(propositions))
		g      errgroup.Group
	)
	g.SetLimit(s.extractionWorkers)
	for i, p := range propositions {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			cached[i] = s.extractText(ctx, logger, p)
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()

	var (
		stats     ExtractionStats
		completed = make([]*Proposition, 0, len(propositions))
	)
	for i, p := range propositions {
		switch p.Status {
		case TextStatusExtracted:
			stats.Extracted++
		case TextStatusNoText:
			stats.NoText++
		case TextStatusFailed:
			stats.Failed++
		default:
			continue
		}
		if cached[i] {
			stats.Cached++
		}
		completed = append(completed, p)
	}

	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		return s.store.SavePropositions(ctx, completed...)
	}); err != nil {
		return stats, fmt.Errorf("save propositions: %w", err)
	}

	logger.Info("extracted texts",
		zap.Int("extracted", stats.Extracted),
		zap.Int("no_text", stats.NoText),
		zap.Int("failed", stats.Failed),
		zap.Int("cached", stats.Cached),
	)

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}

// extractText completes p with the outcome of fetching and cleaning its
// document and reports whether the outcome came from the cache.
func (s *Service) extractText(ctx context.Context, logger *zap.Logger, p *Proposition) bool {
	logger = logger.With(zap.Int64("proposition", int64(p.ID)))

	complete := func(status TextStatus, text, message string) {
		if err := p.CompleteWithStatus(status, text, message, s.now()); err != nil {
			logger.Error("change status", zap.Error(err))
		}
	}

	if p.URL == "" {
		complete(TextStatusNoText, "", missingURLMessage)
		return false
	}

	if s.cache != nil {
		entry, ok, err := s.cache.Get(ctx, p.URL)
		if err != nil {
			logger.Warn("text cache lookup failed", zap.Error(err))
		} else if ok && entry.Config == s.cleaningConfig {
			complete(entry.Status, entry.Text, "")
			return true
		} else if ok {
			logger.Debug("cached text cleaned with another configuration", zap.String("config", entry.Config))
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	doc, err := s.provider.Fetch(fetchCtx, p.URL)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled runs leave the proposition pending.
			return false
		}
		logger.Warn("fetch document failed", zap.String("url", p.URL), zap.Error(err))
		complete(TextStatusFailed, "", err.Error())
		return false
	}

	text, err := s.cleaner.Clean(doc)
	switch {
	case errors.Is(err, cleaning.ErrNoText):
		complete(TextStatusNoText, "", err.Error())
	case err != nil:
		complete(TextStatusFailed, "", err.Error())
		return false
	default:
		complete(TextStatusExtracted, text, "")
	}

	logger.Debug("cleaned document", zap.Int("pages", len(doc.Pages)), zap.String("status", string(p.Status)))

	if s.cache != nil {
		if err := s.cache.Set(ctx, p.URL, CachedText{
			Status:  p.Status,
			Text:    p.Text,
			Config:  s.cleaningConfig,
			Cleaned: s.now(),
		}); err != nil {
			logger.Warn("text cache store failed", zap.Error(err))
		}
	}

	return false
}

// RequeueFailed puts every proposition whose extraction failed back in the
// extraction queue and returns how many were requeued.
func (s *Service) RequeueFailed(ctx context.Context) (int, error) {
	var total int
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		propositions, err := s.store.ListPropositions(ctx, PropositionFilter{
			Status: TextStatusFailed,
		}, SortParams{})
		if err != nil {
			return fmt.Errorf("list propositions: %w", err)
		}

		now := s.now()
		for _, p := range propositions {
			p.Reset(now)
		}
		total = len(propositions)

		return s.store.SavePropositions(ctx, propositions...)
	}); err != nil {
		return 0, err
	}

	return total, nil
}
