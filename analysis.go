package proptext

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Summarize asks the analyzer for the summary, entities, sentiment and
// ideology of up to limit extracted propositions without a summary.
// Propositions the analyzer fails on are logged and skipped. It returns how
// many summaries were saved.
func (s *Service) Summarize(ctx context.Context, limit int) (int, error) {
	if s.analyzer == nil {
		return 0, ErrNoAnalyzer
	}

	propositions, err := s.listPropositions(ctx, PropositionFilter{
		Status:         TextStatusExtracted,
		WithoutSummary: true,
	}, limit)
	if err != nil {
		return 0, err
	}

	var (
		results = make([]*Summary, len(propositions))
		g       errgroup.Group
	)
	g.SetLimit(s.analysisWorkers)
	for i, p := range propositions {
		g.Go(func() error {
			logger := s.logger.With(zap.Int64("proposition", int64(p.ID)))

			summary, err := s.analyzer.Summarize(ctx, p.Text)
			if err != nil {
				logger.Warn("summarize failed", zap.Error(err))
				return nil
			}
			summary.PropositionID = p.ID
			if err := summary.Validate(); err != nil {
				logger.Warn("discarding summary", zap.Error(err))
				return nil
			}

			results[i] = &summary
			return nil
		})
	}
	_ = g.Wait()

	summaries := make([]Summary, 0, len(results))
	for _, r := range results {
		if r != nil {
			summaries = append(summaries, *r)
		}
	}

	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		return s.store.SaveSummaries(ctx, summaries...)
	}); err != nil {
		return 0, fmt.Errorf("save summaries: %w", err)
	}

	s.logger.Info("summarized propositions",
		zap.Int("saved", len(summaries)),
		zap.Int("skipped", len(propositions)-len(summaries)),
	)

	return len(summaries), nil
}

// ClassifyTopics assigns one of Topics to up to limit extracted propositions
// without a topic. The summary is classified when there is one, otherwise
// the full text. It returns how many classifications were saved.
func (s *Service) ClassifyTopics(ctx context.Context, limit int) (int, error) {
	if s.analyzer == nil {
		return 0, ErrNoAnalyzer
	}

	propositions, err := s.listPropositions(ctx, PropositionFilter{
		Status:       TextStatusExtracted,
		WithoutTopic: true,
	}, limit)
	if err != nil {
		return 0, err
	}

	texts := make([]string, len(propositions))
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		for i, p := range propositions {
			texts[i] = p.Text

			summary, err := s.store.FindSummary(ctx, p.ID)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("find summary: %w", err)
			}
			texts[i] = summary.TextSummary
		}
		return nil
	}); err != nil {
		return 0, err
	}

	var (
		results = make([]*TopicClassification, len(propositions))
		g       errgroup.Group
	)
	g.SetLimit(s.analysisWorkers)
	for i, p := range propositions {
		g.Go(func() error {
			logger := s.logger.With(zap.Int64("proposition", int64(p.ID)))

			topic, err := s.analyzer.ClassifyTopic(ctx, texts[i], Topics)
			if err != nil {
				logger.Warn("classify topic failed", zap.Error(err))
				return nil
			}
			classification := TopicClassification{PropositionID: p.ID, Topic: topic}
			if err := classification.Validate(); err != nil {
				logger.Warn("discarding topic", zap.Error(err))
				return nil
			}

			logger.Debug("classified proposition", zap.String("topic", topic))
			results[i] = &classification
			return nil
		})
	}
	_ = g.Wait()

	topics := make([]TopicClassification, 0, len(results))
	for _, r := range results {
		if r != nil {
			topics = append(topics, *r)
		}
	}

	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		return s.store.SaveTopics(ctx, topics...)
	}); err != nil {
		return 0, fmt.Errorf("save topics: %w", err)
	}

	s.logger.Info("classified propositions",
		zap.Int("saved", len(topics)),
		zap.Int("skipped", len(propositions)-len(topics)),
	)

	return len(topics), nil
}

func (s *Service) listPropositions(ctx context.Context, filter PropositionFilter, limit int) ([]*Proposition, error) {
	var propositions []*Proposition
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		var err error
		propositions, err = s.store.ListPropositions(ctx, filter, SortParams{
			Limit: limit,
			By:    `p."id"`,
			Order: SortOrderAsc,
		})
		if err != nil {
			return fmt.Errorf("list propositions: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return propositions, nil
}
