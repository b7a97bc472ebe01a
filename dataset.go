package proptext

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Dataset is the content of a Chamber of Deputies open data export.
type Dataset struct {
	Authors      []Author
	Propositions []*Proposition
}

type datasetFile struct {
	Dados       *[]datasetProposition `json:"dados"`
	Proposicoes *[]datasetProposition `json:"proposicoes"`
}

type datasetProposition struct {
	ID               int64           `json:"id"`
	URLInteiroTeor   string          `json:"urlInteiroTeor"`
	DescricaoTipo    string          `json:"descricaoTipo"`
	DataApresentacao string          `json:"dataApresentacao"`
	Autores          []datasetAuthor `json:"autores"`
}

type datasetAuthor struct {
	IDDeputadoAutor   int64  `json:"idDeputadoAutor"`
	NomeAutor         string `json:"nomeAutor"`
	SiglaPartidoAutor string `json:"siglaPartidoAutor"`
	SiglaUFAutor      string `json:"siglaUFAutor"`
}

var submissionLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseSubmissionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range submissionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// LoadDataset parses a propositions export. Both the current "dados" and
// the legacy "proposicoes" top level keys are accepted. Authors are
// deduplicated by id, the first occurrence wins; authors and propositions
// without an id are skipped.
func LoadDataset(r io.Reader) (Dataset, error) {
	var f datasetFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	var entries []datasetProposition
	switch {
	case f.Dados != nil:
		entries = *f.Dados
	case f.Proposicoes != nil:
		entries = *f.Proposicoes
	default:
		return Dataset{}, errors.New(`dataset has neither a "dados" nor a "proposicoes" key`)
	}

	var (
		ds   Dataset
		seen = map[AuthorID]struct{}{}
	)
	for _, e := range entries {
		if e.ID == 0 {
			continue
		}

		submittedAt, err := parseSubmissionDate(e.DataApresentacao)
		if err != nil {
			return Dataset{}, fmt.Errorf("proposition %d: %w", e.ID, err)
		}

		aProposition := &Proposition{
			ID:          PropositionID(e.ID),
			URL:         strings.TrimSpace(e.URLInteiroTeor),
			Type:        e.DescricaoTipo,
			SubmittedAt: submittedAt,
			Status:      TextStatusPending,
		}

		propositionAuthors := map[AuthorID]struct{}{}
		for _, a := range e.Autores {
			if a.IDDeputadoAutor == 0 {
				continue
			}
			id := AuthorID(a.IDDeputadoAutor)

			if _, ok := propositionAuthors[id]; !ok {
				propositionAuthors[id] = struct{}{}
				aProposition.AuthorIDs = append(aProposition.AuthorIDs, id)
			}

			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ds.Authors = append(ds.Authors, Author{
					ID:    id,
					Name:  a.NomeAutor,
					Party: a.SiglaPartidoAutor,
					State: a.SiglaUFAutor,
				})
			}
		}

		ds.Propositions = append(ds.Propositions, aProposition)
	}

	return ds, nil
}

type ImportStats struct {
	Authors      int
	Propositions int
	New          int
}

const importBatchSize = 500

// ImportDataset saves the authors and propositions of ds in one
// transaction. Propositions that were imported before keep their extracted
// text and status.
func (s *Service) ImportDataset(ctx context.Context, ds Dataset) (ImportStats, error) {
	stats := ImportStats{
		Authors:      len(ds.Authors),
		Propositions: len(ds.Propositions),
	}

	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		if err := s.store.SaveAuthors(ctx, ds.Authors...); err != nil {
			return fmt.Errorf("save authors: %w", err)
		}

		now := s.now()
		for batch := range slices.Chunk(ds.Propositions, importBatchSize) {
			ids := make([]PropositionID, 0, len(batch))
			for _, p := range batch {
				ids = append(ids, p.ID)
			}

			existing, err := s.store.ListPropositions(ctx, PropositionFilter{IDs: ids}, SortParams{})
			if err != nil {
				return fmt.Errorf("list propositions: %w", err)
			}
			byID := make(map[PropositionID]*Proposition, len(existing))
			for _, p := range existing {
				byID[p.ID] = p
			}

			for _, p := range batch {
				if old, ok := byID[p.ID]; ok {
					p.Text = old.Text
					p.Status = old.Status
					p.StatusMessage = old.StatusMessage
					p.Updated = old.Updated
					continue
				}
				p.Status = TextStatusPending
				p.Updated = now
				stats.New++
			}

			if err := s.store.SavePropositions(ctx, batch...); err != nil {
				return fmt.Errorf("save propositions: %w", err)
			}
		}

		return nil
	}); err != nil {
		return ImportStats{}, err
	}

	s.logger.Info("imported dataset",
		zap.Int("authors", stats.Authors),
		zap.Int("propositions", stats.Propositions),
		zap.Int("new", stats.New),
	)

	return stats, nil
}
