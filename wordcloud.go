package proptext

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordFrequencies counts the words of text, ignoring punctuation and
// Portuguese stopwords. The result is ordered by descending frequency and
// then alphabetically.
func WordFrequencies(text string) []WordFrequency {
	text = cases.Lower(language.BrazilianPortuguese).String(text)
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	counts := map[string]int{}
	for _, word := range strings.Fields(text) {
		if _, ok := stopwords[word]; ok {
			continue
		}
		counts[word]++
	}

	words := make([]WordFrequency, 0, len(counts))
	for word, n := range counts {
		words = append(words, WordFrequency{Word: word, Frequency: n})
	}
	slices.SortFunc(words, func(a, b WordFrequency) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})

	return words
}

// GenerateWordClouds builds the word cloud of up to limit extracted
// propositions that do not have one yet and returns how many were saved.
func (s *Service) GenerateWordClouds(ctx context.Context, limit int) (int, error) {
	var total int
	if err := s.store.Transactional(ctx, &sql.TxOptions{}, func(ctx context.Context) error {
		propositions, err := s.store.ListPropositions(ctx, PropositionFilter{
			Status:           TextStatusExtracted,
			WithoutWordCloud: true,
		}, SortParams{
			Limit: limit,
			By:    `p."id"`,
			Order: SortOrderAsc,
		})
		if err != nil {
			return fmt.Errorf("list propositions: %w", err)
		}

		clouds := make([]WordCloud, 0, len(propositions))
		for _, p := range propositions {
			words := WordFrequencies(p.Text)
			if len(words) == 0 {
				s.logger.Debug("empty word cloud", zap.Int64("proposition", int64(p.ID)))
				continue
			}
			clouds = append(clouds, WordCloud{PropositionID: p.ID, Words: words})
		}

		if err := s.store.SaveWordClouds(ctx, clouds...); err != nil {
			return fmt.Errorf("save word clouds: %w", err)
		}
		total = len(clouds)

		return nil
	}); err != nil {
		return 0, err
	}

	s.logger.Info("generated word clouds", zap.Int("total", total))

	return total, nil
}
