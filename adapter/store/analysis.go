package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/camaradados/proptext"
)

func (a *Adapter) SaveSummaries(ctx context.Context, summaries ...proptext.Summary) error {
	if len(summaries) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		for batch := range slices.Chunk(summaries, batchSize) {
			if err := execQueryCheckRowsAffected(ctx, tx, insertSummariesQuery{summaries: batch}); err != nil {
				return fmt.Errorf("exec insert summaries query failed: %w", err)
			}

			ids := make([]proptext.PropositionID, 0, len(batch))
			for _, s := range batch {
				ids = append(ids, s.PropositionID)
			}
			if err := execQuery(ctx, tx, deleteByPropositionQuery{table: "proposition_entity", ids: ids}); err != nil {
				return fmt.Errorf("exec delete entities query failed: %w", err)
			}

			for _, s := range batch {
				for entities := range slices.Chunk(s.Entities, batchSize) {
					if err := execQuery(ctx, tx, insertEntitiesQuery{id: s.PropositionID, entities: entities}); err != nil {
						return fmt.Errorf("exec insert entities query failed: %w", err)
					}
				}
			}
		}
		return nil
	})
}

type insertSummariesQuery struct {
	summaries []proptext.Summary
}

func (q insertSummariesQuery) SQL() (string, []any) {
	values := make([]string, 0, len(q.summaries))
	args := make([]any, 0, len(q.summaries)*5)
	for _, s := range q.summaries {
		values = append(values, `(?, ?, ?, ?, ?)`)
		args = append(args, int64(s.PropositionID), s.TextSummary, s.MainTheme, s.Sentiment, s.Ideology)
	}

	query := `
		insert into "proposition_summary" (
			"proposition",
			"text_summary",
			"main_theme",
			"sentiment",
			"ideology"
		)
		values ` + strings.Join(values, ", ") + `
		on conflict("proposition") do update set
			"text_summary"=excluded."text_summary",
			"main_theme"=excluded."main_theme",
			"sentiment"=excluded."sentiment",
			"ideology"=excluded."ideology"
	`

	return query, args
}

type insertEntitiesQuery struct {
	id       proptext.PropositionID
	entities []proptext.Entity
}

func (q insertEntitiesQuery) SQL() (string, []any) {
	values := make([]string, 0, len(q.entities))
	args := make([]any, 0, len(q.entities)*3)
	for _, e := range q.entities {
		values = append(values, `(?, ?, ?)`)
		args = append(args, int64(q.id), e.Type, e.Value)
	}

	query := `
		insert into "proposition_entity" (
			"proposition",
			"entity_type",
			"entity"
		)
		values ` + strings.Join(values, ", ") + `
		on conflict do nothing
	`

	return query, args
}

type deleteByPropositionQuery struct {
	table string
	ids   []proptext.PropositionID
}

func (q deleteByPropositionQuery) SQL() (string, []any) {
	args := make([]any, 0, len(q.ids))
	for _, id := range q.ids {
		args = append(args, int64(id))
	}

	return fmt.Sprintf(`delete from %q where "proposition" in (%s)`, q.table, placeholders(len(args))), args
}

func (a *Adapter) FindSummary(ctx context.Context, id proptext.PropositionID) (proptext.Summary, error) {
	summary := proptext.Summary{PropositionID: id}
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			select
				s."text_summary",
				s."main_theme",
				s."sentiment",
				s."ideology"
			from "proposition_summary" s
			where s."proposition" = ?
		`, int64(id))
		if err := row.Scan(&summary.TextSummary, &summary.MainTheme, &summary.Sentiment, &summary.Ideology); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return proptext.ErrNotFound
			}
			return fmt.Errorf("scan summary failed: %w", err)
		}

		rows, err := tx.QueryContext(ctx, `
			select e."entity_type", e."entity"
			from "proposition_entity" e
			where e."proposition" = ?
			order by e.rowid
		`, int64(id))
		if err != nil {
			return fmt.Errorf("select entities query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var e proptext.Entity
			if err := rows.Scan(&e.Type, &e.Value); err != nil {
				return fmt.Errorf("scan entity failed: %w", err)
			}
			summary.Entities = append(summary.Entities, e)
		}

		return rows.Err()
	}); err != nil {
		return proptext.Summary{}, err
	}

	return summary, nil
}

func (a *Adapter) SaveTopics(ctx context.Context, topics ...proptext.TopicClassification) error {
	if len(topics) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		for batch := range slices.Chunk(topics, batchSize) {
			if err := execQueryCheckRowsAffected(ctx, tx, insertTopicsQuery{topics: batch}); err != nil {
				return fmt.Errorf("exec insert topics query failed: %w", err)
			}
		}
		return nil
	})
}

type insertTopicsQuery struct {
	topics []proptext.TopicClassification
}

func (q insertTopicsQuery) SQL() (string, []any) {
	values := make([]string, 0, len(q.topics))
	args := make([]any, 0, len(q.topics)*2)
	for _, t := range q.topics {
		values = append(values, `(?, ?)`)
		args = append(args, int64(t.PropositionID), t.Topic)
	}

	query := `
		insert into "proposition_topic" (
			"proposition",
			"topic"
		)
		values ` + strings.Join(values, ", ") + `
		on conflict("proposition") do update set
			"topic"=excluded."topic"
	`

	return query, args
}

func (a *Adapter) FindTopic(ctx context.Context, id proptext.PropositionID) (proptext.TopicClassification, error) {
	topic := proptext.TopicClassification{PropositionID: id}
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `select t."topic" from "proposition_topic" t where t."proposition" = ?`, int64(id))
		if err := row.Scan(&topic.Topic); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return proptext.ErrNotFound
			}
			return fmt.Errorf("scan topic failed: %w", err)
		}
		return nil
	}); err != nil {
		return proptext.TopicClassification{}, err
	}

	return topic, nil
}

// SaveWordClouds replaces the words of each cloud's proposition.
func (a *Adapter) SaveWordClouds(ctx context.Context, clouds ...proptext.WordCloud) error {
	if len(clouds) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		for _, c := range clouds {
			if err := execQuery(ctx, tx, deleteByPropositionQuery{
				table: "proposition_word",
				ids:   []proptext.PropositionID{c.PropositionID},
			}); err != nil {
				return fmt.Errorf("exec delete words query failed: %w", err)
			}

			for words := range slices.Chunk(c.Words, batchSize) {
				if err := execQueryCheckRowsAffected(ctx, tx, insertWordsQuery{id: c.PropositionID, words: words}); err != nil {
					return fmt.Errorf("exec insert words query failed: %w", err)
				}
			}
		}
		return nil
	})
}

type insertWordsQuery struct {
	id    proptext.PropositionID
	words []proptext.WordFrequency
}

func (q insertWordsQuery) SQL() (string, []any) {
	values := make([]string, 0, len(q.words))
	args := make([]any, 0, len(q.words)*3)
	for _, w := range q.words {
		values = append(values, `(?, ?, ?)`)
		args = append(args, int64(q.id), w.Word, w.Frequency)
	}

	query := `
		insert into "proposition_word" (
			"proposition",
			"word",
			"frequency"
		)
		values ` + strings.Join(values, ", ") + `
		on conflict("proposition", "word") do update set
			"frequency"=excluded."frequency"
	`

	return query, args
}

func (a *Adapter) FindWordCloud(ctx context.Context, id proptext.PropositionID) (proptext.WordCloud, error) {
	cloud := proptext.WordCloud{PropositionID: id}
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			select w."word", w."frequency"
			from "proposition_word" w
			where w."proposition" = ?
			order by w."frequency" desc, w."word" asc
		`, int64(id))
		if err != nil {
			return fmt.Errorf("select words query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var w proptext.WordFrequency
			if err := rows.Scan(&w.Word, &w.Frequency); err != nil {
				return fmt.Errorf("scan word failed: %w", err)
			}
			cloud.Words = append(cloud.Words, w)
		}

		return rows.Err()
	}); err != nil {
		return proptext.WordCloud{}, err
	}

	if len(cloud.Words) == 0 {
		return proptext.WordCloud{}, proptext.ErrNotFound
	}

	return cloud, nil
}
