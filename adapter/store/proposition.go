package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/camaradados/proptext"
)

var propositionSortableBy = []string{`p."id"`, `p."submitted_at"`, `p."updated"`}

func (a *Adapter) SavePropositions(ctx context.Context, propositions ...*proptext.Proposition) error {
	if len(propositions) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		for batch := range slices.Chunk(propositions, batchSize) {
			if err := execQueryCheckRowsAffected(ctx, tx, insertPropositionsQuery{propositions: batch}); err != nil {
				return fmt.Errorf("exec insert propositions query failed: %w", err)
			}

			if err := execQuery(ctx, tx, deletePropositionAuthorsQuery{propositions: batch}); err != nil {
				return fmt.Errorf("exec delete proposition authors query failed: %w", err)
			}

			q := insertPropositionAuthorsQuery{propositions: batch}
			if query, _ := q.SQL(); query == "" {
				continue
			}
			if err := execQuery(ctx, tx, q); err != nil {
				return fmt.Errorf("exec insert proposition authors query failed: %w", err)
			}
		}
		return nil
	})
}

type insertPropositionsQuery struct {
	propositions []*proptext.Proposition
}

func (q insertPropositionsQuery) SQL() (string, []any) {
	if len(q.propositions) == 0 {
		return "", nil
	}

	const row = `(?, ?, ?, ?, ?, (select "id" from "text_status" ts where ts."name" = ?), ?, ?)`

	query := `
		with cte as (
			values ` + row
	args := make([]any, 0, len(q.propositions)*8)
	for i, p := range q.propositions {
		if i > 0 {
			query += `, ` + row
		}
		args = append(
			args,
			int64(p.ID),
			p.URL,
			p.Type,
			sql.NullTime{Time: p.SubmittedAt, Valid: !p.SubmittedAt.IsZero()},
			p.Text,
			p.Status,
			nullString(p.StatusMessage),
			p.Updated,
		)
	}
	query += `
		)
		insert into "proposition" (
			"id",
			"url",
			"type",
			"submitted_at",
			"text",
			"status",
			"status_message",
			"updated"
		)
		select *
		from cte
		where 1
		on conflict("id") do update set
			"url"=excluded."url",
			"type"=excluded."type",
			"submitted_at"=excluded."submitted_at",
			"text"=excluded."text",
			"status"=excluded."status",
			"status_message"=excluded."status_message",
			"updated"=excluded."updated"
	`

	return query, args
}

type deletePropositionAuthorsQuery struct {
	propositions []*proptext.Proposition
}

func (q deletePropositionAuthorsQuery) SQL() (string, []any) {
	args := make([]any, 0, len(q.propositions))
	for _, p := range q.propositions {
		args = append(args, int64(p.ID))
	}

	return `delete from "proposition_author" where "proposition" in (` + placeholders(len(args)) + `)`, args
}

type insertPropositionAuthorsQuery struct {
	propositions []*proptext.Proposition
}

func (q insertPropositionAuthorsQuery) SQL() (string, []any) {
	var (
		values []string
		args   []any
	)
	for _, p := range q.propositions {
		for position, authorID := range p.AuthorIDs {
			values = append(values, `(?, ?, ?)`)
			args = append(args, int64(p.ID), int64(authorID), position)
		}
	}
	if len(values) == 0 {
		return "", nil
	}

	query := `
		insert into "proposition_author" (
			"proposition",
			"author",
			"position"
		)
		values ` + strings.Join(values, ", ") + `
		on conflict do nothing
	`

	return query, args
}

func (a *Adapter) ListPropositions(ctx context.Context, filter proptext.PropositionFilter, params proptext.SortParams) ([]*proptext.Proposition, error) {
	if !params.Valid(propositionSortableBy) {
		return nil, fmt.Errorf("invalid sort params")
	}

	var propositions []*proptext.Proposition
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		propositions, err = a.selectPropositions(ctx, tx, selectPropositionsQuery{
			filter: filter,
			params: params,
		})
		if err != nil {
			return err
		}

		return a.loadPropositionAuthors(ctx, tx, propositions)
	}); err != nil {
		return nil, err
	}

	return propositions, nil
}

func (a *Adapter) FindProposition(ctx context.Context, id proptext.PropositionID) (*proptext.Proposition, error) {
	propositions, err := a.ListPropositions(ctx, proptext.PropositionFilter{
		IDs: []proptext.PropositionID{id},
	}, proptext.SortParams{})
	if err != nil {
		return nil, err
	}
	if len(propositions) == 0 {
		return nil, proptext.ErrNotFound
	}
	return propositions[0], nil
}

func (a *Adapter) selectPropositions(ctx context.Context, tx *sql.Tx, q selectPropositionsQuery) ([]*proptext.Proposition, error) {
	query, args := q.SQL()

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select propositions query failed: %w", err)
	}
	defer rows.Close()

	var propositions []*proptext.Proposition
	for rows.Next() {
		p, err := scanProposition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proposition failed: %w", err)
		}
		propositions = append(propositions, p)
	}

	return propositions, rows.Err()
}

func (a *Adapter) loadPropositionAuthors(ctx context.Context, tx *sql.Tx, propositions []*proptext.Proposition) error {
	byID := make(map[proptext.PropositionID]*proptext.Proposition, len(propositions))
	for _, p := range propositions {
		byID[p.ID] = p
	}

	for batch := range slices.Chunk(propositions, batchSize) {
		args := make([]any, 0, len(batch))
		for _, p := range batch {
			args = append(args, int64(p.ID))
		}

		if err := func() error {
			rows, err := tx.QueryContext(ctx, `
				select "proposition", "author"
				from "proposition_author"
				where "proposition" in (`+placeholders(len(args))+`)
				order by "proposition", "position"
			`, args...)
			if err != nil {
				return fmt.Errorf("select proposition authors query failed: %w", err)
			}
			defer rows.Close()

			for rows.Next() {
				var propositionID, authorID int64
				if err := rows.Scan(&propositionID, &authorID); err != nil {
					return fmt.Errorf("scan proposition author failed: %w", err)
				}
				p := byID[proptext.PropositionID(propositionID)]
				p.AuthorIDs = append(p.AuthorIDs, proptext.AuthorID(authorID))
			}

			return rows.Err()
		}(); err != nil {
			return err
		}
	}

	return nil
}

type selectPropositionsQuery struct {
	filter proptext.PropositionFilter
	params proptext.SortParams
}

func (q selectPropositionsQuery) SQL() (string, []any) {
	query := `
		select
			p."id",
			p."url",
			p."type",
			p."submitted_at",
			p."text",
			ts."name" as "status",
			p."status_message",
			p."updated"
		from "proposition" p
		inner join "text_status" ts on p."status" = ts."id"
	`

	where, args := propositionFilterClauses(q.filter)
	if where != "" {
		query += " where " + where
	}

	return query + q.params.SQL(), args
}

func propositionFilterClauses(filter proptext.PropositionFilter) (string, []any) {
	var (
		clauses = []string{}
		args    = []any{}
	)

	if filter.Status != "" {
		clauses = append(clauses, `ts."name" = ?`)
		args = append(args, filter.Status)
	}

	if len(filter.IDs) > 0 {
		clauses = append(clauses, `p."id" in (`+placeholders(len(filter.IDs))+`)`)
		for _, id := range filter.IDs {
			args = append(args, int64(id))
		}
	}

	if filter.WithoutSummary {
		clauses = append(clauses, `not exists (select 1 from "proposition_summary" s where s."proposition" = p."id")`)
	}

	if filter.WithoutTopic {
		clauses = append(clauses, `not exists (select 1 from "proposition_topic" t where t."proposition" = p."id")`)
	}

	if filter.WithoutWordCloud {
		clauses = append(clauses, `not exists (select 1 from "proposition_word" w where w."proposition" = p."id")`)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return strings.Join(clauses, " and "), args
}

func scanProposition(row Scannable) (*proptext.Proposition, error) {
	var (
		p             proptext.Proposition
		id            int64
		submittedAt   sql.NullTime
		statusMessage sql.NullString
		updated       time.Time
	)
	if err := row.Scan(
		&id,
		&p.URL,
		&p.Type,
		&submittedAt,
		&p.Text,
		&p.Status,
		&statusMessage,
		&updated,
	); err != nil {
		return nil, err
	}

	p.ID = proptext.PropositionID(id)
	if submittedAt.Valid {
		p.SubmittedAt = submittedAt.Time.UTC()
	}
	p.StatusMessage = statusMessage.String
	p.Updated = updated.UTC()

	return &p, nil
}
