package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/camaradados/proptext"
)

var authorSortableBy = []string{`a."id"`, `a."name"`}

func (a *Adapter) SaveAuthors(ctx context.Context, authors ...proptext.Author) error {
	if len(authors) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		for batch := range slices.Chunk(authors, batchSize) {
			if err := execQueryCheckRowsAffected(ctx, tx, insertAuthorsQuery{authors: batch}); err != nil {
				return fmt.Errorf("exec insert authors query failed: %w", err)
			}
		}
		return nil
	})
}

type insertAuthorsQuery struct {
	authors []proptext.Author
}

func (q insertAuthorsQuery) SQL() (string, []any) {
	if len(q.authors) == 0 {
		return "", nil
	}

	query := `
		with cte as (
			values (?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.authors)*4)
	for i, anAuthor := range q.authors {
		if i > 0 {
			query += `, (?, ?, ?, ?)`
		}
		args = append(args, int64(anAuthor.ID), anAuthor.Name, anAuthor.Party, anAuthor.State)
	}
	query += `
		)
		insert into "author" (
			"id",
			"name",
			"party",
			"state"
		)
		select *
		from cte
		where 1
		on conflict("id") do update set
			"name"=excluded."name",
			"party"=excluded."party",
			"state"=excluded."state"
	`

	return query, args
}

func (a *Adapter) ListAuthors(ctx context.Context, params proptext.SortParams) ([]proptext.Author, error) {
	if !params.Valid(authorSortableBy) {
		return nil, fmt.Errorf("invalid sort params")
	}

	var authors []proptext.Author
	if err := a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			select
				a."id",
				a."name",
				a."party",
				a."state"
			from "author" a
		` + params.SQL()

		rows, err := tx.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("select authors query failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				anAuthor proptext.Author
				id       int64
			)
			if err := rows.Scan(&id, &anAuthor.Name, &anAuthor.Party, &anAuthor.State); err != nil {
				return fmt.Errorf("scan author failed: %w", err)
			}
			anAuthor.ID = proptext.AuthorID(id)
			authors = append(authors, anAuthor)
		}

		return rows.Err()
	}); err != nil {
		return nil, err
	}

	return authors, nil
}
