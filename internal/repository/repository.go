// Package repository handles all interactions with the database.
//
// Every method runs exactly one SQL statement. Statements that mutate a
// child row are filtered by its parent id too, so a row that moved or
// vanished since the caller checked it yields no row rather than touching
// someone else's data. A missing row is reported as pgx.ErrNoRows wrapped
// with "table:<name>:" so the error layer can name the resource.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, table, stmt string, args pgx.NamedArgs) (*T, error) {
	rows, err := pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, err
	}

	row, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", table, err)
	}

	return row, nil
}

func queryAll[T any](ctx context.Context, pool *pgxpool.Pool, stmt string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, stmt, args)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
