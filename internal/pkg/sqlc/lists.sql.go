package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createList = `-- name: CreateList :exec
INSERT INTO lists (id, owner, title) VALUES ($1, $2, $3)
`

type CreateListParams struct {
	ID    int64
	Owner string
	Title string
}

func (q *Queries) CreateList(ctx context.Context, arg CreateListParams) error {
	_, err := q.db.Exec(ctx, createList, arg.ID, arg.Owner, arg.Title)
	return err
}

const getListByOwner = `-- name: GetListByOwner :one
SELECT l.id, l.owner, l.title, l.created,
    (SELECT COUNT(*) FROM recipients r WHERE r.list = l.id)::BIGINT AS recipients
FROM lists l
WHERE l.id = $1 AND l.owner = $2
`

type GetListByOwnerParams struct {
	ID    int64
	Owner string
}

type GetListByOwnerRow struct {
	ID         int64
	Owner      string
	Title      string
	Created    pgtype.Timestamptz
	Recipients int64
}

func (q *Queries) GetListByOwner(ctx context.Context, arg GetListByOwnerParams) (GetListByOwnerRow, error) {
	row := q.db.QueryRow(ctx, getListByOwner, arg.ID, arg.Owner)
	var i GetListByOwnerRow
	err := row.Scan(
		&i.ID,
		&i.Owner,
		&i.Title,
		&i.Created,
		&i.Recipients,
	)
	return i, err
}

const listListsByOwner = `-- name: ListListsByOwner :many
SELECT l.id, l.owner, l.title, l.created,
    (SELECT COUNT(*) FROM recipients r WHERE r.list = l.id)::BIGINT AS recipients
FROM lists l
WHERE l.owner = $1
ORDER BY l.created DESC, l.id DESC
`

type ListListsByOwnerRow struct {
	ID         int64
	Owner      string
	Title      string
	Created    pgtype.Timestamptz
	Recipients int64
}

func (q *Queries) ListListsByOwner(ctx context.Context, owner string) ([]ListListsByOwnerRow, error) {
	rows, err := q.db.Query(ctx, listListsByOwner, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListListsByOwnerRow
	for rows.Next() {
		var i ListListsByOwnerRow
		if err := rows.Scan(
			&i.ID,
			&i.Owner,
			&i.Title,
			&i.Created,
			&i.Recipients,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
