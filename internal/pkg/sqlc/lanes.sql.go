package sqlc

import (
	"context"
)

const createLane = `-- name: CreateLane :exec
INSERT INTO lanes (id, owner, title) VALUES ($1, $2, $3)
`

type CreateLaneParams struct {
	ID    int64
	Owner string
	Title string
}

func (q *Queries) CreateLane(ctx context.Context, arg CreateLaneParams) error {
	_, err := q.db.Exec(ctx, createLane, arg.ID, arg.Owner, arg.Title)
	return err
}

const getLaneByOwner = `-- name: GetLaneByOwner :one
SELECT id, owner, title, created
FROM lanes
WHERE id = $1 AND owner = $2
`

type GetLaneByOwnerParams struct {
	ID    int64
	Owner string
}

func (q *Queries) GetLaneByOwner(ctx context.Context, arg GetLaneByOwnerParams) (Lane, error) {
	row := q.db.QueryRow(ctx, getLaneByOwner, arg.ID, arg.Owner)
	var i Lane
	err := row.Scan(
		&i.ID,
		&i.Owner,
		&i.Title,
		&i.Created,
	)
	return i, err
}

const listLanesByOwner = `-- name: ListLanesByOwner :many
SELECT id, owner, title, created
FROM lanes
WHERE owner = $1
ORDER BY created DESC, id DESC
`

func (q *Queries) ListLanesByOwner(ctx context.Context, owner string) ([]Lane, error) {
	rows, err := q.db.Query(ctx, listLanesByOwner, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lane
	for rows.Next() {
		var i Lane
		if err := rows.Scan(
			&i.ID,
			&i.Owner,
			&i.Title,
			&i.Created,
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
