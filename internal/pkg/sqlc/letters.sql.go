package sqlc

import (
	"context"
)

const createLetter = `-- name: CreateLetter :one
INSERT INTO letters (id, lane, place, title, liquid, yaml, active)
VALUES (
    $1, $2,
    (SELECT COALESCE(MAX(place), 0) + 1 FROM letters WHERE lane = $2)::INTEGER,
    $3, $4, $5, FALSE
)
RETURNING place
`

type CreateLetterParams struct {
	ID     int64
	Lane   int64
	Title  string
	Liquid string
	Yaml   string
}

func (q *Queries) CreateLetter(ctx context.Context, arg CreateLetterParams) (int32, error) {
	row := q.db.QueryRow(ctx, createLetter,
		arg.ID,
		arg.Lane,
		arg.Title,
		arg.Liquid,
		arg.Yaml,
	)
	var place int32
	err := row.Scan(&place)
	return place, err
}

const getLetterByOwner = `-- name: GetLetterByOwner :one
SELECT t.id, t.lane, t.place, t.title, t.liquid, t.yaml, t.active, t.created
FROM letters t
JOIN lanes n ON n.id = t.lane
WHERE t.id = $1 AND n.owner = $2
`

type GetLetterByOwnerParams struct {
	ID    int64
	Owner string
}

func (q *Queries) GetLetterByOwner(ctx context.Context, arg GetLetterByOwnerParams) (Letter, error) {
	row := q.db.QueryRow(ctx, getLetterByOwner, arg.ID, arg.Owner)
	var i Letter
	err := row.Scan(
		&i.ID,
		&i.Lane,
		&i.Place,
		&i.Title,
		&i.Liquid,
		&i.Yaml,
		&i.Active,
		&i.Created,
	)
	return i, err
}

const listLettersByLane = `-- name: ListLettersByLane :many
SELECT id, lane, place, title, liquid, yaml, active, created
FROM letters
WHERE lane = $1
ORDER BY place, id
`

func (q *Queries) ListLettersByLane(ctx context.Context, lane int64) ([]Letter, error) {
	rows, err := q.db.Query(ctx, listLettersByLane, lane)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Letter
	for rows.Next() {
		var i Letter
		if err := rows.Scan(
			&i.ID,
			&i.Lane,
			&i.Place,
			&i.Title,
			&i.Liquid,
			&i.Yaml,
			&i.Active,
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

const toggleLetter = `-- name: ToggleLetter :one
UPDATE letters SET active = NOT active WHERE id = $1 RETURNING active
`

func (q *Queries) ToggleLetter(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRow(ctx, toggleLetter, id)
	var active bool
	err := row.Scan(&active)
	return active, err
}

const updateLetter = `-- name: UpdateLetter :execrows
UPDATE letters SET liquid = $1, yaml = $2 WHERE id = $3
`

type UpdateLetterParams struct {
	Liquid string
	Yaml   string
	ID     int64
}

func (q *Queries) UpdateLetter(ctx context.Context, arg UpdateLetterParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateLetter, arg.Liquid, arg.Yaml, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
