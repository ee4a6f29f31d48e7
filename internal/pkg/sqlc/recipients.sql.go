package sqlc

import (
	"context"
)

const createRecipient = `-- name: CreateRecipient :exec
INSERT INTO recipients (id, list, email, first, last, source, yaml, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateRecipientParams struct {
	ID     int64
	List   int64
	Email  string
	First  string
	Last   string
	Source string
	Yaml   string
	Active bool
}

func (q *Queries) CreateRecipient(ctx context.Context, arg CreateRecipientParams) error {
	_, err := q.db.Exec(ctx, createRecipient,
		arg.ID,
		arg.List,
		arg.Email,
		arg.First,
		arg.Last,
		arg.Source,
		arg.Yaml,
		arg.Active,
	)
	return err
}

const createRecipientSkipDuplicate = `-- name: CreateRecipientSkipDuplicate :execrows
INSERT INTO recipients (id, list, email, first, last, source, yaml, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (list, email) DO NOTHING
`

type CreateRecipientSkipDuplicateParams struct {
	ID     int64
	List   int64
	Email  string
	First  string
	Last   string
	Source string
	Yaml   string
	Active bool
}

func (q *Queries) CreateRecipientSkipDuplicate(ctx context.Context, arg CreateRecipientSkipDuplicateParams) (int64, error) {
	result, err := q.db.Exec(ctx, createRecipientSkipDuplicate,
		arg.ID,
		arg.List,
		arg.Email,
		arg.First,
		arg.Last,
		arg.Source,
		arg.Yaml,
		arg.Active,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deactivateRecipient = `-- name: DeactivateRecipient :execrows
UPDATE recipients SET active = FALSE WHERE id = $1 AND active
`

func (q *Queries) DeactivateRecipient(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deactivateRecipient, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getRecipientByOwner = `-- name: GetRecipientByOwner :one
SELECT r.id, r.list, r.email, r.first, r.last, r.source, r.yaml, r.active, r.created
FROM recipients r
JOIN lists l ON l.id = r.list
WHERE r.id = $1 AND l.owner = $2
`

type GetRecipientByOwnerParams struct {
	ID    int64
	Owner string
}

func (q *Queries) GetRecipientByOwner(ctx context.Context, arg GetRecipientByOwnerParams) (Recipient, error) {
	row := q.db.QueryRow(ctx, getRecipientByOwner, arg.ID, arg.Owner)
	var i Recipient
	err := row.Scan(
		&i.ID,
		&i.List,
		&i.Email,
		&i.First,
		&i.Last,
		&i.Source,
		&i.Yaml,
		&i.Active,
		&i.Created,
	)
	return i, err
}

const listAllRecipientsByList = `-- name: ListAllRecipientsByList :many
SELECT id, list, email, first, last, source, yaml, active, created
FROM recipients
WHERE list = $1
ORDER BY id
`

func (q *Queries) ListAllRecipientsByList(ctx context.Context, list int64) ([]Recipient, error) {
	rows, err := q.db.Query(ctx, listAllRecipientsByList, list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Recipient
	for rows.Next() {
		var i Recipient
		if err := rows.Scan(
			&i.ID,
			&i.List,
			&i.Email,
			&i.First,
			&i.Last,
			&i.Source,
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

const listRecipientsByList = `-- name: ListRecipientsByList :many
SELECT id, list, email, first, last, source, yaml, active, created
FROM recipients
WHERE list = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

type ListRecipientsByListParams struct {
	List int64
	Lim  int32
	Off  int32
}

func (q *Queries) ListRecipientsByList(ctx context.Context, arg ListRecipientsByListParams) ([]Recipient, error) {
	rows, err := q.db.Query(ctx, listRecipientsByList, arg.List, arg.Lim, arg.Off)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Recipient
	for rows.Next() {
		var i Recipient
		if err := rows.Scan(
			&i.ID,
			&i.List,
			&i.Email,
			&i.First,
			&i.Last,
			&i.Source,
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

const toggleRecipient = `-- name: ToggleRecipient :one
UPDATE recipients SET active = NOT active WHERE id = $1 RETURNING active
`

func (q *Queries) ToggleRecipient(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRow(ctx, toggleRecipient, id)
	var active bool
	err := row.Scan(&active)
	return active, err
}

const updateRecipientYaml = `-- name: UpdateRecipientYaml :execrows
UPDATE recipients SET yaml = $1 WHERE id = $2
`

type UpdateRecipientYamlParams struct {
	Yaml string
	ID   int64
}

func (q *Queries) UpdateRecipientYaml(ctx context.Context, arg UpdateRecipientYamlParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateRecipientYaml, arg.Yaml, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
