package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createCampaign = `-- name: CreateCampaign :exec
INSERT INTO campaigns (id, list, lane, yaml, active) VALUES ($1, $2, $3, $4, FALSE)
`

type CreateCampaignParams struct {
	ID   int64
	List int64
	Lane int64
	Yaml string
}

func (q *Queries) CreateCampaign(ctx context.Context, arg CreateCampaignParams) error {
	_, err := q.db.Exec(ctx, createCampaign,
		arg.ID,
		arg.List,
		arg.Lane,
		arg.Yaml,
	)
	return err
}

const getActiveCampaign = `-- name: GetActiveCampaign :one
SELECT c.id, c.list, c.lane, c.yaml, l.owner
FROM campaigns c
JOIN lists l ON l.id = c.list
WHERE c.id = $1 AND c.active
`

type GetActiveCampaignRow struct {
	ID    int64
	List  int64
	Lane  int64
	Yaml  string
	Owner string
}

func (q *Queries) GetActiveCampaign(ctx context.Context, id int64) (GetActiveCampaignRow, error) {
	row := q.db.QueryRow(ctx, getActiveCampaign, id)
	var i GetActiveCampaignRow
	err := row.Scan(
		&i.ID,
		&i.List,
		&i.Lane,
		&i.Yaml,
		&i.Owner,
	)
	return i, err
}

const getCampaignByOwner = `-- name: GetCampaignByOwner :one
SELECT c.id, c.list, c.lane, c.yaml, c.active, c.created,
    l.title AS list_title, n.title AS lane_title
FROM campaigns c
JOIN lists l ON l.id = c.list
JOIN lanes n ON n.id = c.lane
WHERE c.id = $1 AND l.owner = $2
`

type GetCampaignByOwnerParams struct {
	ID    int64
	Owner string
}

type GetCampaignByOwnerRow struct {
	ID        int64
	List      int64
	Lane      int64
	Yaml      string
	Active    bool
	Created   pgtype.Timestamptz
	ListTitle string
	LaneTitle string
}

func (q *Queries) GetCampaignByOwner(ctx context.Context, arg GetCampaignByOwnerParams) (GetCampaignByOwnerRow, error) {
	row := q.db.QueryRow(ctx, getCampaignByOwner, arg.ID, arg.Owner)
	var i GetCampaignByOwnerRow
	err := row.Scan(
		&i.ID,
		&i.List,
		&i.Lane,
		&i.Yaml,
		&i.Active,
		&i.Created,
		&i.ListTitle,
		&i.LaneTitle,
	)
	return i, err
}

const listActiveCampaigns = `-- name: ListActiveCampaigns :many
SELECT c.id, c.list, c.lane, c.yaml, l.owner
FROM campaigns c
JOIN lists l ON l.id = c.list
WHERE c.active
ORDER BY c.id
`

type ListActiveCampaignsRow struct {
	ID    int64
	List  int64
	Lane  int64
	Yaml  string
	Owner string
}

func (q *Queries) ListActiveCampaigns(ctx context.Context) ([]ListActiveCampaignsRow, error) {
	rows, err := q.db.Query(ctx, listActiveCampaigns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListActiveCampaignsRow
	for rows.Next() {
		var i ListActiveCampaignsRow
		if err := rows.Scan(
			&i.ID,
			&i.List,
			&i.Lane,
			&i.Yaml,
			&i.Owner,
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

const listCampaignsByOwner = `-- name: ListCampaignsByOwner :many
SELECT c.id, c.list, c.lane, c.yaml, c.active, c.created,
    l.title AS list_title, n.title AS lane_title
FROM campaigns c
JOIN lists l ON l.id = c.list
JOIN lanes n ON n.id = c.lane
WHERE l.owner = $1
ORDER BY c.created DESC, c.id DESC
`

type ListCampaignsByOwnerRow struct {
	ID        int64
	List      int64
	Lane      int64
	Yaml      string
	Active    bool
	Created   pgtype.Timestamptz
	ListTitle string
	LaneTitle string
}

func (q *Queries) ListCampaignsByOwner(ctx context.Context, owner string) ([]ListCampaignsByOwnerRow, error) {
	rows, err := q.db.Query(ctx, listCampaignsByOwner, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCampaignsByOwnerRow
	for rows.Next() {
		var i ListCampaignsByOwnerRow
		if err := rows.Scan(
			&i.ID,
			&i.List,
			&i.Lane,
			&i.Yaml,
			&i.Active,
			&i.Created,
			&i.ListTitle,
			&i.LaneTitle,
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

const toggleCampaign = `-- name: ToggleCampaign :one
UPDATE campaigns SET active = NOT active WHERE id = $1 RETURNING active
`

func (q *Queries) ToggleCampaign(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRow(ctx, toggleCampaign, id)
	var active bool
	err := row.Scan(&active)
	return active, err
}

const updateCampaignYaml = `-- name: UpdateCampaignYaml :execrows
UPDATE campaigns SET yaml = $1 WHERE id = $2
`

type UpdateCampaignYamlParams struct {
	Yaml string
	ID   int64
}

func (q *Queries) UpdateCampaignYaml(ctx context.Context, arg UpdateCampaignYamlParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateCampaignYaml, arg.Yaml, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
