package sqlc

import (
	"github.com/blueseamans/mailanes/internal/pkg/valueobject"
	"github.com/jackc/pgx/v5/pgtype"
)

type Campaign struct {
	ID      int64
	List    int64
	Lane    int64
	Yaml    string
	Active  bool
	Created pgtype.Timestamptz
}

type Delivery struct {
	ID          int64
	Campaign    int64
	Recipient   int64
	Letter      int64
	Status      string
	Attempts    int32
	Details     valueobject.JSONMap
	NextRetryAt pgtype.Timestamptz
	Created     pgtype.Timestamptz
	Updated     pgtype.Timestamptz
}

type Lane struct {
	ID      int64
	Owner   string
	Title   string
	Created pgtype.Timestamptz
}

type Letter struct {
	ID      int64
	Lane    int64
	Place   int32
	Title   string
	Liquid  string
	Yaml    string
	Active  bool
	Created pgtype.Timestamptz
}

type List struct {
	ID      int64
	Owner   string
	Title   string
	Created pgtype.Timestamptz
}

type Recipient struct {
	ID      int64
	List    int64
	Email   string
	First   string
	Last    string
	Source  string
	Yaml    string
	Active  bool
	Created pgtype.Timestamptz
}
