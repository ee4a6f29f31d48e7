package entity

import (
	"time"

	"github.com/blueseamans/mailanes/internal/shared/document"
)

// UnknownTitle is shown for campaigns whose yaml has no title.
const UnknownTitle = "unknown"

type List struct {
	ID    int64
	Owner string
	Title string
	// Recipients is the number of recipients in the list.
	Recipients int64
	Created    time.Time
}

type Recipient struct {
	ID      int64
	List    int64
	Email   string
	First   string
	Last    string
	Source  string
	YAML    string
	Active  bool
	Created time.Time
}

type Lane struct {
	ID      int64
	Owner   string
	Title   string
	Created time.Time
	// Letters are ordered by place. Only set by single lane lookups.
	Letters []Letter
}

type Letter struct {
	ID      int64
	Lane    int64
	Place   int32
	Title   string
	Liquid  string
	YAML    string
	Active  bool
	Created time.Time
}

type Campaign struct {
	ID        int64
	List      int64
	Lane      int64
	YAML      string
	Active    bool
	Created   time.Time
	ListTitle string
	LaneTitle string
}

// Title reads the title from the campaign yaml.
func (c Campaign) Title() string {
	doc, err := document.ParseCampaign(c.YAML)
	if err != nil || doc.Title == "" {
		return UnknownTitle
	}
	return doc.Title
}
