package entity

import "time"

type Status string

const (
	StatusQueued Status = "queued"
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
	// StatusRetry marks a failed delivery claimed by a retry pass.
	StatusRetry Status = "retry"
)

func (s Status) String() string { return string(s) }

// Campaign is a campaign as seen by the pipeline.
type Campaign struct {
	ID     int64
	List   int64
	Lane   int64
	Owner  string
	YAML   string
	Active bool
}

type Recipient struct {
	ID    int64
	Email string
	First string
	Last  string
	YAML  string
}

type Letter struct {
	ID     int64
	Title  string
	Liquid string
	YAML   string
}

// Candidate pairs a recipient with the next letter they have not received.
// Since is the time of their last delivery in the campaign, or their
// creation time when there is none.
type Candidate struct {
	Recipient Recipient
	Letter    Letter
	Since     time.Time
}

// Retryable is a failed delivery whose retry time has come, or a claimed one
// nobody finished.
type Retryable struct {
	ID        int64
	Campaign  Campaign
	Attempts  int32
	Recipient Recipient
	Letter    Letter
}

// Delivery is one row of a campaign report.
type Delivery struct {
	ID          int64
	Email       string
	LetterTitle string
	Status      Status
	Attempts    int32
	Created     time.Time
}

type Report struct {
	CampaignID int64
	Title      string
	Active     bool
	Deliveries []Delivery
	Counts     map[Status]int64
}
