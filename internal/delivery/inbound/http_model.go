package inbound

import "time"

type DeliveryResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	LetterTitle string    `json:"letter_title"`
	Status      string    `json:"status"`
	Attempts    int32     `json:"attempts"`
	Created     time.Time `json:"created"`
}

type ReportResponse struct {
	Campaign   int64              `json:"campaign"`
	Title      string             `json:"title"`
	Active     bool               `json:"active"`
	Counts     map[string]int64   `json:"counts"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

type FetchResponse struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
