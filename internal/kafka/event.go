package kafka

import "time"

type EventType string

const (
	VoteCast      EventType = "vote_cast"
	VoteRetracted EventType = "vote_retracted"
)

// Event событие голосования, по нему воркер освежает кешированные затухшие веса
type Event struct {
	FeedbackID string    `json:"feedback_id"`
	UserID     string    `json:"user_id"`
	Type       EventType `json:"type"`
	Weight     float64   `json:"weight,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
