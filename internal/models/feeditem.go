package models

import "time"

// MaxStatusLength bounds the free-text status of a feed item.
const MaxStatusLength = 255

// FeedItem represents a status post owned by exactly one user. The owner
// reference and creation timestamp are set once at creation and never change.
type FeedItem struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	StatusText string    `json:"statusText"`
	CreatedAt  time.Time `json:"createdAt"`
}
