package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is a persisted customer submission. Orders are written once and
// never updated.
type Order struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   Address   `json:"address"`
	Template  string    `json:"template"`
	Photo     Photo     `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
}

type Address struct {
	Street     string `json:"street,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Photo describes the stored upload. Filename is relative to the uploads
// directory.
type Photo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
