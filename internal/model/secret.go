package model

import "time"

type Secret struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
}
