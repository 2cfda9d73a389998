package models

import "time"

type User struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
