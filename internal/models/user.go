package models

import "time"

// User is one signup record. Rows are insert-only: nothing in the app
// mutates or deletes a user after creation.
//
// The password column holds the raw submitted value. Email carries a plain
// (non-unique) index; lookups by email take the lowest-id match.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);index;not null" json:"email"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "signup_logs" }
