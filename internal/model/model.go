package model

import "time"

type Admin struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

type Event struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	College     string `db:"college,omitempty" json:"college,omitempty"`
	Date        string `db:"date,omitempty" json:"date,omitempty"`
	Time        string `db:"time,omitempty" json:"time,omitempty"`
	Venue       string `db:"venue,omitempty" json:"venue,omitempty"`
	Description string `db:"description,omitempty" json:"description,omitempty"`
	Category    string `db:"category,omitempty" json:"category,omitempty"`
	Image       string `db:"image" json:"image"`
	Featured    bool   `db:"featured" json:"featured"`
}

type Registration struct {
	ID        int64     `db:"id" json:"id"`
	EventID   int64     `db:"event_id" json:"event_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone,omitempty" json:"phone,omitempty"`
	Email     string    `db:"email,omitempty" json:"email,omitempty"`
	Message   string    `db:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RegistrationWithEvent is the admin review row: a registration joined
// with the title of the event it was submitted for.
type RegistrationWithEvent struct {
	Registration
	EventTitle string `db:"event_title" json:"event_title"`
}

type ContactMessage struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email,omitempty" json:"email,omitempty"`
	Phone     string    `db:"phone,omitempty" json:"phone,omitempty"`
	Subject   string    `db:"subject,omitempty" json:"subject,omitempty"`
	Message   string    `db:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
