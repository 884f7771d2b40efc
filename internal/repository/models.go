package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type QueryType string

const (
	QueryTypeSelect QueryType = "select"
	QueryTypeCount  QueryType = "count"
)

// Member rows map through the sqlx "json" mapper, so the tags below name
// database columns, not wire fields.
type Member struct {
	ID         uuid.UUID     `json:"id"`
	FullName   string        `json:"full_name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	BirthDate  sql.NullTime  `json:"birth_date"`
	BirthPlace string        `json:"birth_place"`
	IDNumber   string        `json:"id_number"`
	Activity   string        `json:"activity"`
	Photo      string        `json:"photo"`
	QRCode     string        `json:"qr_code"`
	Status     string        `json:"status"`
	ApprovedBy uuid.NullUUID `json:"approved_by"`
	ApprovedAt sql.NullTime  `json:"approved_at"`
	MemberID   string        `json:"member_id"`
	IssuedAt   time.Time     `json:"issued_at"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
