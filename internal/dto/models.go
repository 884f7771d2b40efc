package dto

import (
	"time"

	"github.com/google/uuid"
)

type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusApproved MemberStatus = "approved"
	MemberStatusRejected MemberStatus = "rejected"
)

func (s MemberStatus) Valid() bool {
	switch s {
	case MemberStatusPending, MemberStatusApproved, MemberStatusRejected:
		return true
	}
	return false
}

// PhotoUpload carries an attachment that already passed the intake guard
// (image MIME type, size bound) in the handler layer.
type PhotoUpload struct {
	Content []byte
	Ext     string
}

type CreateMemberInput struct {
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	BirthDate  string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	BirthPlace string `json:"birthPlace"`
	Activity   string `json:"activity"`
	IDNumber   string `json:"idNumber"`

	Photo *PhotoUpload `json:"-"`
}

// Member is the externally visible record shape. Every optional field has
// an explicit default (empty string or null), so consumers only ever need
// equality checks.
type Member struct {
	ID         uuid.UUID    `json:"id"`
	FullName   string       `json:"fullName"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	BirthDate  *time.Time   `json:"birthDate"`
	BirthPlace string       `json:"birthPlace"`
	IDNumber   string       `json:"idNumber"`
	Activity   string       `json:"activity"`
	Photo      *string      `json:"photo"`
	QRCode     *string      `json:"qrCode"`
	Status     MemberStatus `json:"status"`
	ApprovedBy *uuid.UUID   `json:"approvedBy"`
	ApprovedAt *time.Time   `json:"approvedAt"`
	MemberID   string       `json:"memberId"`
	IssuedAt   time.Time    `json:"issuedAt"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// MemberTablePage is the paged listing shape the admin table widget
// consumes: the echoed draw token, the unfiltered total, the filtered
// count, and the page of rows.
type MemberTablePage struct {
	Draw            int      `json:"draw"`
	RecordsTotal    int      `json:"recordsTotal"`
	RecordsFiltered int      `json:"recordsFiltered"`
	Data            []Member `json:"data"`
}

type MemberPageQuery struct {
	Draw   int
	Start  int
	Length int
	Search string
}

type DashboardStats struct {
	TotalMembers  int `json:"totalMembers"`
	ActiveMembers int `json:"activeMembers"`
	NewMembers    int `json:"newMembers"`
}

type RecentMember struct {
	ID        uuid.UUID    `json:"id"`
	FullName  string       `json:"fullName"`
	IDNumber  string       `json:"idNumber"`
	Activity  string       `json:"activity"`
	Status    MemberStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// VerifiedMember is the public payload behind a scanned verification code.
type VerifiedMember struct {
	MemberID string       `json:"memberId"`
	FullName string       `json:"fullName"`
	Status   MemberStatus `json:"status"`
	IssuedAt time.Time    `json:"issuedAt"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthUser struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Roles []string  `json:"roles"`
}

type AuthResponse struct {
	User         *AuthUser `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
}
