package members

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/asbbic/membership/internal/dto"
	"github.com/asbbic/membership/internal/helpers"
	"github.com/asbbic/membership/internal/repository"
	svc "github.com/asbbic/membership/internal/services"
	"github.com/google/uuid"
)

const (
	rejectReasonValidation = "validation"
	rejectReasonDuplicate  = "duplicate"
	rejectReasonMedia      = "media"
	rejectReasonStorage    = "storage"

	memberIDAttempts = 5
)

// Create runs the submission intake pipeline: validation, duplicate
// check, photo persistence, verification-code generation and the final
// commit. Every filesystem side effect registers an undo action; on a
// fatal error they run in reverse, so a failed submission leaves no
// orphaned media behind.
func (m *Member) Create(ctx context.Context, input dto.CreateMemberInput) (*dto.Member, error) {
	fullName := strings.TrimSpace(input.FullName)
	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)

	if fullName == "" || emailAddr == "" || phone == "" {
		m.Metrics.IncSubmissionRejected(rejectReasonValidation)
		return nil, svc.BadRequest("Full name, email and phone are required")
	}

	var birthDate sql.NullTime
	if input.BirthDate != "" {
		t, err := time.Parse("2006-01-02", input.BirthDate)
		if err != nil {
			m.Metrics.IncSubmissionRejected(rejectReasonValidation)
			return nil, svc.BadRequest("Invalid birth date, expected YYYY-MM-DD")
		}
		birthDate = sql.NullTime{Time: t, Valid: true}
	}

	emailExists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{
		Email: &emailAddr,
	})
	if err != nil {
		return nil, err
	}
	if emailExists {
		m.Metrics.IncSubmissionRejected(rejectReasonDuplicate)
		return nil, svc.BadRequest("A member with this email already exists")
	}

	var undo []func()
	compensate := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}

	photoRef := ""
	if input.Photo != nil {
		ref, err := m.Media.SavePhoto(input.Photo.Ext, input.Photo.Content)
		if err != nil {
			m.Metrics.IncSubmissionRejected(rejectReasonMedia)
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		photoRef = ref
		undo = append(undo, func() { m.removeMedia(ref) })
	}

	// The record identity is allocated before the code renders because the
	// code encodes the verification URL for that identity.
	id := uuid.New()

	// A failed render is non-fatal: the submission keeps its photo and
	// core fields and the record simply lacks a code reference.
	qrRef := ""
	if ref, err := m.Codes.Generate(id.String()); err != nil {
		m.Logger.Warn().Err(err).Str("member", id.String()).Msg("verification code generation failed")
	} else {
		qrRef = ref
		undo = append(undo, func() { m.removeMedia(ref) })
	}

	memberID, err := m.allocateMemberID(ctx)
	if err != nil {
		compensate()
		m.Metrics.IncSubmissionRejected(rejectReasonStorage)
		return nil, err
	}

	created, err := m.MemberRepository.Create(ctx, &repository.Member{
		ID:         id,
		FullName:   fullName,
		Email:      emailAddr,
		Phone:      phone,
		BirthDate:  birthDate,
		BirthPlace: strings.TrimSpace(input.BirthPlace),
		IDNumber:   strings.ToUpper(strings.TrimSpace(input.IDNumber)),
		Activity:   strings.TrimSpace(input.Activity),
		Photo:      photoRef,
		QRCode:     qrRef,
		Status:     string(dto.MemberStatusPending),
		MemberID:   memberID,
	}, nil)
	if err != nil {
		compensate()
		// A concurrent submission can pass the pre-check and lose the
		// race at the unique index; surface it like the pre-check did.
		if repository.IsUniqueViolation(err) {
			m.Metrics.IncSubmissionRejected(rejectReasonDuplicate)
			return nil, svc.BadRequest("A member with this email or ID number already exists")
		}
		m.Metrics.IncSubmissionRejected(rejectReasonStorage)
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	m.Metrics.IncSubmissionAccepted()
	m.Logger.Info().
		Str("member", created.ID.String()).
		Str("member_id", created.MemberID).
		Msg("member created")

	return m.mapRepositoryToHandler(*created), nil
}

func (m *Member) allocateMemberID(ctx context.Context) (string, error) {
	for i := 0; i < memberIDAttempts; i++ {
		candidate := "MEM" + helpers.GenerateNumericString(6)
		exists, err := m.MemberRepository.Exists(ctx, repository.MemberRepositoryFilter{
			MemberID: &candidate,
		})
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not allocate a free member id after %d attempts", memberIDAttempts)
}

func (m *Member) removeMedia(ref string) {
	if err := m.Media.Remove(ref); err != nil {
		m.Logger.Warn().Err(err).Str("ref", ref).Msg("failed to remove media file")
	}
}
