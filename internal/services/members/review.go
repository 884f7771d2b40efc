package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asbbic/membership/internal/dto"
	"github.com/asbbic/membership/internal/repository"
	svc "github.com/asbbic/membership/internal/services"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = time.Minute

	recentMembersLimit = 10
	defaultPageLength  = 10
	maxPageLength      = 100
)

// List returns all records, newest first.
func (m *Member) List(ctx context.Context) ([]dto.Member, error) {
	rows, err := m.MemberRepository.List(ctx, repository.MemberRepositoryFilter{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return lo.Map(rows, func(row repository.Member, _ int) dto.Member {
		return *m.mapRepositoryToHandler(row)
	}), nil
}

// ListPage serves the admin table widget: an offset/limit page with the
// unfiltered total, the filtered count and the echoed draw token.
func (m *Member) ListPage(ctx context.Context, q dto.MemberPageQuery) (*dto.MemberTablePage, error) {
	if q.Length <= 0 {
		q.Length = defaultPageLength
	}
	if q.Length > maxPageLength {
		q.Length = maxPageLength
	}
	if q.Start < 0 {
		q.Start = 0
	}

	total, err := m.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	filter := repository.MemberRepositoryFilter{}
	filtered := total
	if q.Search != "" {
		filter.Search = &q.Search
		filtered, err = m.MemberRepository.Count(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count filtered members: %w", err)
		}
	}

	rows, err := m.MemberRepository.List(ctx, filter, q.Start, q.Length)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return &dto.MemberTablePage{
		Draw:            q.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Data: lo.Map(rows, func(row repository.Member, _ int) dto.Member {
			return *m.mapRepositoryToHandler(row)
		}),
	}, nil
}

func (m *Member) Get(ctx context.Context, id uuid.UUID) (*dto.Member, error) {
	row, err := m.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.NotFound("Member not found")
		}
		return nil, err
	}
	return m.mapRepositoryToHandler(*row), nil
}

// Verify resolves the payload behind a scanned verification code.
func (m *Member) Verify(ctx context.Context, id uuid.UUID) (*dto.VerifiedMember, error) {
	row, err := m.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.NotFound("Member not found")
		}
		return nil, err
	}

	return &dto.VerifiedMember{
		MemberID: row.MemberID,
		FullName: row.FullName,
		Status:   dto.MemberStatus(row.Status),
		IssuedAt: row.IssuedAt,
	}, nil
}

// UpdateStatus transitions a record to one of the three lifecycle states.
// A reviewed state (approved or rejected) stamps the reviewer and the
// review time; moving back to pending clears both.
func (m *Member) UpdateStatus(ctx context.Context, id uuid.UUID, input dto.UpdateStatusInput, reviewer *uuid.UUID) (*dto.Member, error) {
	status := dto.MemberStatus(input.Status)
	if !status.Valid() {
		return nil, svc.BadRequest("Invalid status value")
	}

	var approvedBy uuid.NullUUID
	var approvedAt sql.NullTime
	if status != dto.MemberStatusPending {
		approvedBy = repository.ToNullUUID(reviewer)
		approvedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}

	row, err := m.MemberRepository.UpdateStatus(ctx, id, string(status), approvedBy, approvedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, svc.NotFound("Member not found")
		}
		return nil, fmt.Errorf("failed to update member status: %w", err)
	}

	m.Metrics.IncStatusTransition(string(status))

	if status == dto.MemberStatusApproved {
		if err := m.Email.SendApprovalNotice(ctx, row.Email, row.FullName, row.MemberID); err != nil {
			m.Logger.Error().Err(err).Str("member", row.ID.String()).Msg("failed to send approval notice")
		}
	}

	return m.mapRepositoryToHandler(*row), nil
}

// Delete removes the record and then its media assets. Missing files
// during the cleanup are fine; the deletion already committed.
func (m *Member) Delete(ctx context.Context, id uuid.UUID) error {
	row, err := m.MemberRepository.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return svc.NotFound("Member not found")
		}
		return fmt.Errorf("failed to delete member: %w", err)
	}

	m.removeMedia(row.Photo)
	m.removeMedia(row.QRCode)

	m.Logger.Info().Str("member", row.ID.String()).Msg("member deleted")
	return nil
}

// PhotoPath resolves the stored photo for a record to a filesystem path.
func (m *Member) PhotoPath(ctx context.Context, id uuid.UUID) (string, error) {
	row, err := m.MemberRepository.Get(ctx, repository.MemberRepositoryFilter{ID: &id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", svc.NotFound("Member not found")
		}
		return "", err
	}
	if row.Photo == "" {
		return "", svc.NotFound("Member has no photo")
	}
	return m.Media.Path(row.Photo)
}

func (m *Member) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	if m.Cache != nil {
		var cached dto.DashboardStats
		if err := m.Cache.Get(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := m.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	approved := string(dto.MemberStatusApproved)
	active, err := m.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{Status: &approved})
	if err != nil {
		return nil, fmt.Errorf("failed to count approved members: %w", err)
	}

	oneMonthAgo := time.Now().AddDate(0, -1, 0)
	recent, err := m.MemberRepository.Count(ctx, repository.MemberRepositoryFilter{CreatedAfter: &oneMonthAgo})
	if err != nil {
		return nil, fmt.Errorf("failed to count recent members: %w", err)
	}

	stats := &dto.DashboardStats{
		TotalMembers:  total,
		ActiveMembers: active,
		NewMembers:    recent,
	}

	if m.Cache != nil {
		if err := m.Cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			m.Logger.Debug().Err(err).Msg("failed to cache dashboard stats")
		}
	}

	return stats, nil
}

func (m *Member) RecentMembers(ctx context.Context) ([]dto.RecentMember, error) {
	rows, err := m.MemberRepository.List(ctx, repository.MemberRepositoryFilter{}, 0, recentMembersLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent members: %w", err)
	}

	return lo.Map(rows, func(row repository.Member, _ int) dto.RecentMember {
		return dto.RecentMember{
			ID:        row.ID,
			FullName:  row.FullName,
			IDNumber:  row.IDNumber,
			Activity:  row.Activity,
			Status:    dto.MemberStatus(row.Status),
			CreatedAt: row.CreatedAt,
		}
	}), nil
}
