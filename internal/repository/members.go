package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MemberRepository struct {
	db   *sqlx.DB
	psql sq.StatementBuilderType
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

type MemberRepositoryFilter struct {
	ID           *uuid.UUID
	Email        *string
	MemberID     *string
	Status       *string
	CreatedAfter *time.Time
	// Search matches case-insensitively across name, email, phone and the
	// external identifier.
	Search *string
}

func (mq *MemberRepository) buildQuery(filter MemberRepositoryFilter, queryType QueryType) sq.SelectBuilder {
	var builder sq.SelectBuilder
	switch queryType {
	case QueryTypeSelect:
		builder = mq.psql.Select("*").From("members")
	case QueryTypeCount:
		builder = mq.psql.Select("COUNT(*)").From("members")
	}

	if filter.ID != nil {
		builder = builder.Where(sq.Eq{"id": *filter.ID})
	}
	if filter.Email != nil {
		builder = builder.Where("LOWER(email) = LOWER(?)", *filter.Email)
	}
	if filter.MemberID != nil {
		builder = builder.Where(sq.Eq{"member_id": *filter.MemberID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.CreatedAfter != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.CreatedAfter})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"full_name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"phone": pattern},
			sq.ILike{"id_number": pattern},
		})
	}

	return builder
}

func (mq *MemberRepository) Get(ctx context.Context, filter MemberRepositoryFilter) (*Member, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeSelect).ToSql()
	if err != nil {
		return nil, err
	}

	var member Member
	if err := mq.db.GetContext(ctx, &member, query, args...); err != nil {
		return nil, err
	}
	return &member, nil
}

func (mq *MemberRepository) Exists(ctx context.Context, filter MemberRepositoryFilter) (bool, error) {
	count, err := mq.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mq *MemberRepository) Count(ctx context.Context, filter MemberRepositoryFilter) (int, error) {
	query, args, err := mq.buildQuery(filter, QueryTypeCount).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := mq.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

// List returns members matching filter, newest first. A limit <= 0 means
// no page bound (used by the plain listing and the exports).
func (mq *MemberRepository) List(ctx context.Context, filter MemberRepositoryFilter, offset, limit int) ([]Member, error) {
	builder := mq.buildQuery(filter, QueryTypeSelect).
		OrderBy("created_at DESC, id DESC")

	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	members := []Member{}
	if err := mq.db.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, err
	}
	return members, nil
}

func (mq *MemberRepository) Create(ctx context.Context, member *Member, tx *sqlx.Tx) (*Member, error) {
	builder := mq.psql.Insert("members").
		Columns(
			"id", "full_name", "email", "phone", "birth_date", "birth_place",
			"id_number", "activity", "photo", "qr_code", "status", "member_id",
		).
		Values(
			member.ID, member.FullName, member.Email, member.Phone, member.BirthDate,
			member.BirthPlace, member.IDNumber, member.Activity, member.Photo,
			member.QRCode, member.Status, member.MemberID,
		).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var createdMember Member
	if tx != nil {
		err = tx.GetContext(ctx, &createdMember, query, args...)
		return &createdMember, err
	}

	err = mq.db.GetContext(ctx, &createdMember, query, args...)
	return &createdMember, err
}

func (mq *MemberRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, approvedBy uuid.NullUUID, approvedAt sql.NullTime) (*Member, error) {
	builder := mq.psql.Update("members").
		Set("status", status).
		Set("approved_by", approvedBy).
		Set("approved_at", approvedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var updatedMember Member
	if err := mq.db.GetContext(ctx, &updatedMember, query, args...); err != nil {
		return nil, err
	}
	return &updatedMember, nil
}

// Delete removes the row and returns it, so callers can clean up the
// media the record pointed at.
func (mq *MemberRepository) Delete(ctx context.Context, id uuid.UUID) (*Member, error) {
	builder := mq.psql.Delete("members").
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var deletedMember Member
	if err := mq.db.GetContext(ctx, &deletedMember, query, args...); err != nil {
		return nil, err
	}
	return &deletedMember, nil
}
