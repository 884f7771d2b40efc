package members

import (
	"context"
	"database/sql"
	"time"

	"github.com/asbbic/membership/internal/config"
	"github.com/asbbic/membership/internal/dto"
	"github.com/asbbic/membership/internal/metrics"
	"github.com/asbbic/membership/internal/repository"
	"github.com/asbbic/membership/pkg/cache"
	"github.com/asbbic/membership/pkg/email"
	"github.com/asbbic/membership/pkg/logger"
	"github.com/asbbic/membership/pkg/media"
	"github.com/asbbic/membership/pkg/qrcode"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	_ MemberRepository = (*repository.MemberRepository)(nil)
	_ MediaStore       = (*media.Store)(nil)
	_ CodeGenerator    = (*qrcode.Generator)(nil)
	_ Notifier         = (*email.Email)(nil)
	_ StatsCache       = (*cache.Redis)(nil)
)

type MemberRepository interface {
	Get(ctx context.Context, filter repository.MemberRepositoryFilter) (*repository.Member, error)
	Exists(ctx context.Context, filter repository.MemberRepositoryFilter) (bool, error)
	Count(ctx context.Context, filter repository.MemberRepositoryFilter) (int, error)
	List(ctx context.Context, filter repository.MemberRepositoryFilter, offset, limit int) ([]repository.Member, error)
	Create(ctx context.Context, member *repository.Member, tx *sqlx.Tx) (*repository.Member, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, approvedBy uuid.NullUUID, approvedAt sql.NullTime) (*repository.Member, error)
	Delete(ctx context.Context, id uuid.UUID) (*repository.Member, error)
}

type MediaStore interface {
	SavePhoto(ext string, content []byte) (string, error)
	Remove(ref string) error
	Path(ref string) (string, error)
}

type CodeGenerator interface {
	Generate(id string) (string, error)
}

type Notifier interface {
	SendApprovalNotice(ctx context.Context, to, fullName, memberID string) error
}

type StatsCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type Member struct {
	Config           *config.Config
	Logger           *logger.Logger
	Metrics          *metrics.Metrics
	MemberRepository MemberRepository
	Media            MediaStore
	Codes            CodeGenerator
	Email            Notifier
	Cache            StatsCache
}

func New(
	cfg *config.Config,
	log *logger.Logger,
	m *metrics.Metrics,
	memberRepo MemberRepository,
	mediaStore MediaStore,
	codes CodeGenerator,
	notifier Notifier,
	statsCache StatsCache,
) *Member {
	return &Member{
		Config:           cfg,
		Logger:           log,
		Metrics:          m,
		MemberRepository: memberRepo,
		Media:            mediaStore,
		Codes:            codes,
		Email:            notifier,
		Cache:            statsCache,
	}
}

func (m *Member) mapRepositoryToHandler(member repository.Member) *dto.Member {
	out := &dto.Member{
		ID:         member.ID,
		FullName:   member.FullName,
		Email:      member.Email,
		Phone:      member.Phone,
		BirthPlace: member.BirthPlace,
		IDNumber:   member.IDNumber,
		Activity:   member.Activity,
		Status:     dto.MemberStatus(member.Status),
		MemberID:   member.MemberID,
		IssuedAt:   member.IssuedAt,
		CreatedAt:  member.CreatedAt,
		UpdatedAt:  member.UpdatedAt,
	}

	if member.BirthDate.Valid {
		t := member.BirthDate.Time
		out.BirthDate = &t
	}
	if member.Photo != "" {
		p := member.Photo
		out.Photo = &p
	}
	if member.QRCode != "" {
		q := member.QRCode
		out.QRCode = &q
	}
	if member.ApprovedBy.Valid {
		id := member.ApprovedBy.UUID
		out.ApprovedBy = &id
	}
	if member.ApprovedAt.Valid {
		t := member.ApprovedAt.Time
		out.ApprovedAt = &t
	}

	return out
}
