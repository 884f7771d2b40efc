package members

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/asbbic/membership/internal/repository"
	"github.com/asbbic/membership/pkg/media"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// fakeMemberRepository is an in-memory stand-in for the Postgres
// repository. It enforces the same uniqueness rules, surfacing them as
// pq unique violations like the real index would.
type fakeMemberRepository struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]repository.Member
	seq     int
	baseTs  time.Time
	failing bool
	// forceUnique makes the next Create fail with a unique violation, the
	// way a lost race at the index looks to the pipeline.
	forceUnique bool
}

func newFakeMemberRepository() *fakeMemberRepository {
	return &fakeMemberRepository{
		rows:   make(map[uuid.UUID]repository.Member),
		baseTs: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeMemberRepository) matches(row repository.Member, filter repository.MemberRepositoryFilter) bool {
	if filter.ID != nil && row.ID != *filter.ID {
		return false
	}
	if filter.Email != nil && !strings.EqualFold(row.Email, *filter.Email) {
		return false
	}
	if filter.MemberID != nil && row.MemberID != *filter.MemberID {
		return false
	}
	if filter.Status != nil && row.Status != *filter.Status {
		return false
	}
	if filter.CreatedAfter != nil && row.CreatedAt.Before(*filter.CreatedAfter) {
		return false
	}
	if filter.Search != nil && *filter.Search != "" {
		needle := strings.ToLower(*filter.Search)
		haystack := strings.ToLower(row.FullName + " " + row.Email + " " + row.Phone + " " + row.IDNumber)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (f *fakeMemberRepository) all(filter repository.MemberRepositoryFilter) []repository.Member {
	var out []repository.Member
	for _, row := range f.rows {
		if f.matches(row, filter) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeMemberRepository) Get(ctx context.Context, filter repository.MemberRepositoryFilter) (*repository.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := f.all(filter)
	if len(rows) == 0 {
		return nil, sql.ErrNoRows
	}
	row := rows[0]
	return &row, nil
}

func (f *fakeMemberRepository) Exists(ctx context.Context, filter repository.MemberRepositoryFilter) (bool, error) {
	count, err := f.Count(ctx, filter)
	return count > 0, err
}

func (f *fakeMemberRepository) Count(ctx context.Context, filter repository.MemberRepositoryFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.all(filter)), nil
}

func (f *fakeMemberRepository) List(ctx context.Context, filter repository.MemberRepositoryFilter, offset, limit int) ([]repository.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rows := f.all(filter)
	if offset >= len(rows) {
		return []repository.Member{}, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeMemberRepository) Create(ctx context.Context, member *repository.Member, tx *sqlx.Tx) (*repository.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, sql.ErrConnDone
	}
	if f.forceUnique {
		f.forceUnique = false
		return nil, &pq.Error{Code: "23505"}
	}

	for _, row := range f.rows {
		if strings.EqualFold(row.Email, member.Email) ||
			row.MemberID == member.MemberID ||
			(member.IDNumber != "" && row.IDNumber == member.IDNumber) {
			return nil, &pq.Error{Code: "23505"}
		}
	}

	created := *member
	created.CreatedAt = f.baseTs.Add(time.Duration(f.seq) * time.Second)
	created.UpdatedAt = created.CreatedAt
	created.IssuedAt = created.CreatedAt
	f.seq++
	f.rows[created.ID] = created

	return &created, nil
}

func (f *fakeMemberRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, approvedBy uuid.NullUUID, approvedAt sql.NullTime) (*repository.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	row.Status = status
	row.ApprovedBy = approvedBy
	row.ApprovedAt = approvedAt
	row.UpdatedAt = time.Now()
	f.rows[id] = row

	return &row, nil
}

func (f *fakeMemberRepository) Delete(ctx context.Context, id uuid.UUID) (*repository.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(f.rows, id)
	return &row, nil
}

type fakeCodeGenerator struct {
	fail  bool
	media *media.Store
}

func (f *fakeCodeGenerator) Generate(id string) (string, error) {
	if f.fail {
		return "", sql.ErrConnDone
	}
	return f.media.Save(media.QRCodeDir, id+".png", []byte("png-bytes"))
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []string
	failed bool
}

func (f *fakeNotifier) SendApprovalNotice(ctx context.Context, to, fullName, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return sql.ErrConnDone
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeStatsCache struct {
	mu     sync.Mutex
	values map[string][]byte
	hits   int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{values: make(map[string][]byte)}
}

func (f *fakeStatsCache) Get(ctx context.Context, key string, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.values[key]
	if !ok {
		return sql.ErrNoRows
	}
	f.hits++
	return json.Unmarshal(raw, dest)
}

func (f *fakeStatsCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = raw
	return nil
}
