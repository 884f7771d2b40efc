package members

import (
	"context"
	"testing"

	"github.com/asbbic/membership/internal/dto"
	svc "github.com/asbbic/membership/internal/services"
	"github.com/asbbic/membership/pkg/media"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedMember(t *testing.T, env *testEnv, fullName, email string) *dto.Member {
	t.Helper()
	member, err := env.svc.Create(context.Background(), dto.CreateMemberInput{
		FullName: fullName,
		Email:    email,
		Phone:    "5550100",
	})
	require.NoError(t, err)
	return member
}

func TestListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	seedMember(t, env, "First In", "first@x.com")
	seedMember(t, env, "Second In", "second@x.com")

	members, err := env.svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, members, 2)
	require.Equal(t, "Second In", members[0].FullName)
	require.Equal(t, "First In", members[1].FullName)
}

func TestListPage(t *testing.T) {
	env := newTestEnv(t)
	seedMember(t, env, "Ada Lovelace", "ada@x.com")
	seedMember(t, env, "Grace Hopper", "grace@x.com")
	seedMember(t, env, "Alan Turing", "alan@x.com")

	page, err := env.svc.ListPage(context.Background(), dto.MemberPageQuery{
		Draw:   7,
		Start:  0,
		Length: 2,
	})
	require.NoError(t, err)

	require.Equal(t, 7, page.Draw)
	require.Equal(t, 3, page.RecordsTotal)
	require.Equal(t, 3, page.RecordsFiltered)
	require.Len(t, page.Data, 2)
	require.Equal(t, "Alan Turing", page.Data[0].FullName)

	filtered, err := env.svc.ListPage(context.Background(), dto.MemberPageQuery{
		Draw:   8,
		Length: 10,
		Search: "grace",
	})
	require.NoError(t, err)

	require.Equal(t, 8, filtered.Draw)
	require.Equal(t, 3, filtered.RecordsTotal)
	require.Equal(t, 1, filtered.RecordsFiltered)
	require.Len(t, filtered.Data, 1)
	require.Equal(t, "Grace Hopper", filtered.Data[0].FullName)
}

func TestGetExplicitDefaults(t *testing.T) {
	env := newTestEnv(t)
	created := seedMember(t, env, "Jane Doe", "jane@x.com")

	member, err := env.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	require.Empty(t, member.BirthPlace)
	require.Empty(t, member.IDNumber)
	require.Empty(t, member.Activity)
	require.Nil(t, member.BirthDate)
	require.Nil(t, member.Photo)
	require.Nil(t, member.ApprovedBy)
	require.Nil(t, member.ApprovedAt)
}

func TestGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Get(context.Background(), uuid.New())

	var apiErr *svc.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status)
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)
	created := seedMember(t, env, "Jane Doe", "jane@x.com")

	verified, err := env.svc.Verify(context.Background(), created.ID)
	require.NoError(t, err)

	require.Equal(t, created.MemberID, verified.MemberID)
	require.Equal(t, "Jane Doe", verified.FullName)
	require.Equal(t, dto.MemberStatusPending, verified.Status)
}

func TestUpdateStatusApprove(t *testing.T) {
	env := newTestEnv(t)
	created := seedMember(t, env, "Jane Doe", "jane@x.com")
	reviewer := uuid.New()

	member, err := env.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateStatusInput{
		Status: "approved",
	}, &reviewer)
	require.NoError(t, err)

	require.Equal(t, dto.MemberStatusApproved, member.Status)
	require.NotNil(t, member.ApprovedBy)
	require.Equal(t, reviewer, *member.ApprovedBy)
	require.NotNil(t, member.ApprovedAt)
	require.Equal(t, []string{"jane@x.com"}, env.notifier.sent)

	fetched, err := env.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, dto.MemberStatusApproved, fetched.Status)
}

func TestUpdateStatusBackToPendingClearsReview(t *testing.T) {
	env := newTestEnv(t)
	created := seedMember(t, env, "Jane Doe", "jane@x.com")
	reviewer := uuid.New()

	_, err := env.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateStatusInput{Status: "rejected"}, &reviewer)
	require.NoError(t, err)
	require.Empty(t, env.notifier.sent, "rejection must not send the approval notice")

	member, err := env.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateStatusInput{Status: "pending"}, &reviewer)
	require.NoError(t, err)

	require.Equal(t, dto.MemberStatusPending, member.Status)
	require.Nil(t, member.ApprovedBy)
	require.Nil(t, member.ApprovedAt)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	created := seedMember(t, env, "Jane Doe", "jane@x.com")

	_, err := env.svc.UpdateStatus(context.Background(), created.ID, dto.UpdateStatusInput{Status: "invalid"}, nil)

	var apiErr *svc.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)

	fetched, err := env.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, dto.MemberStatusPending, fetched.Status, "record must be unchanged after a rejected transition")
}

func TestUpdateStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.UpdateStatus(context.Background(), uuid.New(), dto.UpdateStatusInput{Status: "approved"}, nil)

	var apiErr *svc.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status)
}

func TestDeleteRemovesMedia(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.svc.Create(context.Background(), dto.CreateMemberInput{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Phone:    "5550100",
		Photo:    photoUpload(),
	})
	require.NoError(t, err)
	require.Len(t, env.files(t, media.UploadsDir), 1)
	require.Len(t, env.files(t, media.QRCodeDir), 1)

	require.NoError(t, env.svc.Delete(context.Background(), created.ID))

	require.Empty(t, env.files(t, media.UploadsDir))
	require.Empty(t, env.files(t, media.QRCodeDir))

	err = env.svc.Delete(context.Background(), created.ID)
	var apiErr *svc.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status, "second delete of the same record must report not found")
}

func TestDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.Delete(context.Background(), uuid.New())

	var apiErr *svc.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status)
}

func TestPhotoPath(t *testing.T) {
	env := newTestEnv(t)

	withPhoto, err := env.svc.Create(context.Background(), dto.CreateMemberInput{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Phone:    "5550100",
		Photo:    photoUpload(),
	})
	require.NoError(t, err)

	path, err := env.svc.PhotoPath(context.Background(), withPhoto.ID)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	withoutPhoto := seedMember(t, env, "No Photo", "nophoto@x.com")
	_, err = env.svc.PhotoPath(context.Background(), withoutPhoto.ID)

	var apiErr *svc.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.Status)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	first := seedMember(t, env, "Jane Doe", "jane@x.com")
	seedMember(t, env, "John Roe", "john@x.com")

	_, err := env.svc.UpdateStatus(context.Background(), first.ID, dto.UpdateStatusInput{Status: "approved"}, nil)
	require.NoError(t, err)

	stats, err := env.svc.DashboardStats(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, stats.TotalMembers)
	require.Equal(t, 1, stats.ActiveMembers)

	// Second read must come from the cache.
	cached, err := env.svc.DashboardStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, stats, cached)
	require.Equal(t, 1, env.cache.hits)
}

func TestRecentMembers(t *testing.T) {
	env := newTestEnv(t)
	seedMember(t, env, "First In", "first@x.com")
	seedMember(t, env, "Second In", "second@x.com")

	recent, err := env.svc.RecentMembers(context.Background())
	require.NoError(t, err)

	require.Len(t, recent, 2)
	require.Equal(t, "Second In", recent[0].FullName)
}
