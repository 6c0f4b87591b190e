package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func TestMembershipRepository_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	repo := NewMembershipRepository(db)
	member := testutil.TestMember(t, db)

	start := time.Now().Truncate(24 * time.Hour)
	membership := &model.Membership{
		MemberID:     member.ID,
		Type:         "Monthly",
		DurationDays: 30,
		Fee:          50000,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 30),
		Status:       model.MembershipActive,
	}
	require.NoError(t, repo.Create(membership))
	require.NotZero(t, membership.ID)

	got, err := repo.GetByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monthly", got.Type)
	assert.Equal(t, int64(50000), got.Fee)

	require.NoError(t, repo.UpdateFields(membership.ID, map[string]interface{}{
		"status": model.MembershipCancelled,
	}))
	got, err = repo.GetByID(membership.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipCancelled, got.Status)

	require.NoError(t, repo.Delete(membership.ID))
	_, err = repo.GetByID(membership.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMembershipRepository_ListByMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	repo := NewMembershipRepository(db)

	member := testutil.TestMember(t, db)
	other := testutil.TestMember(t, db)

	first := testutil.TestMembership(t, db, member.ID)
	second := testutil.TestMembership(t, db, member.ID,
		testutil.WithMembershipStatus(model.MembershipExpired))
	testutil.TestMembership(t, db, other.ID)

	memberships, err := repo.ListByMember(member.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	// 创建顺序返回
	assert.Equal(t, first.ID, memberships[0].ID)
	assert.Equal(t, second.ID, memberships[1].ID)
}

func TestMembershipRepository_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	repo := NewMembershipRepository(db)

	member := testutil.TestMember(t, db)
	other := testutil.TestMember(t, db)

	testutil.TestMembership(t, db, member.ID)
	testutil.TestMembership(t, db, member.ID,
		testutil.WithMembershipStatus(model.MembershipExpired))
	testutil.TestMembership(t, db, other.ID)

	t.Run("all", func(t *testing.T) {
		items, total, err := repo.List(1, 20, 0, "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 3)
	})

	t.Run("by member", func(t *testing.T) {
		_, total, err := repo.List(1, 20, member.ID, "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("by status", func(t *testing.T) {
		_, total, err := repo.List(1, 20, 0, model.MembershipExpired)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("pagination", func(t *testing.T) {
		items, total, err := repo.List(2, 2, 0, "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, items, 1)
	})
}

func TestMembershipRepository_ExpireOverdue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	repo := NewMembershipRepository(db)

	member := testutil.TestMember(t, db)
	now := time.Now()

	overdue1 := testutil.TestMembership(t, db, member.ID,
		testutil.WithDates(now.AddDate(0, 0, -90), now.AddDate(0, 0, -60)))
	overdue2 := testutil.TestMembership(t, db, member.ID,
		testutil.WithDates(now.AddDate(0, 0, -31), now.AddDate(0, 0, -1)))
	current := testutil.TestMembership(t, db, member.ID)
	cancelled := testutil.TestMembership(t, db, member.ID,
		testutil.WithMembershipStatus(model.MembershipCancelled),
		testutil.WithDates(now.AddDate(0, 0, -90), now.AddDate(0, 0, -60)))

	count, err := repo.ExpireOverdue(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, id := range []int64{overdue1.ID, overdue2.ID} {
		got, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, model.MembershipExpired, got.Status)
	}

	got, err := repo.GetByID(current.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipActive, got.Status)

	got, err = repo.GetByID(cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipCancelled, got.Status)

	// 再跑一遍没有新的可过期
	count, err = repo.ExpireOverdue(now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMembershipRepository_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	repo := NewMembershipRepository(db)

	member := testutil.TestMember(t, db)
	testutil.TestMembership(t, db, member.ID)
	testutil.TestMembership(t, db, member.ID)
	testutil.TestMembership(t, db, member.ID,
		testutil.WithMembershipStatus(model.MembershipExpired))

	count, err := repo.CountByStatus(model.MembershipActive)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
