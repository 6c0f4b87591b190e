package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
		Plans: config.PlansConfig{
			Admin: []config.PlanConfig{
				{Name: "Monthly", DurationDays: 30, Fee: 50000},
				{Name: "Semi-Annual", DurationDays: 180, Fee: 260000},
				{Name: "Yearly", DurationDays: 365, Fee: 480000},
			},
			Member: []config.PlanConfig{
				{Name: "Monthly", DurationDays: 30, Fee: 50000},
				{Name: "Semi-Annual", DurationDays: 180, Fee: 270000},
				{Name: "Yearly", DurationDays: 365, Fee: 500000},
			},
		},
		Receipt: config.ReceiptConfig{Prefix: "GYM"},
	}
}

func setupMembershipService(t *testing.T) (*MembershipService, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	membershipRepo := repository.NewMembershipRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	svc := NewMembershipService(membershipRepo, memberRepo, testConfig())

	return svc, db
}

func TestMembershipService_Create(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)

	membership, err := svc.Create(&dto.CreateMembershipRequest{
		MemberID:     member.ID,
		Type:         "Monthly",
		DurationDays: 30,
		Fee:          50000,
		StartDate:    "2023-06-01",
	})
	require.NoError(t, err)

	assert.Equal(t, model.MembershipActive, membership.Status)
	assert.Equal(t, "2023-06-01", membership.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2023-07-01", membership.EndDate.Format("2006-01-02"))
}

func TestMembershipService_Create_EndDateByDays(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)

	// 结束日期按天数推，365 天刚好跨一个非闰年
	membership, err := svc.Create(&dto.CreateMembershipRequest{
		MemberID:     member.ID,
		Type:         "Yearly",
		DurationDays: 365,
		Fee:          480000,
		StartDate:    "2023-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", membership.EndDate.Format("2006-01-02"))
}

func TestMembershipService_Create_PlanPrefill(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)

	t.Run("fills from admin catalog", func(t *testing.T) {
		membership, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID: member.ID,
			Plan:     "Yearly",
		})
		require.NoError(t, err)
		assert.Equal(t, "Yearly", membership.Type)
		assert.Equal(t, 365, membership.DurationDays)
		assert.Equal(t, int64(480000), membership.Fee)
	})

	t.Run("semi-annual plan", func(t *testing.T) {
		membership, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID: member.ID,
			Plan:     "Semi-Annual",
		})
		require.NoError(t, err)
		assert.Equal(t, 180, membership.DurationDays)
		assert.Equal(t, int64(260000), membership.Fee)
	})

	t.Run("explicit fields win", func(t *testing.T) {
		membership, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID: member.ID,
			Plan:     "Yearly",
			Fee:      400000, // 打折价
		})
		require.NoError(t, err)
		assert.Equal(t, int64(400000), membership.Fee)
		assert.Equal(t, 365, membership.DurationDays)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID: member.ID,
			Plan:     "Platinum",
		})
		assert.ErrorIs(t, err, ErrUnknownPlan)
	})
}

func TestMembershipService_Create_Invalid(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)

	t.Run("member not found", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID:     99999,
			DurationDays: 30,
			Fee:          50000,
		})
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID: member.ID,
			Fee:      50000,
		})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("negative fee", func(t *testing.T) {
		_, err := svc.Create(&dto.CreateMembershipRequest{
			MemberID:     member.ID,
			DurationDays: 30,
			Fee:          -1,
		})
		assert.ErrorIs(t, err, ErrInvalidFee)
	})
}

func TestMembershipService_Update(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)
	membership := testutil.TestMembership(t, db, member.ID)

	status := model.MembershipCancelled
	endDate := "2023-12-31"
	updated, err := svc.Update(membership.ID, &dto.UpdateMembershipRequest{
		Status:  &status,
		EndDate: &endDate,
	})
	require.NoError(t, err)

	assert.Equal(t, model.MembershipCancelled, updated.Status)
	assert.Equal(t, "2023-12-31", updated.EndDate.Format("2006-01-02"))
}

func TestMembershipService_Update_NotFound(t *testing.T) {
	svc, _ := setupMembershipService(t)

	status := model.MembershipExpired
	_, err := svc.Update(99999, &dto.UpdateMembershipRequest{Status: &status})
	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestMembershipService_Delete(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)
	membership := testutil.TestMembership(t, db, member.ID)

	require.NoError(t, svc.Delete(membership.ID))

	_, err := svc.GetByID(membership.ID)
	assert.ErrorIs(t, err, ErrMembershipNotFound)

	assert.ErrorIs(t, svc.Delete(membership.ID), ErrMembershipNotFound)
}

func TestMembershipService_Status(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)

	t.Run("no memberships", func(t *testing.T) {
		status, err := svc.Status(member.ID)
		require.NoError(t, err)
		assert.False(t, status.HasActiveMembership)
		assert.Nil(t, status.ActiveMembership)
	})

	t.Run("only expired", func(t *testing.T) {
		testutil.TestMembership(t, db, member.ID,
			testutil.WithMembershipStatus(model.MembershipExpired))

		status, err := svc.Status(member.ID)
		require.NoError(t, err)
		assert.False(t, status.HasActiveMembership)
	})

	t.Run("one active", func(t *testing.T) {
		active := testutil.TestMembership(t, db, member.ID)

		status, err := svc.Status(member.ID)
		require.NoError(t, err)
		assert.True(t, status.HasActiveMembership)
		require.NotNil(t, status.ActiveMembership)
		assert.Equal(t, active.ID, status.ActiveMembership.ID)
	})
}

func TestResolveStatus_MultipleActive(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	t.Run("latest start date wins", func(t *testing.T) {
		memberships := []model.Membership{
			{ID: 1, Status: model.MembershipActive, StartDate: day("2023-01-01")},
			{ID: 2, Status: model.MembershipActive, StartDate: day("2023-06-01")},
			{ID: 3, Status: model.MembershipExpired, StartDate: day("2023-09-01")},
		}

		status := ResolveStatus(memberships)
		assert.True(t, status.HasActiveMembership)
		assert.Equal(t, int64(2), status.ActiveMembership.ID)
	})

	t.Run("same start date, higher id wins", func(t *testing.T) {
		memberships := []model.Membership{
			{ID: 7, Status: model.MembershipActive, StartDate: day("2023-06-01")},
			{ID: 4, Status: model.MembershipActive, StartDate: day("2023-06-01")},
		}

		status := ResolveStatus(memberships)
		assert.Equal(t, int64(7), status.ActiveMembership.ID)
	})
}

func TestMembershipService_ExpireOverdue(t *testing.T) {
	svc, db := setupMembershipService(t)
	member := testutil.TestMember(t, db)

	// 已过期但状态仍为 active
	overdue := testutil.TestMembership(t, db, member.ID,
		testutil.WithDates(time.Now().AddDate(0, 0, -60), time.Now().AddDate(0, 0, -30)))
	// 仍在有效期内
	current := testutil.TestMembership(t, db, member.ID)
	// 已取消的不动
	cancelled := testutil.TestMembership(t, db, member.ID,
		testutil.WithMembershipStatus(model.MembershipCancelled),
		testutil.WithDates(time.Now().AddDate(0, 0, -60), time.Now().AddDate(0, 0, -30)))

	count, err := svc.ExpireOverdue()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := svc.GetByID(overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipExpired, got.Status)

	got, err = svc.GetByID(current.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipActive, got.Status)

	got, err = svc.GetByID(cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MembershipCancelled, got.Status)
}
