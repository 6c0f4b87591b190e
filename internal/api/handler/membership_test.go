package handler

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/internal/api/middleware"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

// fakeAuth 直接往上下文注入身份，绕过真实 JWT 解析
func fakeAuth(userID int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}

func setupMembershipHandler(t *testing.T) (*MembershipHandler, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	membershipRepo := repository.NewMembershipRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	cfg := testCfg()

	membershipService := service.NewMembershipService(membershipRepo, memberRepo, cfg)
	memberService := service.NewMemberService(memberRepo, nil, cfg)

	return NewMembershipHandler(membershipService, memberService), db
}

func TestMembershipHandler_Create(t *testing.T) {
	handler, db := setupMembershipHandler(t)
	member := testutil.TestMember(t, db)

	router := gin.New()
	router.POST("/memberships", handler.Create)

	w := performRequest(router, "POST", "/memberships", dto.CreateMembershipRequest{
		MemberID: member.ID,
		Plan:     "Yearly",
	})
	resp := parseResponse(t, w)

	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Yearly", data["type"])
	assert.Equal(t, float64(480000), data["fee"])
	assert.Equal(t, model.MembershipActive, data["status"])
}

func TestMembershipHandler_Create_Errors(t *testing.T) {
	handler, db := setupMembershipHandler(t)
	member := testutil.TestMember(t, db)

	router := gin.New()
	router.POST("/memberships", handler.Create)

	t.Run("member not found", func(t *testing.T) {
		w := performRequest(router, "POST", "/memberships", dto.CreateMembershipRequest{
			MemberID: 99999,
			Plan:     "Monthly",
		})
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeResourceNotFound, resp.Code)
	})

	t.Run("unknown plan", func(t *testing.T) {
		w := performRequest(router, "POST", "/memberships", dto.CreateMembershipRequest{
			MemberID: member.ID,
			Plan:     "Platinum",
		})
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeParamError, resp.Code)
	})

	t.Run("missing member_id", func(t *testing.T) {
		w := performRequest(router, "POST", "/memberships", map[string]string{"plan": "Monthly"})
		resp := parseResponse(t, w)
		assert.Equal(t, response.CodeParamError, resp.Code)
	})
}

func TestMembershipHandler_Update(t *testing.T) {
	handler, db := setupMembershipHandler(t)
	member := testutil.TestMember(t, db)
	membership := testutil.TestMembership(t, db, member.ID)

	router := gin.New()
	router.PUT("/memberships/:id", handler.Update)

	status := model.MembershipCancelled
	w := performRequest(router, "PUT", fmt.Sprintf("/memberships/%d", membership.ID),
		dto.UpdateMembershipRequest{Status: &status})
	resp := parseResponse(t, w)

	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, model.MembershipCancelled, data["status"])
}

func TestMembershipHandler_Delete_NotFound(t *testing.T) {
	handler, _ := setupMembershipHandler(t)

	router := gin.New()
	router.DELETE("/memberships/:id", handler.Delete)

	w := performRequest(router, "DELETE", "/memberships/99999", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestMembershipHandler_Status(t *testing.T) {
	handler, db := setupMembershipHandler(t)
	member := testutil.TestMember(t, db)

	router := gin.New()
	router.GET("/memberships/status", fakeAuth(member.UserID, model.RoleMember), handler.Status)

	t.Run("no active membership", func(t *testing.T) {
		w := performRequest(router, "GET", "/memberships/status", nil)
		resp := parseResponse(t, w)

		require.Equal(t, response.CodeSuccess, resp.Code)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, false, data["has_active_membership"])
	})

	t.Run("with active membership", func(t *testing.T) {
		testutil.TestMembership(t, db, member.ID)

		w := performRequest(router, "GET", "/memberships/status", nil)
		resp := parseResponse(t, w)

		require.Equal(t, response.CodeSuccess, resp.Code)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, data["has_active_membership"])
		assert.NotNil(t, data["active_membership"])
	})
}

func TestMembershipHandler_Status_NoProfile(t *testing.T) {
	handler, db := setupMembershipHandler(t)
	// 账号没有会员档案（例如 admin）
	user := testutil.TestUser(t, db, testutil.WithRole(model.RoleAdmin))

	router := gin.New()
	router.GET("/memberships/status", fakeAuth(user.ID, model.RoleAdmin), handler.Status)

	w := performRequest(router, "GET", "/memberships/status", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestMembershipHandler_List(t *testing.T) {
	handler, db := setupMembershipHandler(t)
	member := testutil.TestMember(t, db)
	testutil.TestMembership(t, db, member.ID)
	testutil.TestMembership(t, db, member.ID,
		testutil.WithMembershipStatus(model.MembershipExpired))

	router := gin.New()
	router.GET("/memberships", handler.List)

	w := performRequest(router, "GET", "/memberships?status=active", nil)
	resp := parseResponse(t, w)

	require.Equal(t, response.CodeSuccess, resp.Code)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["total"])
}
