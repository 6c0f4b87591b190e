package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/api/middleware"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type MembershipHandler struct {
	membershipService *service.MembershipService
	memberService     *service.MemberService
}

func NewMembershipHandler(membershipService *service.MembershipService, memberService *service.MemberService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		memberService:     memberService,
	}
}

// Create 创建会籍
// POST /api/v1/memberships
func (h *MembershipHandler) Create(c *gin.Context) {
	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	membership, err := h.membershipService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidDuration, service.ErrInvalidFee, service.ErrUnknownPlan:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "创建成功", membership)
}

// List 会籍列表
// GET /api/v1/memberships
func (h *MembershipHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	memberID, _ := strconv.ParseInt(c.DefaultQuery("member_id", "0"), 10, 64)
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.membershipService.List(page, pageSize, memberID, status)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 会籍详情
// GET /api/v1/memberships/:id
func (h *MembershipHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会籍ID")
		return
	}

	membership, err := h.membershipService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrMembershipNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, membership)
}

// Update 编辑会籍（状态/结束日期）
// PUT /api/v1/memberships/:id
func (h *MembershipHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会籍ID")
		return
	}

	var req dto.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	membership, err := h.membershipService.Update(id, &req)
	if err != nil {
		switch err {
		case service.ErrMembershipNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", membership)
}

// Delete 删除会籍
// DELETE /api/v1/memberships/:id
func (h *MembershipHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会籍ID")
		return
	}

	if err := h.membershipService.Delete(id); err != nil {
		switch err {
		case service.ErrMembershipNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

// Status 当前会员的会籍状态
// GET /api/v1/memberships/status
func (h *MembershipHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	member, err := h.memberService.GetByUserID(userID)
	if err != nil {
		switch err {
		case service.ErrMemberNoProfile:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	status, err := h.membershipService.Status(member.ID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}
