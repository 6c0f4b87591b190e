package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/api/middleware"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	memberService     *service.MemberService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService, memberService *service.MemberService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		memberService:     memberService,
	}
}

// CheckIn 入场签到。member 角色只能给自己签到，admin 可代任意会员签到。
// POST /api/v1/attendance/checkin
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	// member 自助签到可以不带请求体
	var req dto.CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ParamError(c, err.Error())
			return
		}
	}

	role, _ := middleware.GetRole(c)
	if role == model.RoleMember {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			return
		}
		member, err := h.memberService.GetByUserID(userID)
		if err != nil {
			response.NotFoundError(c, service.ErrMemberNoProfile.Error())
			return
		}
		req.MemberID = member.ID
	}

	if req.MemberID == 0 {
		response.ParamError(c, "member_id 不能为空")
		return
	}

	attendance, err := h.attendanceService.CheckIn(req.MemberID)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrNoActiveMembership:
			response.ConflictError(c, err.Error())
		case service.ErrAlreadyCheckedIn:
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "签到成功", attendance)
}

// CheckOut 签退
// POST /api/v1/attendance/:id/checkout
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的记录ID")
		return
	}

	attendance, err := h.attendanceService.CheckOut(id)
	if err != nil {
		switch err {
		case service.ErrAttendanceNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrAlreadyCheckedOut:
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "签退成功", attendance)
}

// ListMine 当前会员自己的入场记录
// GET /api/v1/attendance/mine
func (h *AttendanceHandler) ListMine(c *gin.Context) {
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

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.attendanceService.List(page, pageSize, member.ID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// List 入场记录列表
// GET /api/v1/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	memberID, _ := strconv.ParseInt(c.DefaultQuery("member_id", "0"), 10, 64)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.attendanceService.List(page, pageSize, memberID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}
