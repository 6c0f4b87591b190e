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

type PaymentHandler struct {
	paymentService *service.PaymentService
	memberService  *service.MemberService
}

func NewPaymentHandler(paymentService *service.PaymentService, memberService *service.MemberService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		memberService:  memberService,
	}
}

// Create 记录支付。member 角色只能为自己缴费，member_id 以登录身份为准。
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
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

	payment, err := h.paymentService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound, service.ErrMembershipNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrInvalidAmount, service.ErrInvalidMethod, service.ErrUnknownPlan:
			response.ParamError(c, err.Error())
		case service.ErrMembershipMismatch:
			response.ConflictError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "支付已记录", payment)
}

// List 全部支付记录（管理端）
// GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := c.Query("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.paymentService.List(page, pageSize, status)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// ListMine 当前会员自己的支付记录
// GET /api/v1/payments/mine
func (h *PaymentHandler) ListMine(c *gin.Context) {
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

	payments, err := h.paymentService.ListByMember(member.ID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, payments)
}

// Receipt 收据。member 角色只能查看自己名下支付的收据。
// GET /api/v1/payments/:id/receipt
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的支付ID")
		return
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
		payment, err := h.paymentService.GetByID(id)
		if err != nil {
			switch err {
			case service.ErrPaymentNotFound:
				response.NotFoundError(c, err.Error())
			default:
				response.ServerError(c, "")
			}
			return
		}
		if payment.MemberID != member.ID {
			response.PermissionError(c, service.ErrPaymentNotAccessible.Error())
			return
		}
	}

	receipt, err := h.paymentService.Receipt(id)
	if err != nil {
		switch err {
		case service.ErrPaymentNotFound, service.ErrMemberNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, receipt)
}
