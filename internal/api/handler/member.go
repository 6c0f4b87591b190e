package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
	"github.com/qs3c/gym_go_server/internal/service"
)

type MemberHandler struct {
	memberService *service.MemberService
}

func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// List 会员列表（管理端），支持按姓名/电话模糊搜索
// GET /api/v1/members
func (h *MemberHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.memberService.List(page, pageSize, search)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 会员详情
// GET /api/v1/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	member, err := h.memberService.GetByID(id)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, member)
}

// Update 更新会员资料
// PUT /api/v1/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	member, err := h.memberService.UpdateProfile(id, &req)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound:
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "更新成功", member)
}

// UploadPhoto 上传会员头像
// POST /api/v1/members/:id/photo
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的会员ID")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.ParamError(c, "请上传 photo 文件字段")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	url, err := h.memberService.UploadPhoto(id, fileHeader.Filename, data)
	if err != nil {
		switch err {
		case service.ErrMemberNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPhotoTooLarge, service.ErrPhotoBadFormat:
			response.ParamError(c, err.Error())
		case service.ErrStorageUnready:
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", dto.PhotoResponse{PhotoURL: url})
}
