package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/response"
)

type PlansHandler struct {
	cfg *config.Config
}

func NewPlansHandler(cfg *config.Config) *PlansHandler {
	return &PlansHandler{cfg: cfg}
}

// ListMember 会员端价目表（公开，供前台展示和自助缴费）
// GET /api/v1/plans
func (h *PlansHandler) ListMember(c *gin.Context) {
	response.Success(c, toPlanInfos(h.cfg.Plans.Member))
}

// ListAdmin 管理端价目表（录入会籍用）
// GET /api/v1/admin/plans
func (h *PlansHandler) ListAdmin(c *gin.Context) {
	response.Success(c, toPlanInfos(h.cfg.Plans.Admin))
}

func toPlanInfos(plans []config.PlanConfig) []dto.PlanInfo {
	infos := make([]dto.PlanInfo, 0, len(plans))
	for _, p := range plans {
		infos = append(infos, dto.PlanInfo{
			Name:         p.Name,
			DurationDays: p.DurationDays,
			Fee:          p.Fee,
		})
	}
	return infos
}
