package dto

// UpdateMemberRequest 更新会员资料
type UpdateMemberRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Address *string `json:"address,omitempty" binding:"omitempty,max=255"`
}

// PhotoResponse 头像上传结果
type PhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}
