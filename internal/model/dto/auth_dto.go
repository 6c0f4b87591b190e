package dto

// RegisterRequest 注册请求。角色决定必填的附属资料：
// member 必须携带 member_profile，trainer 必须携带 trainer_profile，admin 只需账号信息。
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
	Role     string `json:"role" binding:"required,oneof=member trainer admin"`

	MemberProfile  *MemberProfile  `json:"member_profile,omitempty"`
	TrainerProfile *TrainerProfile `json:"trainer_profile,omitempty"`
}

// MemberProfile 会员注册资料
type MemberProfile struct {
	Name        string `json:"name" binding:"required,max=100"`
	Phone       string `json:"phone" binding:"required,max=20"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female other"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Address     string `json:"address" binding:"omitempty,max=255"`
}

// TrainerProfile 教练注册资料
type TrainerProfile struct {
	Name            string `json:"name" binding:"required,max=100"`
	Phone           string `json:"phone" binding:"required,max=20"`
	Specialization  string `json:"specialization" binding:"omitempty,max=100"`
	ExperienceYears int    `json:"experience_years" binding:"omitempty,min=0,max=80"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息（返回给前端）
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	MemberID  int64  `json:"member_id,omitempty"`
	TrainerID int64  `json:"trainer_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
