package service

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/email"
	"github.com/qs3c/gym_go_server/internal/pkg/jwt"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUsernameExists     = errors.New("用户名已被使用")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrProfileRequired    = errors.New("缺少该角色必需的注册资料")
	ErrUserNotFound       = errors.New("用户不存在")
)

type AuthService struct {
	userRepo     *repository.UserRepository
	memberRepo   *repository.MemberRepository
	trainerRepo  *repository.TrainerRepository
	emailService *email.Service
	cfg          *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	memberRepo *repository.MemberRepository,
	trainerRepo *repository.TrainerRepository,
	emailService *email.Service,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		memberRepo:   memberRepo,
		trainerRepo:  trainerRepo,
		emailService: emailService,
		cfg:          cfg,
	}
}

// Register 用户注册。按角色分三种形态：
// member 带会员资料，trainer 带教练资料，admin 只建账号。
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// 角色对应的资料必须齐全，先于一切写入校验
	switch req.Role {
	case model.RoleMember:
		if req.MemberProfile == nil {
			return nil, ErrProfileRequired
		}
	case model.RoleTrainer:
		if req.TrainerProfile == nil {
			return nil, ErrProfileRequired
		}
	}

	// 检查邮箱是否存在
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 检查用户名是否存在
	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}

	info := &dto.UserInfo{}
	displayName := req.Username

	switch req.Role {
	case model.RoleMember:
		member := &model.Member{
			Name:    req.MemberProfile.Name,
			Phone:   req.MemberProfile.Phone,
			Gender:  req.MemberProfile.Gender,
			Address: req.MemberProfile.Address,
		}
		if req.MemberProfile.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", req.MemberProfile.DateOfBirth)
			if err != nil {
				return nil, ErrProfileRequired
			}
			member.DateOfBirth = &dob
		}
		if err := s.memberRepo.CreateWithUser(user, member); err != nil {
			return nil, err
		}
		info.MemberID = member.ID
		displayName = member.Name

	case model.RoleTrainer:
		trainer := &model.Trainer{
			Name:            req.TrainerProfile.Name,
			Phone:           req.TrainerProfile.Phone,
			Specialization:  req.TrainerProfile.Specialization,
			ExperienceYears: req.TrainerProfile.ExperienceYears,
		}
		if err := s.trainerRepo.CreateWithUser(user, trainer); err != nil {
			return nil, err
		}
		info.TrainerID = trainer.ID
		displayName = trainer.Name

	default:
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	// 欢迎邮件尽力而为，发送失败不影响注册结果
	if s.emailService != nil {
		if err := s.emailService.SendWelcome(user.Email, displayName); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	s.fillUserInfo(info, user)
	return &dto.AuthResponse{
		Token: token,
		User:  info,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	info := &dto.UserInfo{}
	s.fillUserInfo(info, user)

	// 附带档案 ID，前端据此决定展示哪套界面
	switch user.Role {
	case model.RoleMember:
		if member, err := s.memberRepo.GetByUserID(user.ID); err == nil {
			info.MemberID = member.ID
		}
	case model.RoleTrainer:
		if trainer, err := s.trainerRepo.GetByUserID(user.ID); err == nil {
			info.TrainerID = trainer.ID
		}
	}

	return &dto.AuthResponse{
		Token: token,
		User:  info,
	}, nil
}

func (s *AuthService) fillUserInfo(info *dto.UserInfo, user *model.User) {
	info.ID = user.ID
	info.Username = user.Username
	info.Email = user.Email
	info.Role = user.Role
	if !user.CreatedAt.IsZero() {
		info.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
}
