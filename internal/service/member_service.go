package service

import (
	"errors"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/oss"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrPhotoTooLarge   = errors.New("图片超过大小限制")
	ErrPhotoBadFormat  = errors.New("不支持的图片格式")
	ErrStorageUnready  = errors.New("对象存储未配置")
	ErrMemberNoProfile = errors.New("该账号没有会员档案")
)

type MemberService struct {
	memberRepo *repository.MemberRepository
	ossClient  *oss.Client
	cfg        *config.Config
}

func NewMemberService(memberRepo *repository.MemberRepository, ossClient *oss.Client, cfg *config.Config) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		ossClient:  ossClient,
		cfg:        cfg,
	}
}

// List 分页查询会员
func (s *MemberService) List(page, pageSize int, search string) ([]model.Member, int64, error) {
	return s.memberRepo.List(page, pageSize, search)
}

// GetByID 查询单个会员
func (s *MemberService) GetByID(id int64) (*model.Member, error) {
	member, err := s.memberRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetByUserID 按账号查会员档案
func (s *MemberService) GetByUserID(userID int64) (*model.Member, error) {
	member, err := s.memberRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNoProfile
		}
		return nil, err
	}
	return member, nil
}

// UpdateProfile 更新会员资料
func (s *MemberService) UpdateProfile(memberID int64, req *dto.UpdateMemberRequest) (*model.Member, error) {
	if _, err := s.GetByID(memberID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}

	if len(fields) > 0 {
		if err := s.memberRepo.UpdateFields(memberID, fields); err != nil {
			return nil, err
		}
	}

	return s.memberRepo.GetByID(memberID)
}

// UploadPhoto 上传会员头像到对象存储并回写 URL
func (s *MemberService) UploadPhoto(memberID int64, filename string, data []byte) (string, error) {
	if s.ossClient == nil {
		return "", ErrStorageUnready
	}
	if _, err := s.GetByID(memberID); err != nil {
		return "", err
	}

	maxSize := s.cfg.Upload.MaxPhotoSize
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", ErrPhotoTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extAllowed(ext) {
		return "", ErrPhotoBadFormat
	}

	url, err := s.ossClient.UploadMemberPhoto(memberID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.memberRepo.UpdateFields(memberID, map[string]interface{}{"photo_url": url}); err != nil {
		return "", err
	}

	return url, nil
}

func (s *MemberService) extAllowed(ext string) bool {
	allowed := s.cfg.Upload.AllowedExtensions
	if len(allowed) == 0 {
		allowed = []string{".jpg", ".jpeg", ".png", ".webp"}
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
