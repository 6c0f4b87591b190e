package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/model/dto"
	"github.com/qs3c/gym_go_server/internal/pkg/pubsub"
	"github.com/qs3c/gym_go_server/internal/pkg/queue"
	"github.com/qs3c/gym_go_server/internal/repository"
)

var (
	ErrPaymentNotFound      = errors.New("支付记录不存在")
	ErrInvalidAmount        = errors.New("金额必须大于 0")
	ErrInvalidMethod        = errors.New("不支持的支付方式")
	ErrMembershipMismatch   = errors.New("会籍不属于该会员")
	ErrPaymentNotAccessible = errors.New("无权查看该支付记录")
)

type PaymentService struct {
	paymentRepo    *repository.PaymentRepository
	memberRepo     *repository.MemberRepository
	membershipRepo *repository.MembershipRepository
	receiptQueue   *queue.Queue
	publisher      *pubsub.Publisher
	cfg            *config.Config
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	memberRepo *repository.MemberRepository,
	membershipRepo *repository.MembershipRepository,
	receiptQueue *queue.Queue,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		paymentRepo:    paymentRepo,
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
		receiptQueue:   receiptQueue,
		publisher:      publisher,
		cfg:            cfg,
	}
}

// Create 记录一笔支付。所有校验先于任何写入；
// 请求可指定套餐名：amount 为零时从会员端价目表补齐，显式金额以请求为准。
func (s *PaymentService) Create(req *dto.CreatePaymentRequest) (*model.Payment, error) {
	amount := req.Amount
	if req.Plan != "" && amount == 0 {
		plan, ok := config.FindPlan(s.cfg.Plans.Member, req.Plan)
		if !ok {
			return nil, ErrUnknownPlan
		}
		amount = plan.Fee
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, ok := model.PaymentMethods[req.Method]; !ok {
		return nil, ErrInvalidMethod
	}

	if _, err := s.memberRepo.GetByID(req.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	// 关联会籍必须属于同一会员
	if req.MembershipID != nil {
		membership, err := s.membershipRepo.GetByID(*req.MembershipID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMembershipNotFound
			}
			return nil, err
		}
		if membership.MemberID != req.MemberID {
			return nil, ErrMembershipMismatch
		}
	}

	payment := &model.Payment{
		MemberID:     req.MemberID,
		MembershipID: req.MembershipID,
		Amount:       amount,
		Method:       req.Method,
		Status:       model.PaymentCompleted,
		PaidAt:       time.Now(),
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	// 通知是尽力而为：入队或广播失败不影响已落库的支付
	ctx := context.Background()
	if s.receiptQueue != nil {
		if err := s.receiptQueue.Push(ctx, &queue.ReceiptJob{
			PaymentID: payment.ID,
			MemberID:  payment.MemberID,
		}); err != nil {
			log.Printf("Failed to enqueue receipt job for payment %d: %v", payment.ID, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishEvent(ctx, &pubsub.EventMessage{
			Type:      pubsub.EventPaymentRecorded,
			MemberID:  payment.MemberID,
			PaymentID: payment.ID,
			Amount:    payment.Amount,
		}); err != nil {
			log.Printf("Failed to publish payment event for payment %d: %v", payment.ID, err)
		}
	}

	return payment, nil
}

// List 分页查询全部支付记录
func (s *PaymentService) List(page, pageSize int, status string) ([]model.Payment, int64, error) {
	return s.paymentRepo.List(page, pageSize, status)
}

// ListByMember 查询一个会员的全部支付记录
func (s *PaymentService) ListByMember(memberID int64) ([]model.Payment, error) {
	return s.paymentRepo.ListByMember(memberID)
}

// GetByID 查询单笔支付
func (s *PaymentService) GetByID(id int64) (*model.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// Receipt 按需生成收据，不落库。
// 收据编号由前缀、支付日期和支付 ID 拼成，对同一笔支付可重复生成且保持一致。
func (s *PaymentService) Receipt(paymentID int64) (*dto.ReceiptResponse, error) {
	payment, err := s.GetByID(paymentID)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(payment.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	// 未关联会籍、或会籍已被删除，类型记 N/A；其他查询错误照常上抛
	membershipType := "N/A"
	if payment.MembershipID != nil {
		membership, err := s.membershipRepo.GetByID(*payment.MembershipID)
		switch {
		case err == nil:
			membershipType = membership.Type
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	prefix := s.cfg.Receipt.Prefix
	if prefix == "" {
		prefix = "RCP"
	}

	return &dto.ReceiptResponse{
		ReceiptNumber:  fmt.Sprintf("%s-%s-%06d", prefix, payment.PaidAt.Format("20060102"), payment.ID),
		MemberName:     member.Name,
		Date:           payment.PaidAt.Format("2006-01-02"),
		Amount:         payment.Amount,
		Method:         payment.Method,
		Status:         payment.Status,
		MembershipType: membershipType,
	}, nil
}
