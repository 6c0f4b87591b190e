package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/pkg/email"
	"github.com/qs3c/gym_go_server/internal/pkg/pubsub"
	"github.com/qs3c/gym_go_server/internal/pkg/queue"
	"github.com/qs3c/gym_go_server/internal/repository"
	"github.com/qs3c/gym_go_server/internal/service"
)

// Notifier 收据通知处理器：消费支付入队任务，生成收据并邮件发给会员
type Notifier struct {
	paymentService *service.PaymentService
	memberRepo     *repository.MemberRepository
	userRepo       *repository.UserRepository
	emailService   *email.Service
	publisher      *pubsub.Publisher
	cfg            *config.Config
}

func NewNotifier(
	paymentService *service.PaymentService,
	memberRepo *repository.MemberRepository,
	userRepo *repository.UserRepository,
	emailService *email.Service,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *Notifier {
	return &Notifier{
		paymentService: paymentService,
		memberRepo:     memberRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		publisher:      publisher,
		cfg:            cfg,
	}
}

// Process 处理一条收据任务
func (n *Notifier) Process(ctx context.Context, job *queue.ReceiptJob) error {
	receipt, err := n.paymentService.Receipt(job.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to build receipt for payment %d: %w", job.PaymentID, err)
	}

	member, err := n.memberRepo.GetByID(job.MemberID)
	if err != nil {
		return fmt.Errorf("failed to get member %d: %w", job.MemberID, err)
	}

	user, err := n.userRepo.GetByID(member.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user for member %d: %w", job.MemberID, err)
	}

	if n.emailService != nil && user.Email != "" {
		if err := n.emailService.SendReceipt(user.Email, receipt); err != nil {
			return fmt.Errorf("failed to send receipt %s: %w", receipt.ReceiptNumber, err)
		}
	}

	// 广播是尽力而为，发信成功后不再因广播失败重试
	if n.publisher != nil {
		if err := n.publisher.PublishEvent(ctx, &pubsub.EventMessage{
			Type:      pubsub.EventReceiptSent,
			MemberID:  job.MemberID,
			PaymentID: job.PaymentID,
			Amount:    receipt.Amount,
		}); err != nil {
			log.Printf("Failed to publish receipt event for payment %d: %v", job.PaymentID, err)
		}
	}

	log.Printf("Receipt %s sent for payment %d", receipt.ReceiptNumber, job.PaymentID)
	return nil
}
