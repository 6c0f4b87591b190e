package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/qs3c/gym_go_server/config"
	"github.com/qs3c/gym_go_server/internal/model/dto"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendReceipt 发送缴费收据邮件
func (s *Service) SendReceipt(to string, receipt *dto.ReceiptResponse) error {
	subject := fmt.Sprintf("缴费收据 %s - 健身房管理平台", receipt.ReceiptNumber)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">缴费收据</h2>
        <p>%s 您好，</p>
        <p>您的缴费已记录，收据信息如下：</p>
        <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">收据编号</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">日期</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">金额</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%d Ks</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">支付方式</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">状态</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
            <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">会籍类型</td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
        </table>
        <p>感谢您的支持，祝训练愉快！</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, receipt.MemberName, receipt.ReceiptNumber, receipt.Date, receipt.Amount,
		receipt.Method, receipt.Status, receipt.MembershipType)

	return s.sendHTML(to, subject, body)
}

// SendWelcome 发送注册欢迎邮件
func (s *Service) SendWelcome(to, name string) error {
	subject := "欢迎加入 - 健身房管理平台"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">欢迎加入！</h2>
        <p>您好，%s！</p>
        <p>您的账号已创建成功。现在您可以：</p>
        <ul>
            <li>购买会籍套餐并在线缴费</li>
            <li>查看缴费记录和收据</li>
            <li>入场签到</li>
        </ul>
        <p>祝训练愉快！</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, name)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
