// Package mail sends the enquiry notification email. Failures never reach
// the caller as errors: every transport, auth or network problem is logged
// with full detail and collapsed into a false return.
package mail

import (
	"fmt"
	"html"
	stdlog "log"

	gomail "github.com/wneessen/go-mail"

	"itemsvault/internal/config"
	"itemsvault/internal/domain"
)

const fallbackRecipient = "admin@itemmanagement.com"

type Mailer struct {
	cfg config.Config

	// send delivers a built message; swapped out in tests.
	send func(*gomail.Msg) error
}

func New(cfg config.Config) *Mailer {
	m := &Mailer{cfg: cfg}
	m.send = m.dialAndSend
	return m
}

// SendEnquiry formats and sends an enquiry notification for the given item
// details. The recipient falls back to the configured admin address, then to
// a built-in default, when none is supplied.
func (m *Mailer) SendEnquiry(details *domain.EnquiryDetails, recipient string) bool {
	if details == nil || details.ItemName == "" {
		stdlog.Printf("[mail] invalid item details for enquiry")
		return false
	}

	if recipient == "" {
		recipient = m.cfg.AdminEmail
	}
	if recipient == "" {
		recipient = fallbackRecipient
	}

	msg, err := m.buildMessage(details, recipient)
	if err != nil {
		stdlog.Printf("[mail] building enquiry message: %v", err)
		return false
	}

	if err := m.send(msg); err != nil {
		stdlog.Printf("[mail] sending enquiry failed: recipient=%s item=%q err=%v",
			recipient, details.ItemName, err)
		return false
	}
	return true
}

func (m *Mailer) buildMessage(d *domain.EnquiryDetails, recipient string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(fmt.Sprintf("New Enquiry for Item: %s", d.ItemName))
	msg.SetBodyString(gomail.TypeTextPlain, plainBody(d))
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody(d))
	return msg, nil
}

func (m *Mailer) dialAndSend(msg *gomail.Msg) error {
	client, err := gomail.NewClient(m.cfg.SMTPHost,
		gomail.WithPort(m.cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.SMTPUser),
		gomail.WithPassword(m.cfg.SMTPPass),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSend(msg)
}

func plainBody(d *domain.EnquiryDetails) string {
	return fmt.Sprintf(`Item Enquiry Received
Item Name: %s
Item Type: %s
Description: %s
`, d.ItemName, d.ItemType, d.Description)
}

func htmlBody(d *domain.EnquiryDetails) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`<tr>
  <td style="padding:10px;border-bottom:1px solid #eee;"><strong>%s:</strong></td>
  <td style="padding:10px;border-bottom:1px solid #eee;">%s</td>
</tr>`, label, html.EscapeString(value))
	}
	return fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;">
<h2 style="color:#3B82F6;">Item Enquiry Received</h2>
<table style="width:100%%;border-collapse:collapse;">
%s
%s
%s
</table>
<p style="margin-top:20px;color:#666;">This is an automated enquiry notification.</p>
</div>`, row("Item Name", d.ItemName), row("Item Type", d.ItemType), row("Description", d.Description))
}
