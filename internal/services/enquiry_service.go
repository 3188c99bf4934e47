package services

import (
	"errors"

	"itemsvault/internal/domain"
)

// ErrSendFailed is returned when the mail transport rejects the enquiry.
// The underlying cause stays in the server logs.
var ErrSendFailed = errors.New("enquiry email could not be sent")

// MailSender is the notifier surface: true means the transport accepted the
// message, false means it did not. It never raises.
type MailSender interface {
	SendEnquiry(details *domain.EnquiryDetails, recipient string) bool
}

type EnquiryService struct {
	Items ItemRepository
	Mail  MailSender
}

func NewEnquiryService(items ItemRepository, mail MailSender) *EnquiryService {
	return &EnquiryService{Items: items, Mail: mail}
}

// Send looks the item up and emails an enquiry notification. Caller-supplied
// details are forwarded as-is; only a missing details object falls back to
// the stored item's fields, so nameless details still fail at the notifier.
func (s *EnquiryService) Send(itemID, email string, details *domain.EnquiryDetails) error {
	item, err := s.Items.Get(itemID)
	if err != nil {
		return err
	}

	payload := details
	if payload == nil {
		d := item.Details()
		payload = &d
	}

	if !s.Mail.SendEnquiry(payload, email) {
		return ErrSendFailed
	}
	return nil
}
