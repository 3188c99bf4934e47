package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"itemsvault/internal/domain"
	"itemsvault/internal/repos"
	"itemsvault/internal/services"
)

// MockMailSender is a mock implementation of services.MailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendEnquiry(details *domain.EnquiryDetails, recipient string) bool {
	args := m.Called(details, recipient)
	return args.Bool(0)
}

func storedItem() domain.Item {
	return domain.Item{
		ID:          "item-1",
		Name:        "Trail Shoes",
		Type:        "Shoes",
		Description: "Lightly used",
	}
}

func TestEnquirySend_UsesStoredItemWhenNoDetails(t *testing.T) {
	repo := new(MockItemRepository)
	mailer := new(MockMailSender)
	svc := services.NewEnquiryService(repo, mailer)

	repo.On("Get", "item-1").Return(storedItem(), nil).Once()
	mailer.On("SendEnquiry", mock.MatchedBy(func(d *domain.EnquiryDetails) bool {
		return d.ItemName == "Trail Shoes" && d.ItemType == "Shoes"
	}), "buyer@example.com").Return(true).Once()

	err := svc.Send("item-1", "buyer@example.com", nil)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestEnquirySend_CallerDetailsWin(t *testing.T) {
	repo := new(MockItemRepository)
	mailer := new(MockMailSender)
	svc := services.NewEnquiryService(repo, mailer)

	details := &domain.EnquiryDetails{ItemName: "Custom Name", ItemType: "Other", Description: "asking about shipping"}

	repo.On("Get", "item-1").Return(storedItem(), nil).Once()
	mailer.On("SendEnquiry", details, "buyer@example.com").Return(true).Once()

	err := svc.Send("item-1", "buyer@example.com", details)

	assert.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestEnquirySend_NamelessDetailsForwardedUnchanged(t *testing.T) {
	repo := new(MockItemRepository)
	mailer := new(MockMailSender)
	svc := services.NewEnquiryService(repo, mailer)

	details := &domain.EnquiryDetails{ItemType: "Other", Description: "no name here"}

	repo.On("Get", "item-1").Return(storedItem(), nil).Once()
	// No substitution from the stored item: the notifier sees the nameless
	// details and rejects them.
	mailer.On("SendEnquiry", details, "buyer@example.com").Return(false).Once()

	err := svc.Send("item-1", "buyer@example.com", details)

	assert.ErrorIs(t, err, services.ErrSendFailed)
	mailer.AssertExpectations(t)
}

func TestEnquirySend_UnknownItem(t *testing.T) {
	repo := new(MockItemRepository)
	mailer := new(MockMailSender)
	svc := services.NewEnquiryService(repo, mailer)

	repo.On("Get", "ghost").Return(domain.Item{}, repos.ErrNotFound).Once()

	err := svc.Send("ghost", "buyer@example.com", nil)

	assert.ErrorIs(t, err, repos.ErrNotFound)
	mailer.AssertNotCalled(t, "SendEnquiry")
}

func TestEnquirySend_TransportRejection(t *testing.T) {
	repo := new(MockItemRepository)
	mailer := new(MockMailSender)
	svc := services.NewEnquiryService(repo, mailer)

	repo.On("Get", "item-1").Return(storedItem(), nil).Once()
	mailer.On("SendEnquiry", mock.Anything, mock.Anything).Return(false).Once()

	err := svc.Send("item-1", "buyer@example.com", nil)

	assert.ErrorIs(t, err, services.ErrSendFailed)
}

func TestEnquirySend_RepoFailurePropagates(t *testing.T) {
	repo := new(MockItemRepository)
	mailer := new(MockMailSender)
	svc := services.NewEnquiryService(repo, mailer)

	dbErr := errors.New("database locked")
	repo.On("Get", "item-1").Return(domain.Item{}, dbErr).Once()

	err := svc.Send("item-1", "buyer@example.com", nil)

	assert.ErrorIs(t, err, dbErr)
	mailer.AssertNotCalled(t, "SendEnquiry")
}
