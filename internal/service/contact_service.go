package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/repository"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// ContactAccepted is the message returned after a submission is stored.
const ContactAccepted = "Data byla úspěšně uložena! E-mail bude brzy odeslán."

var (
	contactNamePattern  = regexp.MustCompile(`^[A-Za-zА-Яа-яЁёІіЇїЄєČčĎďĚěŇňŘřŠšŤťŮůŽžÁáÉéÍíÓóÚúÝý' -]+$`)
	contactEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPhonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message"`
}

// ContactService stores contact form submissions and announces them.
type ContactService struct {
	submissions repository.Collection[domain.ContactSubmission]
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

func NewContactService(submissions repository.Collection[domain.ContactSubmission], dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{submissions: submissions, dispatcher: dispatcher, logger: logger}
}

// Submit validates and persists a submission, then publishes
// contact.submitted. Notification delivery is not awaited.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.ContactSubmission, error) {
	if err := validateContact(in); err != nil {
		return nil, err
	}

	sub := &domain.ContactSubmission{Name: in.Name, Email: in.Email, Phone: in.Phone, Message: in.Message}
	if err := s.submissions.Insert(ctx, sub); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("contact submission stored", zap.String("submission_id", sub.ID))

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventContactSubmitted, events.ContactSubmittedPayload{Submission: *sub})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("publish contact.submitted failed", zap.Error(err), zap.String("submission_id", sub.ID))
		}
	}
	return sub, nil
}

func validateContact(in ContactInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Phone) == "" || strings.TrimSpace(in.Message) == "" {
		return apperrors.NewValidationError("Jméno, e-mail, telefon a zpráva jsou povinné!", nil)
	}
	if !contactNamePattern.MatchString(in.Name) {
		return apperrors.NewValidationError("Neplatný formát jména!", map[string]any{"name": "invalid format"})
	}
	if !contactEmailPattern.MatchString(in.Email) {
		return apperrors.NewValidationError("Neplatný formát e-mailu!", map[string]any{"email": "invalid format"})
	}
	if !contactPhonePattern.MatchString(in.Phone) {
		return apperrors.NewValidationError("Neplatný formát telefonního čísla!", map[string]any{"phone": "invalid format"})
	}
	return nil
}
