package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"pilotconnect/internal/apperrors"
	"pilotconnect/internal/constants"
	"pilotconnect/internal/db/repositories"
	"pilotconnect/internal/logging"
	"pilotconnect/internal/metrics"
	"pilotconnect/internal/models/dtos"
	models "pilotconnect/internal/models/gorm"
)

type MessageService struct {
	messages *repositories.MessageRepository
	users    *repositories.UserRepositoryGORM
	metrics  *metrics.MetricsRegistry
}

func NewMessageService(
	messages *repositories.MessageRepository,
	users *repositories.UserRepositoryGORM,
	metricsReg *metrics.MetricsRegistry,
) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		metrics:  metricsReg,
	}
}

// Send delivers a message. Sending to yourself is allowed.
func (s *MessageService) Send(ctx context.Context, senderID uint, req dtos.SendMessageRequest) (*models.Message, error) {
	subject, content, err := validateMessage(req.Subject, req.Content)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: recipient %d", apperrors.ErrNotFound, req.RecipientID)
	}

	return s.create(ctx, senderID, req.RecipientID, subject, content)
}

// Reply answers the sender of messageID. An empty subject becomes "Re: <original>".
func (s *MessageService) Reply(ctx context.Context, senderID, messageID uint, req dtos.ReplyMessageRequest) (*models.Message, error) {
	original, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	subject := req.Subject
	if strings.TrimSpace(subject) == "" {
		subject = constants.ReplySubjectLabel + original.Subject
		if r := []rune(subject); len(r) > constants.MaxSubjectLength {
			subject = string(r[:constants.MaxSubjectLength])
		}
	}

	subject, content, err := validateMessage(subject, req.Content)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, senderID, original.SenderID, subject, content)
}

func (s *MessageService) ListInbox(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messages.ListInbox(ctx, userID)
}

func (s *MessageService) ListSent(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.messages.ListSent(ctx, userID)
}

// SoftDeleteFor hides the message from userID only. Unknown messages and
// messages userID is not a party to are ignored.
func (s *MessageService) SoftDeleteFor(ctx context.Context, userID, messageID uint) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if msg.SenderID != userID && msg.RecipientID != userID {
		return nil
	}
	return s.messages.MarkDeleted(ctx, messageID, userID)
}

func (s *MessageService) create(ctx context.Context, senderID, recipientID uint, subject, content string) (*models.Message, error) {
	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Content:     content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.metrics.MessagesSentTotal.Inc()
	logging.Debug("Message sent", "message_id", msg.ID, "sender_id", senderID, "recipient_id", recipientID)

	return s.messages.GetByID(ctx, msg.ID)
}

func validateMessage(subject, content string) (string, string, error) {
	subject = strings.TrimSpace(subject)
	switch {
	case subject == "":
		return "", "", fmt.Errorf("%w: subject is required", apperrors.ErrValidation)
	case utf8.RuneCountInString(subject) > constants.MaxSubjectLength:
		return "", "", fmt.Errorf("%w: subject is longer than %d characters", apperrors.ErrValidation, constants.MaxSubjectLength)
	case strings.TrimSpace(content) == "":
		return "", "", fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}
	return subject, content, nil
}
