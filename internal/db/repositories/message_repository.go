package repositories

import (
	"context"
	"errors"
	"fmt"

	"pilotconnect/internal/apperrors"
	models "pilotconnect/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notDeletedFor = "messages.id NOT IN (SELECT message_id FROM message_deletions WHERE user_id = ?)"

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(msg).Error
}

// GetByID loads a message with both parties
func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message

	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		First(&msg, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: message %d", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}

	return &msg, nil
}

// ListInbox returns messages addressed to userID that userID has not deleted, newest first
func (r *MessageRepository) ListInbox(ctx context.Context, userID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("messages.recipient_id = ?", userID).
		Where(notDeletedFor, userID).
		Order("messages.timestamp DESC").
		Order("messages.id DESC").
		Find(&messages).Error
	return messages, err
}

// ListSent returns messages sent by userID that userID has not deleted, newest first
func (r *MessageRepository) ListSent(ctx context.Context, userID uint) ([]models.Message, error) {
	messages := []models.Message{}
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("messages.sender_id = ?", userID).
		Where(notDeletedFor, userID).
		Order("messages.timestamp DESC").
		Order("messages.id DESC").
		Find(&messages).Error
	return messages, err
}

// MarkDeleted hides a message for one user. Repeating it is harmless.
func (r *MessageRepository) MarkDeleted(ctx context.Context, messageID, userID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.MessageDeletion{MessageID: messageID, UserID: userID}).Error
}
