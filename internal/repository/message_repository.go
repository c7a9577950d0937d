package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pharus/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// Conversation returns the full bidirectional history between two users,
// ordered by creation time ascending.
func (r *MessageRepository) Conversation(ctx context.Context, a, b uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// MarkConversationRead flips the read flag on every unread message from
// sender to receiver in one batch and reports how many rows it touched.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// UnreadCounts returns the number of unread messages per sender for a receiver.
func (r *MessageRepository) UnreadCounts(ctx context.Context, receiverID uuid.UUID) (map[uuid.UUID]int, error) {
	var rows []struct {
		SenderID uuid.UUID
		Count    int
	}
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Select("sender_id, COUNT(*) as count").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.SenderID] = row.Count
	}
	return counts, nil
}
