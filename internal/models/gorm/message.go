package gorm

import "time"

// Message is a directed note from one user to another.
// Timestamp is written once on insert and never updated.
type Message struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	SenderID    uint      `gorm:"column:sender_id;not null;index"`
	RecipientID uint      `gorm:"column:recipient_id;not null;index"`
	Subject     string    `gorm:"column:subject;type:varchar(255);not null"`
	Content     string    `gorm:"column:content;type:text;not null"`
	Timestamp   time.Time `gorm:"column:timestamp;autoCreateTime;index"`

	// Relationships
	Sender    *User             `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE"`
	Recipient *User             `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	Deletions []MessageDeletion `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// MessageDeletion hides a message from one party's inbox or sent list
type MessageDeletion struct {
	MessageID uint      `gorm:"column:message_id;primaryKey"`
	UserID    uint      `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (MessageDeletion) TableName() string {
	return "message_deletions"
}
