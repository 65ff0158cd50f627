package models

import (
	"time"
)

// ChatMessageType represents the type of a chat message
type ChatMessageType string

const (
	ChatMessageText  ChatMessageType = "text"
	ChatMessageFile  ChatMessageType = "file"
	ChatMessageImage ChatMessageType = "image"
)

// ChatConversation is a thread between one patient and one doctor.
type ChatConversation struct {
	BaseModel
	PatientID     string    `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID      string    `gorm:"size:36;index;not null" json:"doctorId"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`

	// Relations
	Patient  PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
	Doctor   DoctorProfile  `gorm:"foreignKey:DoctorID" json:"-"`
	Messages []ChatMessage  `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"-"`
}

// ChatMessage is a single message inside a conversation.
type ChatMessage struct {
	BaseModel
	ConversationID string          `gorm:"size:36;index;not null" json:"conversationId"`
	SenderID       string          `gorm:"size:36;index;not null" json:"senderId"`
	MessageText    string          `gorm:"type:text;not null" json:"messageText"`
	IsRead         bool            `gorm:"default:false" json:"isRead"`
	MessageType    ChatMessageType `gorm:"size:20;default:'text'" json:"messageType"`

	// Relations
	Conversation ChatConversation `gorm:"foreignKey:ConversationID" json:"-"`
	Sender       User             `gorm:"foreignKey:SenderID" json:"sender"`
}
