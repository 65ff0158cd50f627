package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"psychcare-server/internal/middleware"
	"psychcare-server/internal/models"
	"psychcare-server/internal/utils"
)

// ChatHandler manages patient-doctor message threads.
type ChatHandler struct {
	DB *gorm.DB
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{DB: db}
}

// conversationForUser loads a conversation and checks the requesting
// user is one of its two participants.
func (h *ChatHandler) conversationForUser(c *gin.Context) (*models.ChatConversation, bool) {
	var conversation models.ChatConversation
	if err := h.DB.Preload("Patient").Preload("Doctor").
		First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Conversation not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if conversation.Patient.UserID != userID && conversation.Doctor.UserID != userID {
		utils.Forbidden(c, "You are not a participant in this conversation")
		return nil, false
	}

	return &conversation, true
}

// StartConversationRequest represents the request body for opening a thread.
type StartConversationRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
}

// StartConversation opens a thread between the authenticated patient
// and a doctor, or returns the existing one.
func (h *ChatHandler) StartConversation(c *gin.Context) {
	patient, ok := patientProfileFromContext(c, h.DB)
	if !ok {
		return
	}

	var req StartConversationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.DoctorProfile
	if err := h.DB.First(&doctor, "id = ? AND is_approved = ?", req.DoctorID, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var conversation models.ChatConversation
	err := h.DB.Where("patient_id = ? AND doctor_id = ?", patient.ID, doctor.ID).
		First(&conversation).Error
	switch {
	case err == nil:
		utils.Success(c, "Conversation fetched successfully", conversation)
		return
	case err != gorm.ErrRecordNotFound:
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	conversation = models.ChatConversation{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		LastMessageAt: time.Now(),
		IsActive:      true,
	}
	if err := h.DB.Create(&conversation).Error; err != nil {
		utils.InternalServerError(c, "Failed to start conversation: "+err.Error())
		return
	}

	utils.Created(c, "Conversation started successfully", conversation)
}

// ListConversations lists the authenticated user's threads, newest
// activity first.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	role, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Patient.User").Preload("Doctor.User").
		Where("is_active = ?", true).Order("last_message_at desc")

	switch role {
	case models.RolePatient:
		query = query.Joins("JOIN patient_profiles ON patient_profiles.id = chat_conversations.patient_id").
			Where("patient_profiles.user_id = ?", userID)
	case models.RoleDoctor:
		query = query.Joins("JOIN doctor_profiles ON doctor_profiles.id = chat_conversations.doctor_id").
			Where("doctor_profiles.user_id = ?", userID)
	default:
		utils.Forbidden(c, "Admins do not have conversations")
		return
	}

	var conversations []models.ChatConversation
	if err := query.Find(&conversations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch conversations: "+err.Error())
		return
	}

	utils.Success(c, "Conversations fetched successfully", conversations)
}

// GetMessages returns a conversation's messages in order and marks the
// other participant's messages as read.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	conversation, ok := h.conversationForUser(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	var messages []models.ChatMessage
	if err := h.DB.Preload("Sender").
		Where("conversation_id = ?", conversation.ID).
		Order("created_at").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch messages: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.ChatMessage{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversation.ID, userID, false).
		Update("is_read", true).Error; err != nil {
		utils.InternalServerError(c, "Failed to mark messages read: "+err.Error())
		return
	}

	utils.Success(c, "Messages fetched successfully", messages)
}

// SendMessageRequest represents the message body.
type SendMessageRequest struct {
	MessageText string                 `json:"messageText" binding:"required"`
	MessageType models.ChatMessageType `json:"messageType"`
}

// SendMessage appends a message to a conversation the user belongs to
// and bumps the thread's activity timestamp.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	conversation, ok := h.conversationForUser(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.MessageType == "" {
		req.MessageType = models.ChatMessageText
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	message := models.ChatMessage{
		ConversationID: conversation.ID,
		SenderID:       userID,
		MessageText:    req.MessageText,
		MessageType:    req.MessageType,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(conversation).Update("last_message_at", time.Now()).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to send message: "+err.Error())
		return
	}

	utils.Created(c, "Message sent successfully", message)
}
