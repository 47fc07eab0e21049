package services

import (
	"time"

	"github.com/clientdesk/portal/dto"
	"github.com/clientdesk/portal/models"
	"github.com/clientdesk/portal/repositories"
	"github.com/clientdesk/portal/utils"
)

// UserLookup is the slice of the user repository the message service needs
type UserLookup interface {
	FindByID(id string) (models.User, error)
}

// MessageService handles direct and broadcast messaging between the studio
// and its clients
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    UserLookup
}

// NewMessageService creates a new message service instance
func NewMessageService() *MessageService {
	return &MessageService{
		messageRepo: repositories.NewMessageRepository(),
		userRepo:    repositories.NewUserRepository(),
	}
}

// Send creates a direct message to a single recipient
func (s *MessageService) Send(senderID string, req dto.SendMessageRequest) (models.Message, error) {
	if _, err := s.userRepo.FindByID(req.RecipientID); err != nil {
		return models.Message{}, utils.NewValidationError("recipient not found")
	}

	recipientID := req.RecipientID
	message := models.Message{
		SenderID:    senderID,
		RecipientID: &recipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}

	return s.messageRepo.Create(message)
}

// Broadcast creates a message visible to every client. Admin only.
func (s *MessageService) Broadcast(senderID string, isAdmin bool, req dto.BroadcastRequest) (models.Message, error) {
	if !isAdmin {
		return models.Message{}, utils.NewPermissionError("only admins can broadcast")
	}

	message := models.Message{
		SenderID: senderID,
		Subject:  req.Subject,
		Body:     req.Body,
	}

	return s.messageRepo.Create(message)
}

// Inbox retrieves messages addressed to the user plus all broadcasts
func (s *MessageService) Inbox(userID string) ([]models.Message, error) {
	return s.messageRepo.FindInbox(userID)
}

// Sent retrieves messages authored by the user
func (s *MessageService) Sent(userID string) ([]models.Message, error) {
	return s.messageRepo.FindSent(userID)
}

// MarkRead records that the recipient read a direct message. Broadcasts and
// other users' messages cannot be marked.
func (s *MessageService) MarkRead(userID string, messageID string) error {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		return err
	}

	if message.RecipientID == nil || *message.RecipientID != userID {
		return utils.NewPermissionError("you can only mark your own messages read")
	}

	return s.messageRepo.MarkRead(messageID, time.Now())
}

// Delete removes a message. Only the sender or an admin may delete.
func (s *MessageService) Delete(userID string, isAdmin bool, messageID string) error {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		return err
	}

	if !isAdmin && message.SenderID != userID {
		return utils.NewPermissionError("you can only delete your own messages")
	}

	return s.messageRepo.Delete(messageID)
}
