package dto

// SendMessageRequest represents a direct message payload
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// BroadcastRequest represents an admin broadcast to all clients
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
