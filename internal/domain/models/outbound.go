package models

// OutboundMessageRequest is a staff-initiated WhatsApp message. When Command is
// set, e.g. "/quote tshirt=24 elements=2 dark", the recipient gets the reply to
// that command instead of Message.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required_without=Command"`
	Command    string `json:"command"`
	PreviewURL bool   `json:"preview_url"`
}
