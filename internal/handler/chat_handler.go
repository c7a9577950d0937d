package handler

import (
	"io"
	"net/http"
	"time"

	"pharus/internal/chat"
	"pharus/internal/model"
	"pharus/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	messageRepo *repository.MessageRepository
	userRepo    repository.UserRepositoryInterface
	tracker     *chat.Tracker
	hub         *chat.Hub
}

func NewChatHandler(
	messageRepo *repository.MessageRepository,
	userRepo repository.UserRepositoryInterface,
	tracker *chat.Tracker,
	hub *chat.Hub,
) *ChatHandler {
	return &ChatHandler{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		tracker:     tracker,
		hub:         hub,
	}
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
	Message    string `json:"message" binding:"required"`
}

type MessageResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

// ContactResponse is one entry of the contact directory.
type ContactResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Online bool   `json:"online"`
	Unread int    `json:"unread"`
}

func toMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID.String(),
		SenderID:   m.SenderID.String(),
		ReceiverID: m.ReceiverID.String(),
		Message:    m.Body,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

// Contacts lists every other user, online when active, with the pending
// unread count per sender.
func (h *ChatHandler) Contacts(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contacts"})
		return
	}

	counts, err := h.messageRepo.UnreadCounts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve unread counts"})
		return
	}

	resp := make([]ContactResponse, 0, len(users))
	for i := range users {
		if users[i].ID == userID {
			continue
		}
		resp = append(resp, ContactResponse{
			ID:     users[i].ID.String(),
			Name:   users[i].DisplayName(),
			Email:  users[i].Email,
			Online: users[i].Status == model.UserStatusActive,
			Unread: counts[users[i].ID],
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Conversation opens a contact's thread: full bidirectional history oldest
// first, one batch mark-read, and the unread counter drops to zero.
func (h *ChatHandler) Conversation(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	contactID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	messages, err := h.messageRepo.Conversation(c.Request.Context(), userID, contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	if _, err := h.messageRepo.MarkConversationRead(c.Request.Context(), contactID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages as read"})
		return
	}
	h.tracker.Open(userID, contactID)

	resp := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, toMessageResponse(&messages[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CloseConversation drops the open-conversation focus so later arrivals
// count as unread again.
func (h *ChatHandler) CloseConversation(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	h.tracker.Close(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Conversation closed"})
}

// MarkRead is the explicit mark-as-read action: one batch update plus the
// counter reset, without focusing the conversation.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	contactID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	updated, err := h.messageRepo.MarkConversationRead(c.Request.Context(), contactID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages as read"})
		return
	}
	h.tracker.Zero(userID, contactID)

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Send inserts the message, fans it out to the receiver's stream, and
// returns the reloaded conversation; there is no optimistic append.
func (h *ChatHandler) Send(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid receiver ID format"})
		return
	}

	receiver, err := h.userRepo.GetByID(c.Request.Context(), receiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if receiver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		return
	}

	// Доставка в открытую переписку сразу помечается прочитанной
	focused := h.tracker.Focused(receiverID, userID)

	msg := &model.Message{
		SenderID:   userID,
		ReceiverID: receiverID,
		Body:       req.Message,
		IsRead:     focused,
	}
	if err := h.messageRepo.Create(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Счётчик трогаем только после успешной записи
	if !focused {
		h.tracker.Increment(receiverID, userID)
	}

	h.hub.Publish(*msg)

	messages, err := h.messageRepo.Conversation(c.Request.Context(), userID, receiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	resp := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, toMessageResponse(&messages[i]))
	}
	c.JSON(http.StatusCreated, resp)
}

// Unread reports the badge total and per-sender counters.
func (h *ChatHandler) Unread(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	counts := h.tracker.Unread(userID)
	perSender := make(map[string]int, len(counts))
	for sender, n := range counts {
		perSender[sender.String()] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  h.tracker.Total(userID),
		"counts": perSender,
	})
}

// Stream is the realtime channel: an SSE stream of inserted messages
// addressed to the authenticated user. Counters re-seed from the store on
// every (re)connect, so a dropped stream loses no bookkeeping.
func (h *ChatHandler) Stream(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		return
	}

	counts, err := h.messageRepo.UnreadCounts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve unread counts"})
		return
	}
	h.tracker.Seed(userID, counts)

	messages, cancel := h.hub.Subscribe(userID)
	defer cancel()
	defer h.tracker.Close(userID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent("message", toMessageResponse(&msg))
			return true
		}
	})
}
