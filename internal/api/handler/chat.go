package handler

import (
	"net/http"

	"campuslink/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetInbox returns every room the caller belongs to, ordered by last
// activity. Rooms without messages carry a null lastTime so the client can
// render "New".
func (h *Handler) GetInbox(c *gin.Context) {
	email := c.GetString("email")
	chats, err := h.Chat.Inbox(email)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

type startChatRequest struct {
	TargetID string  `json:"targetId"`
	PostID   *string `json:"postId"`
}

// StartChat creates or fetches the room between the caller and the target
// user. Idempotent: an existing room is returned, never duplicated.
func (h *Handler) StartChat(c *gin.Context) {
	email := c.GetString("email")
	var req startChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetId is required"})
		return
	}

	target, err := h.Storage.GetUserByID(req.TargetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if target.Email == email {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open a chat with yourself"})
		return
	}

	roomID, err := h.Chat.FindOrCreateRoom(email, target.Email, req.PostID)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": roomID})
}

// GetRoomHistory returns the full message list of a room, oldest first.
// Only room members may read it.
func (h *Handler) GetRoomHistory(c *gin.Context) {
	email := c.GetString("email")
	roomID := c.Param("roomId")

	messages, err := h.Chat.History(roomID, email)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type reportRequest struct {
	RoomID        string `json:"roomId"`
	ReportedEmail string `json:"reportedEmail"`
	Reason        string `json:"reason"`
	Severity      string `json:"severity"`
}

// ReportUser files a moderation report against a room counterpart.
func (h *Handler) ReportUser(c *gin.Context) {
	email := c.GetString("email")
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RoomID == "" || req.ReportedEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId and reportedEmail are required"})
		return
	}

	report := &models.Report{
		ReporterEmail: email,
		ReportedEmail: req.ReportedEmail,
		RoomID:        req.RoomID,
		Reason:        req.Reason,
		Severity:      req.Severity,
	}
	if err := h.Moderation.HandleReport(report); err != nil {
		c.JSON(errStatus(err), gin.H{"error": errMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report submitted"})
}
