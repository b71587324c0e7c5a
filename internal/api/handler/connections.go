package handler

import (
	"log"
	"net/http"

	"campuslink/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type connectionTargetRequest struct {
	TargetID string `json:"targetId"`
}

// resolveTarget loads the user behind targetId and rejects self-references.
func (h *Handler) resolveTarget(c *gin.Context, targetID string) *models.User {
	email := c.GetString("email")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetId is required"})
		return nil
	}
	target, err := h.Storage.GetUserByID(targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return nil
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil
	}
	if target.Email == email {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot connect with yourself"})
		return nil
	}
	return target
}

// RequestConnection files a pending connection request towards the target.
func (h *Handler) RequestConnection(c *gin.Context) {
	email := c.GetString("email")
	var req connectionTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	target := h.resolveTarget(c, req.TargetID)
	if target == nil {
		return
	}

	existing, err := h.Storage.FindConnection(email, target.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if existing != nil && existing.Status != models.ConnectionRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Connection already exists or is pending"})
		return
	}

	conn := &models.Connection{FromEmail: email, ToEmail: target.Email, Status: models.ConnectionPending}
	if existing != nil {
		// A rejected pair may try again; reuse the row.
		conn = existing
		conn.FromEmail = email
		conn.ToEmail = target.Email
		conn.Status = models.ConnectionPending
	}
	if err := h.Storage.SaveConnection(conn); err != nil {
		log.Printf("ERROR: Failed to save connection %s -> %s: %v", email, target.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Connection request sent"})
}

type respondConnectionRequest struct {
	TargetID string `json:"targetId"`
	Action   string `json:"action"` // "accept" або "reject"
}

// RespondConnection lets the recipient of a pending request accept or
// reject it.
func (h *Handler) RespondConnection(c *gin.Context) {
	email := c.GetString("email")
	var req respondConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Action != "accept" && req.Action != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be accept or reject"})
		return
	}
	target := h.resolveTarget(c, req.TargetID)
	if target == nil {
		return
	}

	conn, err := h.Storage.FindConnection(email, target.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if conn == nil || conn.Status != models.ConnectionPending {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending request found"})
		return
	}
	if conn.ToEmail != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the recipient may respond"})
		return
	}

	conn.Status = models.ConnectionAccepted
	if req.Action == "reject" {
		conn.Status = models.ConnectionRejected
	}
	if err := h.Storage.SaveConnection(conn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": conn.Status})
}

// WithdrawConnection removes a pending request the caller sent.
func (h *Handler) WithdrawConnection(c *gin.Context) {
	email := c.GetString("email")
	var req connectionTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	target := h.resolveTarget(c, req.TargetID)
	if target == nil {
		return
	}

	conn, err := h.Storage.FindConnection(email, target.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if conn == nil || conn.Status != models.ConnectionPending || conn.FromEmail != email {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending request found"})
		return
	}
	if err := h.Storage.DeleteConnection(conn.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request withdrawn"})
}

// ConnectionStatus reports the relationship between the caller and the
// target: none, pending (sent/received) or accepted.
func (h *Handler) ConnectionStatus(c *gin.Context) {
	email := c.GetString("email")
	target := h.resolveTarget(c, c.Param("id"))
	if target == nil {
		return
	}

	conn, err := h.Storage.FindConnection(email, target.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if conn == nil || conn.Status == models.ConnectionRejected {
		c.JSON(http.StatusOK, gin.H{"status": "none"})
		return
	}

	direction := "sent"
	if conn.ToEmail == email {
		direction = "received"
	}
	c.JSON(http.StatusOK, gin.H{"status": conn.Status, "direction": direction})
}

// ListConnections returns the caller's accepted connections with the
// counterpart's public fields.
func (h *Handler) ListConnections(c *gin.Context) {
	email := c.GetString("email")
	conns, err := h.Storage.ListConnections(email, models.ConnectionAccepted)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	type partner struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	partners := make([]partner, 0, len(conns))
	for _, conn := range conns {
		other := conn.FromEmail
		if other == email {
			other = conn.ToEmail
		}
		user, err := h.Storage.GetUserByEmail(other)
		if err != nil || user == nil {
			continue
		}
		partners = append(partners, partner{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
	}
	c.JSON(http.StatusOK, gin.H{"connections": partners})
}

// PendingConnections returns the caller's pending requests, split into
// sent and received.
func (h *Handler) PendingConnections(c *gin.Context) {
	email := c.GetString("email")
	conns, err := h.Storage.ListConnections(email, models.ConnectionPending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	sent := make([]models.Connection, 0)
	received := make([]models.Connection, 0)
	for _, conn := range conns {
		if conn.FromEmail == email {
			sent = append(sent, conn)
		} else {
			received = append(received, conn)
		}
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "received": received})
}
