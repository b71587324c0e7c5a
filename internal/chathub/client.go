package chathub

import "campuslink/backend/internal/models"

// Client is the interface for one live connection to the hub. It abstracts
// the underlying transport so the ManagerService can manage connections
// uniformly (the production implementation is WebSocketClient; tests use a
// mock).
type Client interface {
	// GetEmail returns the authenticated identity behind the connection.
	GetEmail() string
	// GetConnID returns the unique handle of this particular connection.
	// One identity may hold several handles (multiple tabs).
	GetConnID() string

	// GetSendChannel returns the channel the hub writes outbound events to.
	GetSendChannel() chan<- models.OutboundEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close tears down the underlying transport; the pumps exit on their own.
	Close()
}
