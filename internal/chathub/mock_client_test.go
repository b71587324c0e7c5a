package chathub_test

import "campuslink/backend/internal/models"

// MockClient implements chathub.Client. Everything the hub sends to it is
// readable from RecvChannel.
type MockClient struct {
	email       string
	connID      string
	closed      bool
	RecvChannel chan models.OutboundEvent
}

func newMockClient(email, connID string) *MockClient {
	return &MockClient{
		email:       email,
		connID:      connID,
		RecvChannel: make(chan models.OutboundEvent, 16),
	}
}

func (c *MockClient) GetEmail() string {
	return c.email
}

func (c *MockClient) GetConnID() string {
	return c.connID
}

func (c *MockClient) GetSendChannel() chan<- models.OutboundEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}
