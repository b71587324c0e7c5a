package chathub

import (
	"errors"
	"log"
	"sync"

	"campuslink/backend/internal/apperr"
	"campuslink/backend/internal/chat"
	"campuslink/backend/internal/models"
)

// ManagerService is the realtime dispatcher: it owns the set of live
// connections, the presence table and the per-room subscription groups, and
// relays room events between participants.
//
// Register/unregister go through channels and are applied by the Run loop.
// Room events are dispatched synchronously from each client's read pump, so
// within a room the relay order of messages matches their persistence
// order. The subscription map is mutex-guarded because those pumps run
// concurrently.
type ManagerService struct {
	RegisterCh   chan Client
	UnregisterCh chan Client

	Chat     *chat.Service
	Presence *PresenceTracker

	mu      sync.RWMutex
	clients map[Client]struct{}
	rooms   map[string]map[Client]struct{}
}

// NewManagerService (ініціалізація хаба)
func NewManagerService(chatSvc *chat.Service) *ManagerService {
	return &ManagerService{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		Chat:         chatSvc,
		Presence:     NewPresenceTracker(),
		clients:      make(map[Client]struct{}),
		rooms:        make(map[string]map[Client]struct{}),
	}
}

// Run is the hub's main loop. It serializes connection registration and
// teardown and rebroadcasts the presence snapshot on every change.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.register(client)
		case client := <-m.UnregisterCh:
			m.unregister(client)
		}
	}
}

func (m *ManagerService) register(c Client) {
	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()

	m.Presence.Register(c.GetEmail(), c.GetConnID())
	m.broadcastPresence()
}

func (m *ManagerService) unregister(c Client) {
	m.mu.Lock()
	if _, ok := m.clients[c]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.clients, c)
	for roomID, subscribers := range m.rooms {
		delete(subscribers, c)
		if len(subscribers) == 0 {
			delete(m.rooms, roomID)
		}
	}
	m.mu.Unlock()

	m.Presence.Unregister(c.GetEmail(), c.GetConnID())
	c.Close()
	m.broadcastPresence()
}

// HandleEvent dispatches one inbound event from a connection. Called from
// the connection's read pump, so persistence and relay complete before the
// next frame of that connection is processed.
func (m *ManagerService) HandleEvent(c Client, ev models.InboundEvent) {
	switch ev.Event {
	case models.EventRoomJoin:
		m.handleJoin(c, ev.RoomID)
	case models.EventRoomTyping:
		m.handleTyping(c, ev)
	case models.EventRoomMessage:
		m.handleMessage(c, ev)
	case models.EventRoomSeen:
		m.handleSeen(c, ev.RoomID)
	default:
		log.Printf("Unknown event %q from client %s", ev.Event, c.GetEmail())
	}
}

// handleJoin subscribes the connection to the room's broadcast group, marks
// the room's messages seen and tells every subscriber - the joiner included,
// so its own sent bubbles flip to "seen" too.
func (m *ManagerService) handleJoin(c Client, roomID string) {
	if err := m.Chat.MarkSeen(roomID, c.GetEmail()); err != nil {
		m.sendError(c, roomID, err)
		return
	}

	m.mu.Lock()
	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[Client]struct{})
	}
	m.rooms[roomID][c] = struct{}{}
	m.mu.Unlock()

	m.broadcastToRoom(roomID, models.OutboundEvent{
		Event: models.EventRoomSeen,
		Data:  models.SeenPayload{RoomID: roomID, By: c.GetEmail()},
	}, nil)
}

// handleTyping relays the typing state to the other room subscribers only.
// Nothing is persisted and the sender never hears its own indicator.
func (m *ManagerService) handleTyping(c Client, ev models.InboundEvent) {
	m.broadcastToRoom(ev.RoomID, models.OutboundEvent{
		Event: models.EventRoomTyping,
		Data:  models.TypingPayload{RoomID: ev.RoomID, Email: c.GetEmail(), Typing: ev.Typing},
	}, c)
}

// handleMessage persists the message, relays it to the other subscribers
// and acknowledges the sender with the server-assigned id. A rejected or
// failed append is reported back to the sender instead of being dropped.
func (m *ManagerService) handleMessage(c Client, ev models.InboundEvent) {
	msg, err := m.Chat.Append(ev.RoomID, c.GetEmail(), ev.Content)
	if err != nil {
		m.sendError(c, ev.RoomID, err)
		return
	}

	m.broadcastToRoom(ev.RoomID, models.OutboundEvent{
		Event: models.EventRoomMessage,
		Data: models.MessagePayload{
			ID:        msg.ID,
			From:      msg.SenderEmail,
			RoomID:    msg.RoomID,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
			Seen:      msg.Seen,
		},
	}, c)

	m.send(c, models.OutboundEvent{
		Event: models.EventRoomAck,
		Data:  models.AckPayload{ID: msg.ID},
	})
}

// handleSeen marks the room seen and broadcasts the confirmation to every
// subscriber, the reader included.
func (m *ManagerService) handleSeen(c Client, roomID string) {
	if err := m.Chat.MarkSeen(roomID, c.GetEmail()); err != nil {
		m.sendError(c, roomID, err)
		return
	}
	m.broadcastToRoom(roomID, models.OutboundEvent{
		Event: models.EventRoomSeen,
		Data:  models.SeenPayload{RoomID: roomID, By: c.GetEmail()},
	}, nil)
}

// broadcastToRoom sends the event to every subscriber of the room except
// the excluded client (pass nil to include everyone).
func (m *ManagerService) broadcastToRoom(roomID string, event models.OutboundEvent, exclude Client) {
	m.mu.RLock()
	targets := make([]Client, 0, len(m.rooms[roomID]))
	for client := range m.rooms[roomID] {
		if client == exclude {
			continue
		}
		targets = append(targets, client)
	}
	m.mu.RUnlock()

	for _, client := range targets {
		m.send(client, event)
	}
}

// broadcastPresence pushes the current presence snapshot to every live
// connection.
func (m *ManagerService) broadcastPresence() {
	snapshot := m.Presence.Snapshot()
	event := models.OutboundEvent{Event: models.EventPresence, Data: snapshot}

	m.mu.RLock()
	targets := make([]Client, 0, len(m.clients))
	for client := range m.clients {
		targets = append(targets, client)
	}
	m.mu.RUnlock()

	for _, client := range targets {
		m.send(client, event)
	}
}

func (m *ManagerService) sendError(c Client, roomID string, err error) {
	log.Printf("ERROR: Event from %s in room %s rejected: %v", c.GetEmail(), roomID, err)
	m.send(c, models.OutboundEvent{
		Event: models.EventRoomError,
		Data:  models.ErrorPayload{RoomID: roomID, Error: publicError(err)},
	})
}

// send performs a non-blocking write to the client's channel. A client that
// stopped draining its channel loses events rather than stalling the hub.
func (m *ManagerService) send(c Client, event models.OutboundEvent) {
	select {
	case c.GetSendChannel() <- event:
	default:
		log.Printf("Dropping %s event for slow client %s", event.Event, c.GetEmail())
	}
}

// publicError maps internal failures to a client-safe string; store errors
// carry their cause in the server log only.
func publicError(err error) string {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return "validation failed"
	case errors.Is(err, apperr.ErrForbidden):
		return "not a member of this room"
	case errors.Is(err, apperr.ErrNotFound):
		return "room not found"
	default:
		return "server error, retry later"
	}
}
