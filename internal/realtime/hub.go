package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"equipecho/internal/access"
	"equipecho/internal/domain"
)

const sendBuffer = 16

// Event tells open dashboards that a table changed and should be refetched.
type Event struct {
	Type   string `json:"type"`
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

// tableSections maps a changed table to the page that shows it.
// Events for tables missing here reach nobody.
var tableSections = map[string]string{
	"equipments":              access.RouteEquipments,
	"maintenance_records":     access.RouteEquipments,
	"inventory_items":         access.RouteInventory,
	"users":                   access.RouteUsers,
	domain.LookupSectors:      access.RouteSettings,
	domain.LookupResponsibles: access.RouteSettings,
}

type client struct {
	userID int64
	role   domain.Role
	send   chan []byte
}

func (c *client) wants(table string) bool {
	section, ok := tableSections[table]
	return ok && access.CanAccess(section, c.role)
}

// Hub fans change events out to the connected clients allowed to see the table.
// A client whose buffer is full misses the event; the next one triggers its refetch anyway.
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.RWMutex
	dropped uint64
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) register(userID int64, role domain.Role) *client {
	c := &client{userID: userID, role: role, send: make(chan []byte, sendBuffer)}
	h.mutex.Lock()
	h.clients[c] = struct{}{}
	h.mutex.Unlock()
	return c
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Publish implements the services' EventPublisher.
func (h *Hub) Publish(table, action string, id int64) {
	payload, err := json.Marshal(Event{Type: "changed", Table: table, Action: action, ID: id})
	if err != nil {
		log.Printf("realtime_publish_error table=%s action=%s err=%v", table, action, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		if !c.wants(table) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			h.dropped++
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Dropped is the number of events skipped for slow clients.
func (h *Hub) Dropped() uint64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.dropped
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
