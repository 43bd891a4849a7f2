package main

import (
	"encoding/json"
	"fmt"
)

// Router owns every Room Store mutation: it parses inbound frames,
// dispatches them to the host/join/controls handlers, and runs the
// disconnect lifecycle. The page-render layer only ever reads the store.
type Router struct {
	store   *Store
	baseURL string
}

func NewRouter(store *Store, baseURL string) *Router {
	return &Router{store: store, baseURL: baseURL}
}

func (rt *Router) WatchURL(roomCode string) string {
	return fmt.Sprintf("%v/watch?room=%v", rt.baseURL, roomCode)
}

// HandleFrame processes one inbound frame to completion. Malformed
// frames are logged and dropped; the connection stays open.
func (rt *Router) HandleFrame(c *Conn, frame []byte) {
	message, err := ParseMessage(frame)
	if err != nil {
		LogBadFrame(c.ID(), err)
		return
	}
	switch m := message.(type) {
	case HostMessage:
		rt.handleHost(c, m)
	case JoinMessage:
		rt.handleJoin(c, m)
	case ControlsMessage:
		rt.handleControls(c, m)
	}
}

func (rt *Router) handleHost(c *Conn, m HostMessage) {
	room := rt.store.Create(c, m.Room.MovieURL)
	c.SetRoom(room.Code)
	broadcastConnectionCount(room)
	c.SendJSON(NewURLMessage(rt.WatchURL(room.Code)))
	LogCreatedRoom(room.Code, c.ID())
}

func (rt *Router) handleJoin(c *Conn, m JoinMessage) {
	room, exists := rt.store.Get(m.Room.Name)
	if !exists {
		c.SendJSON(NewErrorMessage("room does not exist!"))
		return
	}
	room.AddMember(c)
	c.SetRoom(room.Code)
	broadcastConnectionCount(room)
	LogJoinedRoom(room.Code, c.ID())
}

func (rt *Router) handleControls(c *Conn, m ControlsMessage) {
	room, exists := rt.store.Get(c.Room())
	if !exists {
		c.SendJSON(NewErrorMessage("room does not exist!"))
		return
	}
	// Only the owner drives playback; anyone else is silently dropped
	// so room structure never leaks to non-owners.
	if room.OwnerID != c.ID() {
		return
	}
	room.Broadcast(m.Raw, c.ID())
}

// HandleClose runs the disconnect lifecycle for a closed connection.
// An owner closing tears the whole room down: remaining members are told
// the room is gone and their room pointers are cleared before deletion.
func (rt *Router) HandleClose(c *Conn) {
	roomCode := c.Room()
	if roomCode == "" {
		return
	}
	room, exists := rt.store.Get(roomCode)
	if !exists {
		return
	}
	if room.OwnerID == c.ID() {
		closed, _ := json.Marshal(NewRoomClosedMessage())
		room.Broadcast(closed, c.ID())
		for _, member := range room.Members() {
			member.ClearRoom()
		}
		rt.store.Remove(room.Code)
		LogRemovedRoom(room.Code)
		return
	}
	room.RemoveMember(c.ID())
	c.ClearRoom()
	broadcastConnectionCount(room)
	LogLeftRoom(room.Code, c.ID())
}

func broadcastConnectionCount(room *Room) {
	encoded, _ := json.Marshal(NewConnectionMessage(room.MemberCount()))
	room.Broadcast(encoded, "")
}
