package main

import (
	"sync"
)

// Room is one shared-viewing session: exactly one owner, a set of member
// connections keyed by connection id, and the content URL fixed at
// creation.
type Room struct {
	Code       string
	OwnerID    string
	ContentURL string

	lock    sync.RWMutex
	members map[string]*Conn
}

func NewRoom(code string, owner *Conn, contentURL string) *Room {
	return &Room{
		Code:       code,
		OwnerID:    owner.ID(),
		ContentURL: contentURL,
		members:    map[string]*Conn{owner.ID(): owner},
	}
}

func (r *Room) AddMember(c *Conn) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.members[c.ID()] = c
}

func (r *Room) RemoveMember(id string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	delete(r.members, id)
}

func (r *Room) MemberCount() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.members)
}

func (r *Room) Members() []*Conn {
	r.lock.RLock()
	defer r.lock.RUnlock()
	members := make([]*Conn, 0, len(r.members))
	for _, c := range r.members {
		members = append(members, c)
	}
	return members
}

// Broadcast sends payload to every member whose id is not excludeID.
// Each send is independent and best-effort.
func (r *Room) Broadcast(payload []byte, excludeID string) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	for id, member := range r.members {
		if id == excludeID {
			continue
		}
		member.Send(payload)
	}
}

type Store struct {
	lock  sync.RWMutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

func (s *Store) Get(code string) (*Room, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	room, exists := s.rooms[code]
	return room, exists
}

func (s *Store) Remove(code string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.rooms, code)
}

// Create inserts a new room owned by owner, retrying code generation on
// the unlikely collision.
func (s *Store) Create(owner *Conn, contentURL string) *Room {
	s.lock.Lock()
	defer s.lock.Unlock()
	var code string
	for {
		code = GenerateRandomCode()
		if _, exists := s.rooms[code]; !exists {
			break
		}
	}
	room := NewRoom(code, owner, contentURL)
	s.rooms[code] = room
	return room
}

// ContentURL is the read-only lookup the page-render layer uses.
func (s *Store) ContentURL(code string) (string, bool) {
	room, exists := s.Get(code)
	if !exists {
		return "", false
	}
	return room.ContentURL, true
}
