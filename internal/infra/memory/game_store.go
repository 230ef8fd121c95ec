package memory

import (
	"sync"

	"github.com/elianna-2004/kahoot/internal/app"
	"github.com/elianna-2004/kahoot/internal/domain"
)

// GameStore is the in-memory implementation of app.GameStore. Two maps back
// the registry: id -> session and normalized code -> id. Both are guarded by
// one RWMutex, independent of the per-game serialization inside sessions.
type GameStore struct {
	mu     sync.RWMutex
	byID   map[string]*app.Session
	byCode map[string]string
}

func NewGameStore() *GameStore {
	return &GameStore{
		byID:   make(map[string]*app.Session),
		byCode: make(map[string]string),
	}
}

func (s *GameStore) Put(session *app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byCode[session.Code()]; taken {
		return domain.ErrCodeInUse
	}
	s.byID[session.ID()] = session
	s.byCode[session.Code()] = session.ID()
	return nil
}

func (s *GameStore) GetByID(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byID[id]
	return session, ok
}

func (s *GameStore) GetByCode(code string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, false
	}
	session, ok := s.byID[id]
	return session, ok
}

// Retire frees the code for reuse while keeping the session reachable by id.
// Calling it twice is harmless.
func (s *GameStore) Retire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byID[id]
	if !ok {
		return
	}
	mapped, ok := s.byCode[session.Code()]
	if ok && mapped == id {
		delete(s.byCode, session.Code())
	}
}

func (s *GameStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.byID[id]
	if !ok {
		return
	}
	if mapped, ok := s.byCode[session.Code()]; ok && mapped == id {
		delete(s.byCode, session.Code())
	}
	delete(s.byID, id)
}
