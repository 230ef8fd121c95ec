package redis

import (
	"context"
	"sync"
	"time"

	"github.com/elianna-2004/kahoot/internal/app"
	"github.com/elianna-2004/kahoot/internal/domain"
	"github.com/redis/go-redis/v9"
)

// GameStore is a Redis-aware implementation of app.GameStore.
// Notes:
//   - Session objects stay in a local map; a game has exactly one
//     authoritative owner process, and the engine's serialization lives
//     inside the session.
//   - Redis holds best-effort code reservation markers with a TTL, so stale
//     codes from a crashed process age out instead of lingering, and ops
//     tooling can see which codes are live.
type GameStore struct {
	client *redis.Client
	ttl    time.Duration

	mu     sync.RWMutex
	byID   map[string]*app.Session
	byCode map[string]string
}

func NewGameStore(client *redis.Client, ttl time.Duration) *GameStore {
	return &GameStore{
		client: client,
		ttl:    ttl,
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
	// best-effort reservation marker
	_ = s.client.Set(context.Background(), s.codeKey(session.Code()), session.ID(), s.ttl).Err()
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

func (s *GameStore) Retire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retireLocked(id)
}

func (s *GameStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retireLocked(id)
	delete(s.byID, id)
}

func (s *GameStore) retireLocked(id string) {
	session, ok := s.byID[id]
	if !ok {
		return
	}
	if mapped, ok := s.byCode[session.Code()]; ok && mapped == id {
		delete(s.byCode, session.Code())
		_ = s.client.Del(context.Background(), s.codeKey(session.Code())).Err()
	}
}

func (s *GameStore) codeKey(code string) string {
	return "game:code:" + code
}
