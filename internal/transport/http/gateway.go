package http

import (
	"log"
	"sync"

	"github.com/elianna-2004/kahoot/internal/app"
)

// outboundFrame is the wire shape of every server-to-client message.
type outboundFrame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Gateway is the fan-out boundary between session-emitted envelopes and live
// connections. It holds per-game routing (host connection plus playerID ->
// connection) and delivers best-effort: a slow or dead connection has its
// frame dropped rather than stalling anyone else. Within one Deliver call,
// frames reach each recipient in emission order.
type Gateway struct {
	mu    sync.RWMutex
	games map[string]*gameRoute
}

type gameRoute struct {
	host    *client
	players map[string]*client
}

func NewGateway() *Gateway {
	return &Gateway{games: make(map[string]*gameRoute)}
}

func (g *Gateway) BindHost(gameID string, c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routeLocked(gameID).host = c
}

func (g *Gateway) BindPlayer(gameID, playerID string, c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routeLocked(gameID).players[playerID] = c
}

// UnbindPlayer drops the connection reference; the player's state inside the
// session is untouched.
func (g *Gateway) UnbindPlayer(gameID, playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if route, ok := g.games[gameID]; ok {
		delete(route.players, playerID)
	}
}

func (g *Gateway) UnbindHost(gameID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if route, ok := g.games[gameID]; ok {
		route.host = nil
	}
}

// Empty reports whether no connections remain bound to the game.
func (g *Gateway) Empty(gameID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	route, ok := g.games[gameID]
	if !ok {
		return true
	}
	return route.host == nil && len(route.players) == 0
}

// Drop forgets the game's routing entirely.
func (g *Gateway) Drop(gameID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.games, gameID)
}

// Deliver fans envelopes out to their addressed connections. Payloads pass
// through untouched.
func (g *Gateway) Deliver(gameID string, envs []app.Envelope) {
	for _, env := range envs {
		frame := outboundFrame{Type: env.Event, Payload: env.Payload}
		for _, c := range g.recipients(gameID, env) {
			c.enqueue(frame)
		}
	}
}

func (g *Gateway) recipients(gameID string, env app.Envelope) []*client {
	g.mu.RLock()
	defer g.mu.RUnlock()

	route, ok := g.games[gameID]
	if !ok {
		return nil
	}

	var out []*client
	switch env.Scope {
	case app.ScopeHost:
		if route.host != nil {
			out = append(out, route.host)
		}
	case app.ScopePlayer:
		if c, ok := route.players[env.PlayerID]; ok {
			out = append(out, c)
		}
	case app.ScopePlayers:
		for _, c := range route.players {
			out = append(out, c)
		}
	case app.ScopeAll:
		if route.host != nil {
			out = append(out, route.host)
		}
		for _, c := range route.players {
			out = append(out, c)
		}
	default:
		log.Printf("gateway: unknown scope %d for event %s", env.Scope, env.Event)
	}
	return out
}

func (g *Gateway) routeLocked(gameID string) *gameRoute {
	route, ok := g.games[gameID]
	if !ok {
		route = &gameRoute{players: make(map[string]*client)}
		g.games[gameID] = route
	}
	return route
}
