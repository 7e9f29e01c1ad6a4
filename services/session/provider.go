// File: services/session/provider.go
package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"cursos/models"
	"cursos/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// contextKey holds the request's *models.Session once loaded (nil when anonymous).
const contextKey = "session"

// EventKind distinguishes session writes.
type EventKind int

const (
	EventSet EventKind = iota
	EventCleared
)

func (k EventKind) String() string {
	if k == EventCleared {
		return "cleared"
	}
	return "set"
}

// Event is delivered to subscribers after every session write.
type Event struct {
	Kind     EventKind
	Previous *models.Session
	Current  *models.Session
	Reason   string
	Ctx      context.Context
}

// Options configures the session cookie.
type Options struct {
	CookieName string
	MaxAge     int
	Secure     bool
}

// Provider is the single authority for reading and writing the session.
// Writes take effect for the rest of the current request and are broadcast to subscribers.
type Provider struct {
	codec *Codec
	opts  Options
	now   func() time.Time

	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(Event)
}

// NewProvider creates a Provider on top of codec.
func NewProvider(codec *Codec, opts Options) *Provider {
	if opts.CookieName == "" {
		opts.CookieName = "user"
	}
	return &Provider{
		codec:       codec,
		opts:        opts,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
}

// Subscribe registers fn for session events and returns a function that removes it.
func (p *Provider) Subscribe(fn func(Event)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *Provider) publish(e Event) {
	p.mu.RLock()
	subs := make([]func(Event), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.mu.RUnlock()
	for _, fn := range subs {
		fn(e)
	}
}

// Get returns the request's session or nil for anonymous visitors.
// Corrupt and expired cookies are cleared on first read.
func (p *Provider) Get(c *gin.Context) *models.Session {
	if v, ok := c.Get(contextKey); ok {
		s, _ := v.(*models.Session)
		return s
	}
	s, err := p.load(c)
	switch {
	case err == nil:
		c.Set(contextKey, s)
		return s
	case errors.Is(err, ErrNoSession):
		c.Set(contextKey, (*models.Session)(nil))
	default:
		utils.GetLogger().Info("Discarding session cookie", zap.Error(err))
		p.clear(c, nil, err.Error())
	}
	return nil
}

func (p *Provider) load(c *gin.Context) (*models.Session, error) {
	raw, err := c.Cookie(p.opts.CookieName)
	if err != nil || raw == "" {
		return nil, ErrNoSession
	}
	s, err := p.codec.Decode(raw)
	if err != nil {
		return nil, err
	}
	if s.Token == "" {
		return nil, ErrCorrupt
	}
	if utils.TokenExpired(s.Token, p.now()) {
		return nil, ErrExpired
	}
	return s, nil
}

// Set persists s in the cookie and makes it the request's session.
func (p *Provider) Set(c *gin.Context, s models.Session) error {
	value, err := p.codec.Encode(s)
	if err != nil {
		return err
	}
	prev := p.Get(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(p.opts.CookieName, value, p.opts.MaxAge, "/", "", p.opts.Secure, true)
	current := s
	c.Set(contextKey, &current)
	p.publish(Event{Kind: EventSet, Previous: prev, Current: &current, Ctx: c.Request.Context()})
	return nil
}

// Clear removes the session cookie; reason is passed to subscribers.
func (p *Provider) Clear(c *gin.Context, reason string) {
	prev := p.Get(c)
	p.clear(c, prev, reason)
}

func (p *Provider) clear(c *gin.Context, prev *models.Session, reason string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(p.opts.CookieName, "", -1, "/", "", p.opts.Secure, true)
	c.Set(contextKey, (*models.Session)(nil))
	p.publish(Event{Kind: EventCleared, Previous: prev, Reason: reason, Ctx: c.Request.Context()})
}

// LogEvents returns a subscriber that records session writes.
func LogEvents(logger *zap.Logger) func(Event) {
	return func(e Event) {
		fields := []zap.Field{zap.Stringer("event", e.Kind)}
		if e.Current != nil {
			fields = append(fields, zap.Int64("userID", e.Current.User.ID))
		} else if e.Previous != nil {
			fields = append(fields, zap.Int64("userID", e.Previous.User.ID))
		}
		if e.Reason != "" {
			fields = append(fields, zap.String("reason", e.Reason))
		}
		logger.Info("Session changed", fields...)
	}
}
