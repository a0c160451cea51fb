//go:build !wasm

package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tinywasm/unixid"
)

// Store keeps one Card per visitor in memory, keyed by a cookie. Nothing is
// written to disk.
type Store struct {
	cache  *cardCache
	config Config
	log    zerolog.Logger
	now    func() time.Time

	idMu sync.Mutex
	ids  idGenerator
}

type idGenerator interface {
	GetNewID() string
}

func NewStore(cfg Config) *Store {
	return &Store{
		cache:  newCardCache(),
		config: cfg.withDefaults(),
		log:    log.Logger,
		now:    time.Now,
	}
}

// WithLogger sets the logger handed to every new card.
func (s *Store) WithLogger(l zerolog.Logger) *Store {
	s.log = l
	return s
}

func (s *Store) CookieName() string { return s.config.CookieName }

// Len returns the number of live cards.
func (s *Store) Len() int { return s.cache.len() }

// With runs fn with the visitor's card locked. A card is created, and the
// cookie set on w, when the request carries no valid one. The card's expiry
// is pushed back on every call.
func (s *Store) With(w http.ResponseWriter, r *http.Request, fn func(c *Card) error) error {
	e, id := s.lookup(r)
	if e == nil {
		var err error
		if e, id, err = s.create(); err != nil {
			return err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.expiresAt = s.now().Unix() + int64(s.config.CardTTL)
	s.setCookie(w, id)
	return fn(e.card)
}

// entry returns the live entry stored under id. An expired entry is dropped.
func (s *Store) entry(id string) (*cardEntry, error) {
	e, ok := s.cache.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	expired := e.expiresAt < s.now().Unix()
	e.mu.Unlock()
	if expired {
		s.cache.delete(id)
		return nil, ErrSessionExpired
	}
	return e, nil
}

// PurgeExpired drops expired cards and returns how many were removed.
func (s *Store) PurgeExpired() int {
	return s.cache.purge(s.now().Unix())
}

// RunJanitor purges expired cards every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.PurgeExpired(); n > 0 {
				s.log.Debug().Int("purged", n).Msg("expired cards purged")
			}
		}
	}
}

func (s *Store) lookup(r *http.Request) (*cardEntry, string) {
	ck, err := r.Cookie(s.config.CookieName)
	if err != nil || ck.Value == "" {
		return nil, ""
	}
	e, err := s.entry(ck.Value)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			s.log.Debug().Msg("expired card replaced")
		}
		return nil, ""
	}
	return e, ck.Value
}

func (s *Store) create() (*cardEntry, string, error) {
	id, err := s.newID()
	if err != nil {
		return nil, "", err
	}
	e := &cardEntry{
		card:      NewCard().WithLogger(s.log),
		expiresAt: s.now().Unix() + int64(s.config.CardTTL),
	}
	s.cache.set(id, e)
	return e, id, nil
}

func (s *Store) newID() (string, error) {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	if s.ids == nil {
		u, err := unixid.NewUnixID()
		if err != nil {
			return "", err
		}
		s.ids = u
	}
	return s.ids.GetNewID(), nil
}

func (s *Store) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    id,
		HttpOnly: true,
		Secure:   !s.config.InsecureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   s.config.CardTTL,
		Path:     "/",
	})
}
