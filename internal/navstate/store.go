package navstate

import (
	"container/list"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/metric"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/pkg/clock"
)

var ErrNotFound = errors.New("navigation state not found or expired")

type entry[T any] struct {
	token     string
	value     T
	expiresAt time.Time
}

// Store carries transient state between two page views under an opaque
// token. Entries expire after ttl and are never persisted. At most
// maxEntries are held; putting one more evicts the oldest.
type Store[T any] struct {
	name       string
	ttl        time.Duration
	maxEntries int
	clock      clock.Clock
	logger     *slog.Logger

	mu    sync.RWMutex
	items map[string]*list.Element
	order *list.List // oldest first
}

// New creates a store whose entries live for ttl. maxEntries <= 0 means
// no limit.
func New[T any](name string, ttl time.Duration, maxEntries int, clk clock.Clock, logger *slog.Logger) *Store[T] {
	return &Store[T]{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clk,
		logger:     logger,
		items:      make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Put stores value and returns the token that retrieves it.
func (s *Store[T]) Put(value T) string {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for s.maxEntries > 0 && s.order.Len() >= s.maxEntries {
		s.removeLocked(s.order.Front())
		evicted++
	}
	if evicted > 0 {
		metric.NavStateEvictionsTotal.Add(float64(evicted))
		s.logger.Debug("navigation state evicted", "store", s.name, "evicted", evicted)
	}

	e := &entry[T]{token: token, value: value, expiresAt: s.clock.Now().Add(s.ttl)}
	s.items[token] = s.order.PushBack(e)
	metric.NavStateEntries.Inc()
	return token
}

// Get returns the value for token without consuming it.
func (s *Store[T]) Get(token string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	el, ok := s.items[token]
	if !ok {
		return zero, ErrNotFound
	}
	e := el.Value.(*entry[T])
	if s.clock.Now().After(e.expiresAt) {
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Take returns the value for token and removes it, so it is seen once.
func (s *Store[T]) Take(token string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	el, ok := s.items[token]
	if !ok {
		return zero, ErrNotFound
	}
	e := s.removeLocked(el)

	if s.clock.Now().After(e.expiresAt) {
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Len returns the number of entries held, expired ones included.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.Len()
}

// Sweep deletes expired entries and returns how many were removed.
func (s *Store[T]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	deleted := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if now.After(el.Value.(*entry[T]).expiresAt) {
			s.removeLocked(el)
			deleted++
		}
		el = next
	}
	return deleted
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Store[T]) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("navigation state swept", "store", s.name, "deleted", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store[T]) removeLocked(el *list.Element) *entry[T] {
	e := s.order.Remove(el).(*entry[T])
	delete(s.items, e.token)
	metric.NavStateEntries.Dec()
	return e
}
