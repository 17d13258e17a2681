package reservation_session

import (
	"context"
	"sync"
	"time"
)

// Registry хранит открытые сессии в памяти и вытесняет неактивные
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
	gauge        SessionGauge
}

// NewRegistry создает реестр сессий
func NewRegistry(ttl time.Duration, timeProvider TimeProvider, logger Logger) *Registry {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Registry{
		sessions:     make(map[string]*Session),
		ttl:          ttl,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SetGauge включает публикацию количества открытых сессий при каждом проходе Run
func (r *Registry) SetGauge(gauge SessionGauge) {
	r.gauge = gauge
}

// Add регистрирует сессию
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Get возвращает сессию по ID
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove удаляет сессию из реестра
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len количество сессий в реестре
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle закрывает и удаляет сессии, к которым не обращались дольше ttl.
// Возвращает количество вытесненных сессий.
func (r *Registry) EvictIdle() int {
	now := r.timeProvider.Now()

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if now.Sub(s.LastActivity()) > r.ttl {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if len(expired) > 0 {
		r.logger.Info("Registry: evicted %d idle sessions", len(expired))
	}
	return len(expired)
}

// CloseAll закрывает все сессии (при остановке сервиса)
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// Run периодически вытесняет неактивные сессии до отмены контекста
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-ticker.C:
			r.EvictIdle()
			if r.gauge != nil {
				r.gauge.SetActiveSessions(r.Len())
			}
		}
	}
}
