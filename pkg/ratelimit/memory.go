package ratelimit

import (
	"context"
	"sync"
	"time"
)

// counter guarda o total de requisições de uma chave na janela atual
type counter struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore implementa Store com um mapa em memória protegido por mutex.
// Um goroutine de limpeza remove periodicamente as janelas expiradas.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
	stop     chan struct{}
	done     chan struct{}
}

// NewMemoryStore cria uma nova instância de MemoryStore
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		counters: make(map[string]*counter),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Increment implementa Store.Increment
func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || now.After(c.expiresAt) {
		c = &counter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

// sweep remove janelas expiradas a cada minuto
func (s *MemoryStore) sweep() {
	defer close(s.done)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, c := range s.counters {
				if now.After(c.expiresAt) {
					delete(s.counters, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close encerra o goroutine de limpeza
func (s *MemoryStore) Close() error {
	close(s.stop)
	<-s.done
	return nil
}
