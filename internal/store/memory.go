// Package store implementa el almacen de conversaciones por sesion.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mechassist/internal/domain"
)

// Conversation define el contrato del almacen de historial por sesion.
type Conversation interface {
	Append(sessionID string, ex domain.Exchange) string
	Recent(sessionID string, maxTurns int) []domain.Exchange
}

// session agrupa los intercambios de una clave de sesion. Su mutex serializa
// append, lectura y recoleccion para esa clave; sesiones distintas no se bloquean
// entre si.
type session struct {
	mu         sync.Mutex
	exchanges  []domain.Exchange
	lastActive time.Time
	gone       bool
}

// MemoryStore es el almacen en memoria, creado-al-primer-uso por clave.
// La capacidad por sesion es FIFO: al superar el tope se expulsa el mas antiguo
// en el siguiente append. Las sesiones inactivas se recolectan completas.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	cap      int
	idleTTL  time.Duration
}

// NewMemoryStore construye el almacen. cap <= 0 deshabilita la expulsion FIFO;
// idleTTL <= 0 deshabilita la recoleccion de sesiones.
func NewMemoryStore(capPerSession int, idleTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session),
		cap:      capPerSession,
		idleTTL:  idleTTL,
	}
}

// Append agrega un intercambio al final del historial de la sesion y devuelve
// su id (se genera uno si viene vacio). Expulsa los mas antiguos si se supero
// la capacidad.
func (s *MemoryStore) Append(sessionID string, ex domain.Exchange) string {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	ex.SessionID = sessionID

	for {
		sess := s.getOrCreate(sessionID)
		sess.mu.Lock()
		if sess.gone {
			// La recoleccion gano la carrera; la clave se recrea y se reintenta.
			sess.mu.Unlock()
			continue
		}
		sess.exchanges = append(sess.exchanges, ex)
		if s.cap > 0 {
			for len(sess.exchanges) > s.cap {
				sess.exchanges = sess.exchanges[1:]
			}
		}
		sess.lastActive = time.Now()
		sess.mu.Unlock()
		return ex.ID
	}
}

// Recent devuelve una copia de los ultimos maxTurns intercambios en orden de
// insercion, el mas reciente al final. La copia es una foto al momento de la
// llamada: escrituras posteriores no aparecen.
func (s *MemoryStore) Recent(sessionID string, maxTurns int) []domain.Exchange {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok || maxTurns <= 0 {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.gone || len(sess.exchanges) == 0 {
		return nil
	}
	start := 0
	if len(sess.exchanges) > maxTurns {
		start = len(sess.exchanges) - maxTurns
	}
	out := make([]domain.Exchange, len(sess.exchanges)-start)
	copy(out, sess.exchanges[start:])
	sess.lastActive = time.Now()
	return out
}

// Reclaim elimina las sesiones sin actividad desde antes del TTL. Toma el mutex
// de cada sesion, de modo que nunca puede cruzarse con un append en curso.
func (s *MemoryStore) Reclaim(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		if sess.lastActive.Before(cutoff) {
			sess.gone = true
			delete(s.sessions, id)
			removed++
		}
		sess.mu.Unlock()
	}
	return removed
}

// RunJanitor ejecuta Reclaim periodicamente hasta que el contexto se cancele.
func (s *MemoryStore) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Reclaim(now)
		}
	}
}

func (s *MemoryStore) getOrCreate(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{lastActive: time.Now()}
		s.sessions[sessionID] = sess
	}
	return sess
}
