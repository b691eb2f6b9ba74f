package analytics

import "sync"

// RefreshGuard evita que una respuesta tardía sobrescriba una vista más reciente.
// Cada refresco toma un ticket con Begin; Publish solo acepta el resultado si ningún
// ticket posterior se publicó antes.
type RefreshGuard[T any] struct {
	mu        sync.Mutex
	issued    uint64
	published uint64
	current   T
	has       bool
}

// Begin entrega el siguiente ticket de refresco.
func (g *RefreshGuard[T]) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// Publish fija v como vista actual si ticket es más nuevo que el último publicado.
func (g *RefreshGuard[T]) Publish(ticket uint64, v T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket <= g.published {
		return false
	}
	g.published = ticket
	g.current = v
	g.has = true
	return true
}

// Current devuelve la última vista publicada y su ticket.
func (g *RefreshGuard[T]) Current() (T, uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current, g.published, g.has
}
