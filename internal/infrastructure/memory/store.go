// Package memory implementa los puertos de persistencia en memoria.
// Se usa en pruebas y en desarrollo local (DB_DRIVER=memory); respeta las mismas
// restricciones de unicidad que el esquema PostgreSQL.
package memory

import (
	"sync"

	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	materials map[string]entity.Material
	products  map[string]entity.Product
	orders    map[string]entity.Order
	lines     map[string][]entity.OrderLine // por orderID
	seq       []string                      // orden de inserción de órdenes
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		materials: map[string]entity.Material{},
		products:  map[string]entity.Product{},
		orders:    map[string]entity.Order{},
		lines:     map[string][]entity.OrderLine{},
	}
}

// removeOrders deshace la inserción de las órdenes ids y sus líneas.
func (s *Store) removeOrders(ids []string) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
		delete(s.orders, id)
		delete(s.lines, id)
	}
	seq := s.seq[:0]
	for _, id := range s.seq {
		if !drop[id] {
			seq = append(seq, id)
		}
	}
	s.seq = seq
}
