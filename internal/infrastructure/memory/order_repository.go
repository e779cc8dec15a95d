package memory

import (
	"sort"

	"github.com/jhoicas/order-manager-api/internal/domain/entity"
	"github.com/jhoicas/order-manager-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	store *Store
	inTx  bool
}

// NewOrderRepository construye el repositorio sobre el store (uso fuera de transacción).
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) lock() {
	if !r.inTx {
		r.store.mu.Lock()
	}
}

func (r *OrderRepo) unlock() {
	if !r.inTx {
		r.store.mu.Unlock()
	}
}

// Create guarda una copia de la orden.
func (r *OrderRepo) Create(order *entity.Order) error {
	r.lock()
	defer r.unlock()
	r.store.orders[order.ID] = *order
	return nil
}

// GetByID devuelve una copia de la orden o (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	r.lock()
	defer r.unlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// GetByIDForUpdate en memoria equivale a GetByID: la exclusión la da el mutex del Store.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

// List devuelve las órdenes ordenadas por fecha de creación descendente.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	r.lock()
	defer r.unlock()
	all := make([]*entity.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		cp := o
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return paginate(all, limit, offset), nil
}

// Update sobreescribe la orden si existe.
func (r *OrderRepo) Update(order *entity.Order) error {
	r.lock()
	defer r.unlock()
	if _, ok := r.store.orders[order.ID]; !ok {
		return nil
	}
	r.store.orders[order.ID] = *order
	return nil
}

// Delete elimina la orden.
func (r *OrderRepo) Delete(id string) error {
	r.lock()
	defer r.unlock()
	delete(r.store.orders, id)
	return nil
}
