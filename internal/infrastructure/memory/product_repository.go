package memory

import (
	"sort"

	"github.com/jhoicas/order-manager-api/internal/domain/entity"
	"github.com/jhoicas/order-manager-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
// inTx indica que el mutex del Store ya lo tiene el TxRunner.
type ProductRepo struct {
	store *Store
	inTx  bool
}

// NewProductRepository construye el repositorio sobre el store (uso fuera de transacción).
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) lock() {
	if !r.inTx {
		r.store.mu.Lock()
	}
}

func (r *ProductRepo) unlock() {
	if !r.inTx {
		r.store.mu.Unlock()
	}
}

// Create guarda una copia del producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.lock()
	defer r.unlock()
	r.store.products[product.ID] = *product
	return nil
}

// GetByID devuelve una copia del producto o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.lock()
	defer r.unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetByIDForUpdate en memoria equivale a GetByID: la exclusión la da el mutex del Store.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

// List devuelve los productos ordenados por fecha de creación descendente.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.lock()
	defer r.unlock()
	all := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := p
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

// Update sobreescribe el producto si existe.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.lock()
	defer r.unlock()
	if _, ok := r.store.products[product.ID]; !ok {
		return nil
	}
	r.store.products[product.ID] = *product
	return nil
}

// UpdateStock escribe solo el campo stock.
func (r *ProductRepo) UpdateStock(id string, stock int64) error {
	r.lock()
	defer r.unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil
	}
	p.Stock = stock
	r.store.products[id] = p
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(id string) error {
	r.lock()
	defer r.unlock()
	delete(r.store.products, id)
	return nil
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
