package ledger

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/order-manager-api/internal/application/dto"
	"github.com/jhoicas/order-manager-api/internal/application/usecase"
	"github.com/jhoicas/order-manager-api/internal/domain"
	"github.com/jhoicas/order-manager-api/internal/domain/entity"
	"github.com/jhoicas/order-manager-api/internal/domain/repository"
	"github.com/jhoicas/order-manager-api/internal/metrics"
	"github.com/jhoicas/order-manager-api/pkg/logger"
)

// UseCase es el ledger orden-stock: el único componente autorizado a mutar
// Product.Stock. Invariante: para todo producto P,
//
//	P.Stock == stock inicial − Σ(quantity de las órdenes vivas que referencian P)
//
// Se sostiene porque crear, modificar y cancelar órdenes co-mutan el stock
// dentro de una misma transacción con bloqueo de fila (SELECT FOR UPDATE).
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	log         *logger.Logger
	metrics     *metrics.LedgerMetrics
}

// NewUseCase construye el ledger. productRepo y orderRepo se usan solo para
// lecturas fuera de transacción; las mutaciones reciben repos atados a la tx.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	log *logger.Logger,
	m *metrics.LedgerMetrics,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		log:         log,
		metrics:     m,
	}
}

// PlaceOrder crea una orden reservando stock del producto, todo en una
// transacción: relee el stock con la fila bloqueada, falla con
// ErrInsufficientStock si stock < quantity, decrementa y persiste la orden.
// Dos llamadas concurrentes sobre el mismo producto se serializan en la fila,
// así que la segunda observa el decremento confirmado de la primera.
func (uc *UseCase) PlaceOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Customer) == "" || strings.TrimSpace(in.OrderDate) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Customer:  in.Customer,
		OrderDate: in.OrderDate,
		Status:    entity.OrderStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		p, err := productRepo.GetByIDForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if p.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}
		p.Stock -= in.Quantity
		if err := productRepo.UpdateStock(p.ID, p.Stock); err != nil {
			return err
		}
		product = p
		return orderRepo.Create(order)
	})
	if err != nil {
		uc.observeFailure("place_order", err)
		return nil, err
	}

	uc.metrics.OrderPlaced()
	uc.log.Info().
		Str("order_id", order.ID).
		Str("product_id", product.ID).
		Int64("quantity", order.Quantity).
		Int64("stock", product.Stock).
		Msg("orden creada")
	return uc.toOrderResponse(order, product), nil
}

// CancelOrder elimina la orden y devuelve su cantidad al stock del producto,
// en una transacción. Si el producto ya no existe la restauración se omite:
// borrar una orden nunca falla solo porque su producto fue eliminado aparte.
func (uc *UseCase) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		product, err := productRepo.GetByIDForUpdate(order.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			if err := productRepo.UpdateStock(product.ID, product.Stock+order.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.Delete(order.ID)
	})
	if err != nil {
		uc.observeFailure("cancel_order", err)
		return err
	}

	uc.metrics.OrderCanceled()
	uc.log.Info().Str("order_id", orderID).Msg("orden cancelada, reserva liberada")
	return nil
}

// AmendOrder modifica una orden. Cambiar quantity o product_id re-ejecuta la
// lógica de reserva del ledger en la misma transacción: libera la reserva
// vieja y toma la nueva, con los mismos fallos que PlaceOrder. Sin esto, una
// edición de cantidad desincronizaría el stock de la cantidad reservada.
func (uc *UseCase) AmendOrder(ctx context.Context, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID != nil && *in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Customer != nil && strings.TrimSpace(*in.Customer) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderDate != nil && strings.TrimSpace(*in.OrderDate) == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		order   *entity.Order
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		o, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrOrderNotFound
		}

		newQty := o.Quantity
		if in.Quantity != nil {
			newQty = *in.Quantity
		}
		newProductID := o.ProductID
		if in.ProductID != nil {
			newProductID = *in.ProductID
		}

		if newQty != o.Quantity || newProductID != o.ProductID {
			p, err := uc.reconcileReservation(productRepo, o, newProductID, newQty)
			if err != nil {
				return err
			}
			o.ProductID = newProductID
			o.Quantity = newQty
			product = p
		}

		if in.Customer != nil {
			o.Customer = *in.Customer
		}
		if in.OrderDate != nil {
			o.OrderDate = *in.OrderDate
		}
		if in.Status != nil && *in.Status != "" {
			o.Status = *in.Status
		}
		o.UpdatedAt = time.Now()
		if err := orderRepo.Update(o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		uc.observeFailure("amend_order", err)
		return nil, err
	}

	uc.metrics.OrderAmended()
	uc.log.Info().Str("order_id", order.ID).Msg("orden modificada")
	if product == nil {
		// La reserva no cambió; el producto se resuelve fuera de la tx.
		product, _ = uc.productRepo.GetByID(order.ProductID)
	}
	return uc.toOrderResponse(order, product), nil
}

// reconcileReservation libera la reserva actual de la orden y toma la nueva,
// con las filas de producto bloqueadas. Cuando intervienen dos productos se
// bloquean en orden de id para evitar deadlocks entre modificaciones cruzadas.
func (uc *UseCase) reconcileReservation(
	productRepo repository.ProductRepository,
	order *entity.Order,
	newProductID string,
	newQty int64,
) (*entity.Product, error) {
	ids := []string{order.ProductID}
	if newProductID != order.ProductID {
		ids = append(ids, newProductID)
		sort.Strings(ids)
	}
	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetByIDForUpdate(id)
		if err != nil {
			return nil, err
		}
		locked[id] = p
	}

	target := locked[newProductID]
	if target == nil {
		return nil, domain.ErrProductNotFound
	}

	if newProductID == order.ProductID {
		available := target.Stock + order.Quantity
		if available < newQty {
			return nil, domain.ErrInsufficientStock
		}
		target.Stock = available - newQty
		return target, productRepo.UpdateStock(target.ID, target.Stock)
	}

	if target.Stock < newQty {
		return nil, domain.ErrInsufficientStock
	}
	// Primero libera en el producto viejo (si sigue existiendo), luego reserva.
	if old := locked[order.ProductID]; old != nil {
		if err := productRepo.UpdateStock(old.ID, old.Stock+order.Quantity); err != nil {
			return nil, err
		}
	}
	target.Stock -= newQty
	return target, productRepo.UpdateStock(target.ID, target.Stock)
}

// CurrentStock devuelve el stock almacenado del producto. Lectura pura: el
// stock se mantiene incrementalmente, no se deriva del historial de órdenes.
func (uc *UseCase) CurrentStock(ctx context.Context, productID string) (int64, error) {
	_ = ctx
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}
	return product.Stock, nil
}

// GetByID obtiene una orden con su producto embebido (null si fue eliminado).
func (uc *UseCase) GetByID(orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	product, err := uc.productRepo.GetByID(order.ProductID)
	if err != nil {
		return nil, err
	}
	return uc.toOrderResponse(order, product), nil
}

// List lista órdenes con su producto embebido, resuelto por lookup explícito.
func (uc *UseCase) List(limit, offset int) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		product, err := uc.productRepo.GetByID(o.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, *uc.toOrderResponse(o, product))
	}
	return items, nil
}

func (uc *UseCase) observeFailure(op string, err error) {
	switch {
	case domain.IsConflict(err):
		uc.metrics.TxConflict()
		uc.log.Warn().Str("op", op).Err(err).Msg("conflicto de transacción")
	case err == domain.ErrInsufficientStock:
		uc.metrics.InsufficientStock()
		uc.log.Warn().Str("op", op).Msg("stock insuficiente")
	}
}

func (uc *UseCase) toOrderResponse(o *entity.Order, p *entity.Product) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:        o.ID,
		Product:   usecase.ToProductResponse(p),
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Customer:  o.Customer,
		OrderDate: o.OrderDate,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
