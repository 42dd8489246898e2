package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-service/models"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory. Transactions are
// serialized by a single mutex and rolled back by restoring a snapshot.
type MemoryStore struct {
	mu    *sync.Mutex
	state *memoryState
	inTx  bool
	now   func() time.Time
}

type memoryState struct {
	products map[uuid.UUID]models.Product
	carts    map[uuid.UUID]models.Cart
	items    []models.CartItem
	orders   []models.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		state: &memoryState{
			products: map[uuid.UUID]models.Product{},
			carts:    map[uuid.UUID]models.Cart{},
		},
		now: time.Now,
	}
}

func (st *memoryState) clone() *memoryState {
	c := &memoryState{
		products: make(map[uuid.UUID]models.Product, len(st.products)),
		carts:    make(map[uuid.UUID]models.Cart, len(st.carts)),
		items:    append([]models.CartItem(nil), st.items...),
		orders:   append([]models.Order(nil), st.orders...),
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.carts {
		c.carts[k] = v
	}
	return c
}

func (s *MemoryStore) run(ctx context.Context, fn func(st *memoryState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *MemoryStore) Products() ProductRepository { return memoryProducts{s} }
func (s *MemoryStore) Carts() CartRepository       { return memoryCarts{s} }
func (s *MemoryStore) Orders() OrderRepository     { return memoryOrders{s} }

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	tx := &MemoryStore{mu: s.mu, state: s.state, inTx: true, now: s.now}
	if err := fn(tx); err != nil {
		*s.state = *snapshot
		return err
	}
	return nil
}

type memoryProducts struct{ s *MemoryStore }

func (r memoryProducts) Create(ctx context.Context, product *models.Product) error {
	return r.s.run(ctx, func(st *memoryState) error {
		for _, p := range st.products {
			if p.SKU == product.SKU {
				return ErrDuplicate
			}
		}
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		now := r.s.now()
		product.CreatedAt, product.UpdatedAt = now, now
		st.products[product.ID] = *product
		return nil
	})
}

func (r memoryProducts) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var out *models.Product
	err := r.s.run(ctx, func(st *memoryState) error {
		p, ok := st.products[id]
		if !ok {
			return ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r memoryProducts) LockByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return r.FindByID(ctx, id)
}

func (r memoryProducts) Search(ctx context.Context, query string) ([]models.Product, error) {
	var out []models.Product
	needle := strings.ToLower(query)
	err := r.s.run(ctx, func(st *memoryState) error {
		for _, p := range st.products {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				out = append(out, p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r memoryProducts) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.s.run(ctx, func(st *memoryState) error {
		n = int64(len(st.products))
		return nil
	})
	return n, err
}

func (r memoryProducts) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.s.run(ctx, func(st *memoryState) error {
		p, ok := st.products[id]
		if !ok {
			return ErrNotFound
		}
		p.StockQty -= quantity
		st.products[id] = p
		return nil
	})
}

type memoryCarts struct{ s *MemoryStore }

func (r memoryCarts) Create(ctx context.Context, cart *models.Cart) error {
	return r.s.run(ctx, func(st *memoryState) error {
		if cart.ID == uuid.Nil {
			cart.ID = uuid.New()
		}
		cart.CreatedAt = r.s.now()
		st.carts[cart.ID] = models.Cart{ID: cart.ID, CreatedAt: cart.CreatedAt}
		return nil
	})
}

func (r memoryCarts) FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var out *models.Cart
	err := r.s.run(ctx, func(st *memoryState) error {
		c, ok := st.carts[id]
		if !ok {
			return ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r memoryCarts) Lock(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.FindByID(ctx, id)
}

func (r memoryCarts) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	var out *models.CartItem
	err := r.s.run(ctx, func(st *memoryState) error {
		for _, it := range st.items {
			if it.CartID == cartID && it.ProductID == productID {
				out = &it
				return nil
			}
		}
		return ErrNotFound
	})
	return out, err
}

func (r memoryCarts) CreateItem(ctx context.Context, item *models.CartItem) error {
	return r.s.run(ctx, func(st *memoryState) error {
		if _, ok := st.carts[item.CartID]; !ok {
			return ErrNotFound
		}
		if _, ok := st.products[item.ProductID]; !ok {
			return ErrNotFound
		}
		for _, it := range st.items {
			if it.CartID == item.CartID && it.ProductID == item.ProductID {
				return ErrDuplicate
			}
		}
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		now := r.s.now()
		item.CreatedAt, item.UpdatedAt = now, now
		stored := *item
		stored.Product = models.Product{}
		st.items = append(st.items, stored)
		return nil
	})
}

func (r memoryCarts) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.s.run(ctx, func(st *memoryState) error {
		for i := range st.items {
			if st.items[i].ID == itemID {
				st.items[i].Quantity = quantity
				st.items[i].UpdatedAt = r.s.now()
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r memoryCarts) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.s.run(ctx, func(st *memoryState) error {
		for i := range st.items {
			if st.items[i].ID == itemID {
				st.items = append(st.items[:i:i], st.items[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r memoryCarts) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var out []models.CartItem
	err := r.s.run(ctx, func(st *memoryState) error {
		for _, it := range st.items {
			if it.CartID == cartID {
				it.Product = st.products[it.ProductID]
				out = append(out, it)
			}
		}
		return nil
	})
	return out, err
}

func (r memoryCarts) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.s.run(ctx, func(st *memoryState) error {
		kept := make([]models.CartItem, 0, len(st.items))
		for _, it := range st.items {
			if it.CartID != cartID {
				kept = append(kept, it)
			}
		}
		st.items = kept
		return nil
	})
}

func (r memoryCarts) SumQuantity(ctx context.Context, cartID uuid.UUID) (int, error) {
	total := 0
	err := r.s.run(ctx, func(st *memoryState) error {
		for _, it := range st.items {
			if it.CartID == cartID {
				total += it.Quantity
			}
		}
		return nil
	})
	return total, err
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(ctx context.Context, order *models.Order) error {
	return r.s.run(ctx, func(st *memoryState) error {
		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}
		order.CreatedAt = r.s.now()
		stored := *order
		stored.Items = make([]models.OrderItem, len(order.Items))
		for i := range order.Items {
			if order.Items[i].ID == uuid.Nil {
				order.Items[i].ID = uuid.New()
			}
			order.Items[i].OrderID = order.ID
			stored.Items[i] = order.Items[i]
			stored.Items[i].Product = models.Product{}
		}
		st.orders = append(st.orders, stored)
		return nil
	})
}

func (r memoryOrders) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var out *models.Order
	err := r.s.run(ctx, func(st *memoryState) error {
		for _, o := range st.orders {
			if o.ID == id {
				loaded := withProducts(st, o)
				out = &loaded
				return nil
			}
		}
		return ErrNotFound
	})
	return out, err
}

func (r memoryOrders) FindAll(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := r.s.run(ctx, func(st *memoryState) error {
		out = make([]models.Order, 0, len(st.orders))
		for i := len(st.orders) - 1; i >= 0; i-- {
			out = append(out, withProducts(st, st.orders[i]))
		}
		return nil
	})
	// Stable sort keeps later inserts first on equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func withProducts(st *memoryState, o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.Product = st.products[it.ProductID]
		items[i] = it
	}
	o.Items = items
	return o
}
