package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/repository"
)

// mockCartStore keeps carts in memory and emulates the repository's
// version check on save, so conflict retries can be exercised.
type mockCartStore struct {
	mu            sync.Mutex
	carts         map[primitive.ObjectID]models.Cart
	forcedErrors  int // fail the next N Save calls with ErrVersionConflict
	clearFailures int // fail the next N Clear calls
	clearCalls    int
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: make(map[primitive.ObjectID]models.Cart)}
}

func copyCart(c models.Cart) *models.Cart {
	cp := c
	cp.CartItems = append([]models.CartItem{}, c.CartItems...)
	return &cp
}

func (m *mockCartStore) GetOrCreate(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		c = models.Cart{ID: primitive.NewObjectID(), UserID: userID, CartItems: []models.CartItem{}}
		m.carts[userID] = c
	}
	return copyCart(c), nil
}

func (m *mockCartStore) Get(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return copyCart(c), nil
}

func (m *mockCartStore) Save(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forcedErrors > 0 {
		m.forcedErrors--
		return repository.ErrVersionConflict
	}
	stored, ok := m.carts[cart.UserID]
	if !ok || stored.Version != cart.Version {
		return repository.ErrVersionConflict
	}
	cp := *cart
	cp.CartItems = append([]models.CartItem{}, cart.CartItems...)
	cp.Version++
	m.carts[cart.UserID] = cp
	cart.Version++
	return nil
}

func (m *mockCartStore) Clear(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	if m.clearFailures > 0 {
		m.clearFailures--
		return errors.New("clear failed")
	}
	if c, ok := m.carts[userID]; ok {
		c.CartItems = []models.CartItem{}
		c.TotalPrice = 0
		c.Version++
		m.carts[userID] = c
	}
	return nil
}

type mockCatalog struct {
	products map[primitive.ObjectID]models.Product
}

func newMockCatalog(products ...models.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[primitive.ObjectID]models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockCatalog) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

type mockOrderStore struct {
	mu        sync.Mutex
	orders    []models.Order
	createErr error
}

func (m *mockOrderStore) Create(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	sortOrders(result)
	return result, nil
}

func (m *mockOrderStore) FindAll(_ context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := append([]models.Order{}, m.orders...)
	sortOrders(result)
	return result, nil
}

func sortOrders(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderedOn.After(orders[j].OrderedOn)
	})
}

type mockMailer struct {
	sent chan string
}

func newMockMailer() *mockMailer {
	return &mockMailer{sent: make(chan string, 1)}
}

func (m *mockMailer) SendOrderConfirmation(_ context.Context, to string, _ *models.Order) error {
	m.sent <- to
	return nil
}
