package service

import (
	"context"
	"sync"

	"github.com/openkyc/kyc/internal/domain/models"
)

// fakeCache is a map-backed CustomerCache for tests.
type fakeCache struct {
	mu sync.Mutex
	m  map[string]*models.Customer
}

func newFakeCache() *fakeCache {
	return &fakeCache{m: make(map[string]*models.Customer)}
}

func (c *fakeCache) Get(id string) (*models.Customer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	customer, ok := c.m[id]
	return customer, ok
}

func (c *fakeCache) Set(customer *models.Customer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[customer.ID] = customer
}

func (c *fakeCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, id)
}

func ctxAs(role string) context.Context {
	return ContextWithActor(context.Background(), Actor{
		UserID:   "usr-test",
		Username: "tester",
		Role:     role,
	})
}
