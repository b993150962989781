// Package cache provides the in-process read caches.
package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/openkyc/kyc/internal/application/service"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/constants"
)

// CustomerCacheImpl is a short-TTL in-process cache in front of the customer
// repository. Entries are stored by ID; writes go through Set after every
// successful mutation and Invalidate on archive or delete.
type CustomerCacheImpl struct {
	store *gocache.Cache
}

// NewCustomerCache creates the customer read cache.
func NewCustomerCache() service.CustomerCache {
	return &CustomerCacheImpl{
		store: gocache.New(constants.CustomerCacheTTL, constants.CustomerCacheSweep),
	}
}

func (c *CustomerCacheImpl) Get(id string) (*models.Customer, bool) {
	value, found := c.store.Get(id)
	if !found {
		return nil, false
	}
	customer, ok := value.(*models.Customer)
	if !ok {
		return nil, false
	}
	copied := *customer
	return &copied, true
}

func (c *CustomerCacheImpl) Set(customer *models.Customer) {
	if customer == nil {
		return
	}
	copied := *customer
	c.store.SetDefault(customer.ID, &copied)
}

func (c *CustomerCacheImpl) Invalidate(id string) {
	c.store.Delete(id)
}
