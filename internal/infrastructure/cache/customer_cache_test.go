package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/internal/domain/models"
)

func TestCustomerCacheRoundTrip(t *testing.T) {
	c := NewCustomerCache()

	c.Set(&models.Customer{ID: "cus-1", FullName: "Budi Santoso"})

	found, ok := c.Get("cus-1")
	require.True(t, ok)
	assert.Equal(t, "Budi Santoso", found.FullName)

	_, ok = c.Get("cus-2")
	assert.False(t, ok)
}

func TestCustomerCacheReturnsCopies(t *testing.T) {
	c := NewCustomerCache()
	c.Set(&models.Customer{ID: "cus-1", FullName: "Budi Santoso"})

	first, ok := c.Get("cus-1")
	require.True(t, ok)
	first.FullName = "mutated"

	second, ok := c.Get("cus-1")
	require.True(t, ok)
	assert.Equal(t, "Budi Santoso", second.FullName)
}

func TestCustomerCacheInvalidate(t *testing.T) {
	c := NewCustomerCache()
	c.Set(&models.Customer{ID: "cus-1"})

	c.Invalidate("cus-1")

	_, ok := c.Get("cus-1")
	assert.False(t, ok)
}
