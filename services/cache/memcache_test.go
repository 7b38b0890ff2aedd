package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemcacheService(t *testing.T) {
	svc := NewMemcacheService("localhost:11211")

	if err := svc.Set("orderboard_test_key", []byte("test_value"), time.Minute); err != nil {
		t.Skipf("memcache not available: %v", err)
	}

	value, err := svc.Get("orderboard_test_key")
	assert.NoError(t, err)
	assert.Equal(t, "test_value", string(value))

	assert.NoError(t, svc.Delete("orderboard_test_key"))

	_, err = svc.Get("orderboard_test_key")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
