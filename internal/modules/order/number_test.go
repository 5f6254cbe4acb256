package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumberIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 20000)
	for i := 0; i < 20000; i++ {
		n := generateOrderNumber()
		assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{12}$`, n)
		_, dup := seen[n]
		if !assert.False(t, dup, "duplicate order number %s after %d", n, i) {
			return
		}
		seen[n] = struct{}{}
	}
}
