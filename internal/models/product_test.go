package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_Value(t *testing.T) {
	p := Product{Price: 9.99, Quantity: 3}
	assert.InDelta(t, 29.97, p.Value(), 1e-9)
}

func TestProduct_LowStock(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     bool
	}{
		{name: "zero", quantity: 0, want: true},
		{name: "at threshold", quantity: LowStockThreshold, want: true},
		{name: "above threshold", quantity: LowStockThreshold + 1, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Quantity: tc.quantity}
			assert.Equal(t, tc.want, p.LowStock())
		})
	}
}
