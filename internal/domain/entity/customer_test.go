package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de nivel de cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerLevel(t *testing.T) {
	cases := []struct {
		name  string
		spent string
		want  string
	}{
		{"cero es Normal", "0", entity.LevelNormal},
		{"justo bajo Plata", "9999.99", entity.LevelNormal},
		{"umbral exacto Plata", "10000", entity.LevelPlata},
		{"justo bajo Oro", "49999.99", entity.LevelPlata},
		{"umbral exacto Oro", "50000", entity.LevelOro},
		{"justo bajo VIP", "99999.99", entity.LevelOro},
		{"umbral exacto VIP", "100000", entity.LevelVIP},
		{"muy por encima de VIP", "750000", entity.LevelVIP},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &entity.Customer{TotalSpent: decimal.RequireFromString(tc.spent)}
			assert.Equal(t, tc.want, c.Level())
		})
	}
}

func TestProductLowStock(t *testing.T) {
	p := &entity.Product{Stock: 5, AlertStock: 10}
	assert.True(t, p.LowStock())

	// El umbral es estricto: Stock == AlertStock no dispara alerta.
	p.Stock = 10
	assert.False(t, p.LowStock())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, entity.ValidCategory(entity.CategoryInsumo))
	assert.True(t, entity.ValidCategory(entity.CategoryInstrumento))
	assert.True(t, entity.ValidCategory(entity.CategoryMedicamento))
	assert.False(t, entity.ValidCategory("otro"))
	assert.False(t, entity.ValidCategory(""))
}
