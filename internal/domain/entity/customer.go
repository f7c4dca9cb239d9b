package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de cliente según consumo acumulado.
const (
	LevelVIP    = "VIP"
	LevelOro    = "Oro"
	LevelPlata  = "Plata"
	LevelNormal = "Normal"
)

// Customer representa un cliente (hospital, clínica o centro de salud).
// TotalSpent es un acumulador: el workflow de órdenes lo incrementa al crear
// y lo revierte al cancelar; nunca se recalcula desde las órdenes.
type Customer struct {
	ID         int64
	LicenseNo  string // número de licencia sanitaria, único y no vacío
	Name       string
	Contact    string
	TotalSpent decimal.Decimal // >= 0
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Level deriva el nivel comercial del cliente a partir de TotalSpent.
func (c *Customer) Level() string {
	switch {
	case c.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(100000)):
		return LevelVIP
	case c.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(50000)):
		return LevelOro
	case c.TotalSpent.GreaterThanOrEqual(decimal.NewFromInt(10000)):
		return LevelPlata
	default:
		return LevelNormal
	}
}
