package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/pos-api/internal/application/pricing"
	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyDiscount_Matriz(t *testing.T) {
	cases := []struct {
		name      string
		subtotal  string
		value     string
		dtype     string
		wantTotal string
		wantErr   bool
	}{
		{"porcentaje normal", "100", "10", entity.DiscountPercentage, "90", false},
		{"porcentaje cero", "100", "0", entity.DiscountPercentage, "100", false},
		{"porcentaje 100", "100", "100", entity.DiscountPercentage, "0", false},
		{"porcentaje sobre 100", "100", "150", entity.DiscountPercentage, "", true},
		{"porcentaje negativo", "100", "-5", entity.DiscountPercentage, "", true},
		{"fijo normal", "100", "20", entity.DiscountFixed, "80", false},
		{"fijo igual al subtotal", "100", "100", entity.DiscountFixed, "0", false},
		{"fijo mayor al subtotal", "100", "120", entity.DiscountFixed, "", true},
		{"fijo negativo", "100", "-1", entity.DiscountFixed, "", true},
		{"tipo desconocido", "100", "10", "bogof", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			effective, total, err := pricing.ApplyDiscount(d(c.subtotal), d(c.value), c.dtype)
			if c.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
				return
			}
			require.NoError(t, err)
			assert.True(t, total.Equal(d(c.wantTotal)), "total esperado %s, fue %s", c.wantTotal, total)
			assert.True(t, d(c.subtotal).Sub(effective).Equal(total))
		})
	}
}

func TestApplyDiscount_PorcentajeFraccionario(t *testing.T) {
	effective, total, err := pricing.ApplyDiscount(d("333"), d("12.5"), entity.DiscountPercentage)
	require.NoError(t, err)
	assert.True(t, effective.Equal(d("41.625")))
	assert.True(t, total.Equal(d("291.375")))
}
