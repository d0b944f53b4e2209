package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puntoventa/pos-api/internal/domain"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

func TestToBase_GramosAKilos(t *testing.T) {
	got, err := unit.ToBase(decimal.NewFromInt(500), unit.Gram)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.5")), "500 g deben ser 0.5 Kg, fue %s", got)
}

func TestFromBase_KilosAGramos(t *testing.T) {
	got, err := unit.FromBase(decimal.RequireFromString("0.25"), unit.Kg, unit.Gram)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(250)))
}

func TestFromBase_FamiliaDistinta(t *testing.T) {
	_, err := unit.FromBase(decimal.NewFromInt(1), unit.Kg, unit.Millilitre)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}

func TestConvert_IdaYVuelta(t *testing.T) {
	// Propiedad: convert(convert(q, A, B), B, A) == q para unidades compatibles.
	cases := []struct {
		from, to unit.Unit
	}{
		{unit.Kg, unit.Gram},
		{unit.Gram, unit.Kg},
		{unit.Litre, unit.Millilitre},
		{unit.Millilitre, unit.Litre},
		{unit.Piece, unit.Piece},
	}
	q := decimal.RequireFromString("3.75")
	for _, c := range cases {
		there, err := unit.Convert(q, c.from, c.to)
		require.NoError(t, err, "%s→%s", c.from, c.to)
		back, err := unit.Convert(there, c.to, c.from)
		require.NoError(t, err)
		assert.True(t, back.Equal(q), "%s→%s→%s: esperaba %s, fue %s", c.from, c.to, c.from, q, back)
	}
}

func TestConvert_FamiliasIncompatibles(t *testing.T) {
	_, err := unit.Convert(decimal.NewFromInt(2), unit.Kg, unit.Piece)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)

	_, err = unit.Convert(decimal.NewFromInt(2), unit.Litre, unit.Gram)
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnits)
}

func TestConvert_SinErrorFlotanteAcumulado(t *testing.T) {
	// Muchas conversiones repetidas no degradan el valor: los factores son
	// racionales exactos y cada llamada es un solo Mul/Div.
	q := decimal.RequireFromString("0.1")
	for i := 0; i < 1000; i++ {
		g, err := unit.Convert(q, unit.Kg, unit.Gram)
		require.NoError(t, err)
		q, err = unit.Convert(g, unit.Gram, unit.Kg)
		require.NoError(t, err)
	}
	assert.True(t, q.Equal(decimal.RequireFromString("0.1")))
}

func TestAvailable_FamiliaConBasePrimero(t *testing.T) {
	assert.Equal(t, []unit.Unit{unit.Kg, unit.Gram}, unit.Available(unit.Kg))
	assert.Equal(t, []unit.Unit{unit.Litre, unit.Millilitre}, unit.Available(unit.Litre))
	assert.Equal(t, []unit.Unit{unit.Dozen}, unit.Available(unit.Dozen))
	assert.Nil(t, unit.Available(unit.Unit("Furlong")))
}

func TestParse(t *testing.T) {
	u, err := unit.Parse("Millilitre")
	require.NoError(t, err)
	assert.Equal(t, unit.Millilitre, u)

	_, err = unit.Parse("kg") // sensible a mayúsculas: la enumeración es cerrada
	assert.ErrorIs(t, err, domain.ErrUnknownUnit)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.5 Kg", unit.Format(decimal.RequireFromString("0.5"), unit.Kg))
	assert.Equal(t, "1.33 Litre", unit.Format(decimal.RequireFromString("1.3333"), unit.Litre))
}
