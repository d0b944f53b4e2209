// Package unit implementa el sistema de unidades de medida del punto de venta.
//
// Cada unidad pertenece a exactamente una familia; solo unidades de la misma
// familia son convertibles entre sí. Cada familia tiene una unidad base con
// factor 1; las demás llevan un factor multiplicativo fijo hacia esa base.
// Los factores son constantes racionales exactas (decimal.Decimal), de modo
// que una conversión es un único Mul o Div sin acumulación de error flotante.
package unit

import (
	"github.com/shopspring/decimal"

	"github.com/puntoventa/pos-api/internal/domain"
)

// Unit es la enumeración cerrada de unidades soportadas.
type Unit string

const (
	Kg         Unit = "Kg"
	Gram       Unit = "Gram"
	Litre      Unit = "Litre"
	Millilitre Unit = "Millilitre"
	Piece      Unit = "Piece"
	Pack       Unit = "Pack"
	Set        Unit = "Set"
	Dozen      Unit = "Dozen"
	Meter      Unit = "Meter"
)

// Family identifica el grupo de unidades mutuamente convertibles.
type Family string

const (
	FamilyMass   Family = "mass"
	FamilyVolume Family = "volume"
	FamilyPiece  Family = "piece"
	FamilyPack   Family = "pack"
	FamilySet    Family = "set"
	FamilyDozen  Family = "dozen"
	FamilyMeter  Family = "meter"
)

// def describe una unidad: su familia y su factor hacia la unidad base.
type def struct {
	family Family
	factor decimal.Decimal
}

var one = decimal.NewFromInt(1)
var milli = decimal.New(1, -3) // 0.001 exacto

// defs es la tabla cerrada de unidades. Orden de All: base primero.
var defs = map[Unit]def{
	Kg:         {FamilyMass, one},
	Gram:       {FamilyMass, milli},
	Litre:      {FamilyVolume, one},
	Millilitre: {FamilyVolume, milli},
	Piece:      {FamilyPiece, one},
	Pack:       {FamilyPack, one},
	Set:        {FamilySet, one},
	Dozen:      {FamilyDozen, one},
	Meter:      {FamilyMeter, one},
}

// families lista las unidades de cada familia con la base en primer lugar.
var families = map[Family][]Unit{
	FamilyMass:   {Kg, Gram},
	FamilyVolume: {Litre, Millilitre},
	FamilyPiece:  {Piece},
	FamilyPack:   {Pack},
	FamilySet:    {Set},
	FamilyDozen:  {Dozen},
	FamilyMeter:  {Meter},
}

// All devuelve todas las unidades soportadas (orden estable).
func All() []Unit {
	return []Unit{Kg, Gram, Litre, Millilitre, Piece, Pack, Set, Dozen, Meter}
}

// Parse valida un string contra la enumeración. Devuelve ErrUnknownUnit si no existe.
func Parse(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := defs[u]; !ok {
		return "", domain.ErrUnknownUnit
	}
	return u, nil
}

// IsValid indica si la unidad pertenece a la enumeración.
func (u Unit) IsValid() bool {
	_, ok := defs[u]
	return ok
}

// Family devuelve la familia de la unidad.
func (u Unit) Family() Family {
	return defs[u].family
}

// Factor devuelve el factor multiplicativo fijo hacia la unidad base de su familia.
func (u Unit) Factor() decimal.Decimal {
	return defs[u].factor
}

// String implementa fmt.Stringer.
func (u Unit) String() string { return string(u) }

// ToBase convierte una cantidad expresada en u a la unidad base de su familia.
// Un único Mul; sin redondeo intermedio.
func ToBase(quantity decimal.Decimal, u Unit) (decimal.Decimal, error) {
	d, ok := defs[u]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUnit
	}
	return quantity.Mul(d.factor), nil
}

// FromBase convierte una cantidad en unidad base hacia target. Falla con
// ErrIncompatibleUnits si target no pertenece a la familia de base.
func FromBase(quantity decimal.Decimal, base, target Unit) (decimal.Decimal, error) {
	bd, ok := defs[base]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUnit
	}
	td, ok := defs[target]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUnit
	}
	if bd.family != td.family {
		return decimal.Zero, domain.ErrIncompatibleUnits
	}
	return quantity.Div(td.factor), nil
}

// Convert convierte entre dos unidades cualesquiera de la misma familia:
// pivota por la base (un Mul y un Div). Familias distintas → ErrIncompatibleUnits.
func Convert(quantity decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	fd, ok := defs[from]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUnit
	}
	td, ok := defs[to]
	if !ok {
		return decimal.Zero, domain.ErrUnknownUnit
	}
	if fd.family != td.family {
		return decimal.Zero, domain.ErrIncompatibleUnits
	}
	return quantity.Mul(fd.factor).Div(td.factor), nil
}

// Available devuelve las unidades de la familia de baseUnit, base primero.
// Se usa para poblar el selector de unidades de un producto.
func Available(baseUnit Unit) []Unit {
	d, ok := defs[baseUnit]
	if !ok {
		return nil
	}
	list := families[d.family]
	out := make([]Unit, len(list))
	copy(out, list)
	return out
}

// Format presenta una cantidad con su unidad, redondeada a 2 decimales para pantalla.
func Format(quantity decimal.Decimal, u Unit) string {
	return quantity.Round(2).String() + " " + string(u)
}
