package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer descompone (NFD), elimina marcas diacríticas y recompone (NFC):
// "Azúcar" → "azucar". Así la búsqueda es insensible a mayúsculas y acentos.
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize prepara un texto para indexar o buscar: minúsculas y sin acentos.
func Normalize(s string) string {
	out, _, err := transform.String(normalizer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// SearchText concatena los campos buscables de un producto ya normalizados.
func SearchText(name, category, barcode string) string {
	return Normalize(strings.TrimSpace(name + " " + category + " " + barcode))
}
