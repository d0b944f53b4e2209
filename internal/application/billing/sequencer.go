package billing

import "fmt"

// FormatNumber arma el número de factura: prefijo + consecutivo con padding
// de 4 dígitos. Es el único contrato bit-exacto hacia afuera (recibos,
// exportes). Consecutivos >= 10000 simplemente crecen, sin error de overflow.
func FormatNumber(prefix string, counter int64) string {
	return fmt.Sprintf("%s%04d", prefix, counter)
}
