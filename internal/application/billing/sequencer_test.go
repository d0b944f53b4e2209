package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/puntoventa/pos-api/internal/application/billing"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		prefix  string
		counter int64
		want    string
	}{
		{"INV", 1, "INV0001"},
		{"INV", 42, "INV0042"},
		{"INV", 9999, "INV9999"},
		// sin re-padding: el formato crece a partir de 10000
		{"INV", 10000, "INV10000"},
		{"INV", 123456, "INV123456"},
		{"", 7, "0007"},
		{"TKT-", 15, "TKT-0015"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, billing.FormatNumber(c.prefix, c.counter))
	}
}
