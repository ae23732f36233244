package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"5.5":       "R$ 5,50",
		"999.999":   "R$ 1.000,00",
		"1234.56":   "R$ 1.234,56",
		"1234567.8": "R$ 1.234.567,80",
		"-250":      "-R$ 250,00",
		"100000":    "R$ 100.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, Money(decimal.RequireFromString(in)), in)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/03/2026", Date(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", Date(time.Time{}))
}

func TestDocument_Bytes(t *testing.T) {
	d := New("Termo de Rescisão", "Acme Indústria Ltda")
	d.Field("Funcionário", "João Conceição")
	d.Section("Proventos")
	d.Line("Saldo de salário", Money(decimal.NewFromInt(1500)))
	d.Total("Total", Money(decimal.NewFromInt(1500)))
	d.Table([]string{"Setor", "Horas"}, [][]string{{"Produção", "12,00"}, {"Logística"}})
	d.Signature("Empregado")

	out, err := d.Bytes()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
