package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuild(t *testing.T) {
	out, err := Build(
		Sheet{
			Name:    "Horas extras",
			Headers: []string{"Setor", "Horas", "Valor"},
			Rows: [][]any{
				{"Produção", 12.5, 480.75},
				{"Logística", 3.0, 90.0},
			},
		},
		Sheet{Name: "Ranking", Headers: []string{"Posição", "Funcionário"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Horas extras", "Ranking"}, f.GetSheetList())

	v, err := f.GetCellValue("Horas extras", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Produção", v)

	v, err = f.GetCellValue("Horas extras", "B2")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)

	v, err = f.GetCellValue("Ranking", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Funcionário", v)
}

func TestBuild_NoSheets(t *testing.T) {
	_, err := Build()
	assert.Error(t, err)
}
