package tabular

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sebaaaap/Dashboard-prueba1/internal/domain/models"
)

func TestReadCSV(t *testing.T) {
	t.Run("header normalized and blank rows dropped", func(t *testing.T) {
		input := "\xEF\xBB\xBFFecha , Dia_Semana,servicios_atendidos\n2024-01-15,Lunes,12\n,,\n2024-01-16,Martes,8\n"
		ds, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"fecha", "dia_semana", "servicios_atendidos"}, ds.Headers)
		require.Len(t, ds.Rows, 2)
		assert.Equal(t, 2, ds.Rows[0].Line)
		assert.Equal(t, 4, ds.Rows[1].Line)

		weekday, err := ds.Rows[1].String("dia_semana")
		require.NoError(t, err)
		assert.Equal(t, "Martes", weekday)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("blank header", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(" , \n1,2\n"))
		assert.ErrorIs(t, err, ErrMissingHeader)
	})
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"fecha", "dia_semana", "hora_apertura", "servicios_atendidos"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{45306, "Lunes", 0.375, 12}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"2024-01-16", "Martes", "Cerrado", 0}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ds, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)

	date, err := ds.Rows[0].Date("fecha")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)

	opening, err := ds.Rows[0].Clock("hora_apertura")
	require.NoError(t, err)
	assert.Equal(t, "09:00", opening)

	services, err := ds.Rows[0].Int("servicios_atendidos")
	require.NoError(t, err)
	assert.Equal(t, 12, services)

	closed, err := ds.Rows[1].Clock("hora_apertura")
	require.NoError(t, err)
	assert.Equal(t, models.ClosedSentinel, closed)
}

func TestFromValues(t *testing.T) {
	ds, err := FromValues([][]interface{}{
		{"fecha", "ingresos_servicios", "activo"},
		{"2024-03-01", 150000.5, true},
		{"2024-03-02"},
	})
	require.NoError(t, err)
	require.Len(t, ds.Rows, 2)

	revenue, err := ds.Rows[0].Float("ingresos_servicios")
	require.NoError(t, err)
	assert.Equal(t, 150000.5, revenue)

	assert.False(t, ds.Rows[1].Has("ingresos_servicios"))
}

func TestRowAccessors(t *testing.T) {
	row := NewRow(7, map[string]string{
		"fecha":        "15/01/2024",
		"cantidad":     "5.0",
		"fraccion":     "2.5",
		"texto":        "abc",
		"arriendo":     "",
		"hora_cierre":  "18:30",
		"no_es_numero": "NaN",
	})

	date, err := row.Date("fecha")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)

	n, err := row.Int("cantidad")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = row.Int("fraccion")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = row.Float("texto")
	var cellErr *CellError
	require.ErrorAs(t, err, &cellErr)
	assert.Equal(t, 7, cellErr.Line)
	assert.Equal(t, "texto", cellErr.Column)

	_, err = row.Float("no_es_numero")
	assert.Error(t, err)

	zero, err := row.FloatOrZero("arriendo")
	require.NoError(t, err)
	assert.Zero(t, zero)

	zero, err = row.FloatOrZero("sin_columna")
	require.NoError(t, err)
	assert.Zero(t, zero)

	_, err = row.FloatOrZero("texto")
	assert.Error(t, err)

	closing, err := row.Clock("hora_cierre")
	require.NoError(t, err)
	assert.Equal(t, "18:30", closing)

	_, err = row.String("falta")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = row.Date("texto")
	assert.Error(t, err)
}

func TestDateShortDayMonth(t *testing.T) {
	want := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, v := range []string{"5/1/2025", "05/1/2025", "5-1-2025", "05-01-2025"} {
		got, err := NewRow(2, map[string]string{"fecha": v}).Date("fecha")
		require.NoError(t, err, v)
		assert.Equal(t, want, got, v)
	}
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("registro.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	format, err = DetectFormat("registro.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = DetectFormat("registro.xls")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
