package text

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tennis = `Outlook   Wind    Play
sunny     weak    no
sunny     strong  no

overcast  weak    yes
rain      weak    yes
`

func TestReadTable(t *testing.T) {
	tb, err := ReadTable(strings.NewReader(tennis))
	require.NoError(t, err)
	assert.Equal(t, []string{"Outlook", "Wind"}, tb.FieldOrder)
	assert.Equal(t, []dataset.Row{
		{Values: []string{"sunny", "weak"}, Label: dataset.No},
		{Values: []string{"sunny", "strong"}, Label: dataset.No},
		{Values: []string{"overcast", "weak"}, Label: dataset.Yes},
		{Values: []string{"rain", "weak"}, Label: dataset.Yes},
	}, tb.Rows)

	ds, err := tb.Dataset(nil)
	require.NoError(t, err)
	outlook, ok := ds.Registry().Feature("Outlook")
	require.True(t, ok)
	assert.Equal(t, []string{"sunny", "overcast", "rain"}, outlook.AvailableValues())
}

func TestReadTableWrongColumnCount(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a b label\nx y yes\nx yes\n"))
	require.Error(t, err)
	ae, ok := errors.Cause(err).(*dataset.ArityError)
	require.True(t, ok, "expected *dataset.ArityError, got %T", err)
	assert.Equal(t, 3, ae.Line)
	assert.Equal(t, 3, ae.Expected)
	assert.Equal(t, 2, ae.Got)
}

func TestReadTableUnknownLabel(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a label\nx YES\n"))
	require.Error(t, err)
	assert.Equal(t, dataset.ErrInvalidLabel, errors.Cause(err))
}

func TestReadTableMissingHeader(t *testing.T) {
	_, err := ReadTable(strings.NewReader("\n\n"))
	assert.Error(t, err)
	_, err = ReadTable(strings.NewReader("label\n"))
	assert.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(tennis))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))
	assert.Equal(t, "Outlook\tWind\tlabel\nsunny\tweak\tno\nsunny\tstrong\tno\novercast\tweak\tyes\nrain\tweak\tyes\n", buf.String())

	read, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, read)
}
