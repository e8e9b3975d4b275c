package dataset

import (
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherRows() []Row {
	return []Row{
		{Values: []string{"sun", "weak"}, Label: Yes},
		{Values: []string{"sun", "strong"}, Label: Yes},
		{Values: []string{"rain", "weak"}, Label: No},
		{Values: []string{"rain", "strong"}, Label: No},
	}
}

func TestNewBuildsRegistry(t *testing.T) {
	ds, err := New([]string{"Weather", "Wind"}, weatherRows())
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Count())
	features := ds.Features()
	require.Len(t, features, 2)
	assert.Equal(t, []string{"sun", "rain"}, features[0].AvailableValues())
	assert.Equal(t, []string{"weak", "strong"}, features[1].AvailableValues())

	// every value of every row belongs to its feature's domain
	for _, r := range ds.Rows() {
		for _, f := range features {
			v, err := r.ValueFor(f)
			require.NoError(t, err)
			ok, err := f.Valid(v)
			assert.True(t, ok)
			assert.NoError(t, err)
		}
	}
}

func TestNewRejectsWrongArity(t *testing.T) {
	rows := append(weatherRows(), Row{Values: []string{"sun"}, Label: Yes})
	_, err := New([]string{"Weather", "Wind"}, rows)
	require.Error(t, err)
	ae, ok := err.(*ArityError)
	require.True(t, ok, "expected *ArityError, got %T", err)
	assert.Equal(t, 5, ae.Line)
	assert.Equal(t, 3, ae.Expected)
	assert.Equal(t, 2, ae.Got)
}

func TestNewRejectsUnknownLabels(t *testing.T) {
	for _, l := range []Label{"maybe", "", "Yes"} {
		rows := append(weatherRows(), Row{Values: []string{"sun", "weak"}, Label: l})
		_, err := New([]string{"Weather", "Wind"}, rows)
		require.Error(t, err, "label %q", l)
		assert.Equal(t, ErrInvalidLabel, errors.Cause(err))
		assert.Contains(t, err.Error(), "row 5")
	}
}

func TestTallyAndHomogeneous(t *testing.T) {
	ds, err := New([]string{"Weather", "Wind"}, weatherRows())
	require.NoError(t, err)
	assert.Equal(t, Tally{2, 2}, ds.Tally())
	_, ok := ds.Homogeneous()
	assert.False(t, ok)

	weather, _ := ds.Registry().Feature("Weather")
	sunny, err := ds.SubsetWith(feature.NewDiscreteCriterion(weather, "sun"))
	require.NoError(t, err)
	assert.Equal(t, 2, sunny.Count())
	l, ok := sunny.Homogeneous()
	assert.True(t, ok)
	assert.Equal(t, Yes, l)
	assert.Equal(t, ds.Registry(), sunny.Registry())
	assert.Equal(t, 4, ds.Count(), "subsetting must not modify the dataset")

	empty, err := ds.SubsetWith(feature.NewDiscreteCriterion(weather, "snow"))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count())
	_, ok = empty.Homogeneous()
	assert.False(t, ok)
}

func TestWithout(t *testing.T) {
	rows := append(weatherRows(), weatherRows()[0])
	ds, err := New([]string{"Weather", "Wind"}, rows)
	require.NoError(t, err)

	rest, err := ds.Without(0)
	require.NoError(t, err)
	assert.Equal(t, 4, rest.Count())
	assert.Equal(t, rows[1:], rest.Rows())
	assert.Equal(t, Tally{2, 2}, rest.Tally())
	assert.Equal(t, 5, ds.Count())

	_, err = ds.Without(5)
	assert.Error(t, err)
	_, err = ds.Without(-1)
	assert.Error(t, err)
}

func TestTally(t *testing.T) {
	assert.Equal(t, Yes, Tally{}.Majority())
	assert.Equal(t, Yes, Tally{3, 3}.Majority())
	assert.Equal(t, No, Tally{2, 3}.Majority())
	assert.True(t, Tally{0, 3}.Pure())
	assert.False(t, Tally{1, 3}.Pure())
	assert.Equal(t, Tally{3, 4}, Tally{1, 3}.Add(Tally{2, 1}))
	assert.Equal(t, 7, Tally{3, 4}.Total())
}

func TestParseLabel(t *testing.T) {
	l, err := ParseLabel("yes")
	require.NoError(t, err)
	assert.Equal(t, Yes, l)
	l, err = ParseLabel("no")
	require.NoError(t, err)
	assert.Equal(t, No, l)
	_, err = ParseLabel("Yes")
	assert.Equal(t, ErrInvalidLabel, errors.Cause(err))
}

func TestTableDataset(t *testing.T) {
	tb := &Table{FieldOrder: []string{"Weather"}}
	require.NoError(t, tb.AppendRecord(2, []string{"sun", "yes"}))
	require.NoError(t, tb.AppendRecord(3, []string{"rain", "no"}))
	assert.Error(t, tb.AppendRecord(4, []string{"rain"}))
	err := tb.AppendRecord(5, []string{"rain", "maybe"})
	assert.Equal(t, ErrInvalidLabel, errors.Cause(err))

	ds, err := tb.Dataset(func(r *feature.Registry) error {
		return r.Declare("Weather", []string{"rain", "sun", "snow"})
	})
	require.NoError(t, err)
	weather, _ := ds.Registry().Feature("Weather")
	assert.Equal(t, []string{"rain", "sun", "snow"}, weather.AvailableValues())

	_, err = tb.Dataset(func(r *feature.Registry) error {
		return r.Declare("Weather", []string{"rain"})
	})
	assert.Error(t, err)
}
