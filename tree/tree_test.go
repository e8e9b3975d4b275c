package tree

import (
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weatherTree splits on Weather and, under rain, on Wind.
func weatherTree() (Node, *feature.DiscreteFeature, *feature.DiscreteFeature) {
	weather := feature.NewDiscreteFeature("Weather", 0, []string{"sun", "rain"})
	wind := feature.NewDiscreteFeature("Wind", 1, []string{"weak", "strong"})
	rain := &Internal{
		Feature: wind,
		Children: map[string]Node{
			"weak":   &Leaf{Label: dataset.Yes, Tally: dataset.Tally{Yes: 1}},
			"strong": &Leaf{Label: dataset.No, Tally: dataset.Tally{No: 3}},
		},
	}
	root := &Internal{
		Feature: weather,
		Children: map[string]Node{
			"sun":  &Leaf{Label: dataset.Yes, Tally: dataset.Tally{Yes: 2}},
			"rain": rain,
		},
	}
	return root, weather, wind
}

func TestClassify(t *testing.T) {
	root, _, _ := weatherTree()
	for _, tc := range []struct {
		values []string
		label  dataset.Label
	}{
		{[]string{"sun", "strong"}, dataset.Yes},
		{[]string{"rain", "weak"}, dataset.Yes},
		{[]string{"rain", "strong"}, dataset.No},
	} {
		l, err := Classify(root, dataset.Row{Values: tc.values})
		require.NoError(t, err)
		assert.Equal(t, tc.label, l, "classifying %v", tc.values)
	}
}

func TestClassifyUnknownValue(t *testing.T) {
	root, _, _ := weatherTree()
	_, err := Classify(root, dataset.Row{Values: []string{"snow", "weak"}})
	require.Error(t, err)
	uve, ok := err.(*UnknownValueError)
	require.True(t, ok, "expected *UnknownValueError, got %T", err)
	assert.Equal(t, "Weather", uve.Feature)
	assert.Equal(t, "snow", uve.Value)
}

func TestClassifyLeaf(t *testing.T) {
	l, err := Classify(&Leaf{Label: dataset.No}, dataset.Row{})
	require.NoError(t, err)
	assert.Equal(t, dataset.No, l)
}

func TestSizeAndDepth(t *testing.T) {
	root, _, _ := weatherTree()
	assert.Equal(t, 5, Size(root))
	assert.Equal(t, 2, Depth(root))
	assert.Equal(t, 1, Size(&Leaf{}))
	assert.Equal(t, 0, Depth(&Leaf{}))
}

func TestFprint(t *testing.T) {
	root, _, _ := weatherTree()
	expected := "Weather = sun: yes (2/0)\n" +
		"Weather = rain\n" +
		"|\tWind = weak: yes (1/0)\n" +
		"|\tWind = strong: no (0/3)\n"
	assert.Equal(t, expected, String(root))
	assert.Equal(t, ": no (1/4)\n", String(&Leaf{Label: dataset.No, Tally: dataset.Tally{Yes: 1, No: 4}}))
}

func TestEvaluate(t *testing.T) {
	root, _, _ := weatherTree()
	rows := []dataset.Row{
		{Values: []string{"sun", "weak"}, Label: dataset.Yes},
		{Values: []string{"sun", "weak"}, Label: dataset.No},
		{Values: []string{"rain", "strong"}, Label: dataset.No},
		{Values: []string{"rain", "weak"}, Label: dataset.No},
	}
	r, err := Evaluate(root, rows)
	require.NoError(t, err)
	assert.Equal(t, Report{Correct: 2, Incorrect: 2}, r)
	assert.Equal(t, 50.0, r.Percentage())

	_, err = Evaluate(root, []dataset.Row{{Values: []string{"fog", "weak"}, Label: dataset.No}})
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	assert.Equal(t, 0.0, Report{}.Percentage())
	r := Report{Correct: 3, Incorrect: 1}.Add(Report{Correct: 0, Incorrect: 4})
	assert.Equal(t, Report{Correct: 3, Incorrect: 5}, r)
	assert.Equal(t, 37.5, r.Percentage())
	r.Record(true)
	assert.Equal(t, 4, r.Correct)
	assert.Equal(t, "4 correct, 5 incorrect (44.44%)", r.String())
}
