package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/sapling/tree"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var reportFormats = []string{"text", "yaml", "json"}

type accuracy struct {
	Correct    int     `json:"correct" yaml:"correct"`
	Incorrect  int     `json:"incorrect" yaml:"incorrect"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

func newAccuracy(r tree.Report) *accuracy {
	return &accuracy{r.Correct, r.Incorrect, r.Percentage()}
}

func (a *accuracy) String() string {
	return tree.Report{Correct: a.Correct, Incorrect: a.Incorrect}.String()
}

type treeStats struct {
	Size  int `json:"size" yaml:"size"`
	Depth int `json:"depth" yaml:"depth"`
}

/*
report gathers what commands find out about trees and datasets, so it
can be written in any of the report formats. Sections left nil are
omitted.
*/
type report struct {
	Rows              int        `json:"rows" yaml:"rows"`
	Grown             *treeStats `json:"grown,omitempty" yaml:"grown,omitempty"`
	Pruned            *treeStats `json:"pruned,omitempty" yaml:"pruned,omitempty"`
	Training          *accuracy  `json:"training,omitempty" yaml:"training,omitempty"`
	PrunedTraining    *accuracy  `json:"prunedTraining,omitempty" yaml:"prunedTraining,omitempty"`
	Test              *accuracy  `json:"test,omitempty" yaml:"test,omitempty"`
	LeaveOneOut       *accuracy  `json:"leaveOneOut,omitempty" yaml:"leaveOneOut,omitempty"`
	PrunedLeaveOneOut *accuracy  `json:"prunedLeaveOneOut,omitempty" yaml:"prunedLeaveOneOut,omitempty"`
}

func stats(n tree.Node) *treeStats {
	return &treeStats{tree.Size(n), tree.Depth(n)}
}

func validReportFormat(format string) error {
	for _, f := range reportFormats {
		if f == format {
			return nil
		}
	}
	return errors.Errorf("unknown report format %s, valid formats are %v", format, reportFormats)
}

// write writes the report onto w in the given format.
func (r *report) write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(r), "writing report in JSON")
	case "yaml":
		data, err := yaml.Marshal(r)
		if err != nil {
			return errors.Wrap(err, "writing report in YAML")
		}
		_, err = w.Write(data)
		return err
	case "text":
		return r.writeText(w)
	}
	return validReportFormat(format)
}

func (r *report) writeText(w io.Writer) error {
	lines := []struct {
		title string
		value fmt.Stringer
	}{
		{"Training accuracy (unpruned)", r.Training},
		{"Training accuracy (pruned)", r.PrunedTraining},
		{"Test accuracy", r.Test},
		{"Leave-one-out accuracy (unpruned)", r.LeaveOneOut},
		{"Leave-one-out accuracy (pruned)", r.PrunedLeaveOneOut},
	}
	if _, err := fmt.Fprintf(w, "Rows: %d\n", r.Rows); err != nil {
		return err
	}
	if r.Grown != nil {
		if _, err := fmt.Fprintf(w, "Grown tree: %d nodes, depth %d\n", r.Grown.Size, r.Grown.Depth); err != nil {
			return err
		}
	}
	if r.Pruned != nil {
		if _, err := fmt.Fprintf(w, "Pruned tree: %d nodes, depth %d\n", r.Pruned.Size, r.Pruned.Depth); err != nil {
			return err
		}
	}
	for _, l := range lines {
		if a, ok := l.value.(*accuracy); !ok || a == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %v\n", l.title, l.value); err != nil {
			return err
		}
	}
	return nil
}
