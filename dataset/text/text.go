/*
Package text reads tables of rows from whitespace-delimited text.

The first line holds the names of the features followed by the name of
the label column, which is ignored. Every other non-blank line holds a row:
one value per feature followed by its label, "yes" or "no".
*/
package text

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pkg/errors"
)

/*
ReadTable takes an io.Reader with whitespace-delimited text and returns
the table read from it or an error. Reading stops at the first malformed
row: one with a different number of columns than the header or with an
invalid label.
*/
func ReadTable(r io.Reader) (*dataset.Table, error) {
	scanner := bufio.NewScanner(r)
	var t *dataset.Table
	for l := 1; scanner.Scan(); l++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if t == nil {
			if len(fields) < 2 {
				return nil, errors.Errorf("line %d: header needs at least one feature and the label column", l)
			}
			t = &dataset.Table{FieldOrder: fields[:len(fields)-1]}
			continue
		}
		if err := t.AppendRecord(l, fields); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading table")
	}
	if t == nil {
		return nil, errors.New("reading header: no header found")
	}
	return t, nil
}

/*
ReadTableFromFilePath takes a filepath string, opens the file it points to
and uses ReadTable to return the table read from it. An empty filepath
reads from STDIN.
*/
func ReadTableFromFilePath(filepath string) (*dataset.Table, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrapf(err, "opening table at %s", filepath)
		}
		defer f.Close()
	}
	t, err := ReadTable(f)
	if err != nil {
		err = errors.Wrapf(err, "parsing table from %s", displayName(filepath))
	}
	return t, err
}

// LabelHeader is the name given to the label column when writing tables.
const LabelHeader = "label"

/*
WriteTable takes an io.Writer and a table and writes the table onto the
writer in the format ReadTable reads, with values separated by tabs.
Values are expected not to contain whitespace.
*/
func WriteTable(w io.Writer, t *dataset.Table) error {
	bw := bufio.NewWriter(w)
	header := append(append([]string(nil), t.FieldOrder...), LabelHeader)
	if _, err := bw.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, r := range t.Rows {
		record := append(append([]string(nil), r.Values...), string(r.Label))
		if _, err := bw.WriteString(strings.Join(record, "\t") + "\n"); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}
	return errors.Wrap(bw.Flush(), "writing table")
}

func displayName(filepath string) string {
	if filepath == "" {
		return "STDIN"
	}
	return filepath
}
