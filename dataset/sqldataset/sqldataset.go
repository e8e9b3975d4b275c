/*
Package sqldataset reads and writes tables of rows from and to SQL
databases. SQLite3 files and PostgreSQL databases are supported.

A table of rows is an SQL table with a text column per feature, named
after it and in field order, followed by a label column holding "yes"
or "no".
*/
package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pkg/errors"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// LabelColumn is the name of the column rows are labelled in when writing
// tables.
const LabelColumn = "label"

/*
MaxRowInsertionsPerStatement is the maximum number of rows that are
inserted with a single insert command by Write. Writing more will result
in making more insertion commands.
*/
const MaxRowInsertionsPerStatement = 10

/*
IsSource returns whether the given input location refers to an SQL
database: a PostgreSQL connection URL or a SQLite3 (.db) file.
*/
func IsSource(location string) bool {
	return isPostgreSQL(location) || strings.HasSuffix(location, ".db")
}

/*
Database is an SQL database handle that knows the dialect of its driver.
*/
type Database struct {
	*sql.DB
	postgres bool
}

/*
Open takes a PostgreSQL database connection URL or a path to an SQLite3
(.db) file and returns a Database for it or an error.
*/
func Open(location string) (*Database, error) {
	driver := "sqlite3"
	if isPostgreSQL(location) {
		driver = "postgres"
	}
	db, err := sql.Open(driver, location)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", driver)
	}
	return &Database{DB: db, postgres: driver == "postgres"}, nil
}

func isPostgreSQL(location string) bool {
	return strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://")
}

/*
Load takes a context and the name of an SQL table and returns the table of rows read from it or an error. Every column but the
last is taken as a feature, in column order; the last column holds the
labels. NULL values are rejected.
*/
func (db *Database) Load(ctx context.Context, table string) (*dataset.Table, error) {
	name, err := quote(table)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", name))
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrapf(err, "reading columns of table %s", table)
	}
	if len(columns) < 2 {
		return nil, errors.Errorf("table %s needs at least one feature column and the label column", table)
	}
	t := &dataset.Table{FieldOrder: columns[:len(columns)-1]}
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for l := 1; rows.Next(); l++ {
		if err = rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scanning row %d of table %s", l, table)
		}
		record := make([]string, len(values))
		for i, v := range values {
			if !v.Valid {
				return nil, errors.Errorf("row %d of table %s has NULL in column %s", l, table, columns[i])
			}
			record[i] = v.String
		}
		if err = t.AppendRecord(l, record); err != nil {
			return nil, errors.Wrapf(err, "table %s", table)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading rows of table %s", table)
	}
	return t, nil
}

/*
Write takes a context, the name of an SQL table and a table of rows,
and stores the rows into the SQL table, creating it if it
does not exist. It returns an error if the table cannot be created or a
row cannot be inserted.
*/
func (db *Database) Write(ctx context.Context, table string, t *dataset.Table) error {
	name, err := quote(table)
	if err != nil {
		return err
	}
	columns := make([]string, 0, len(t.FieldOrder)+1)
	for _, f := range t.FieldOrder {
		if f == LabelColumn {
			return errors.Errorf("'%s' is reserved and cannot be used as feature name", f)
		}
		c, err := quote(f)
		if err != nil {
			return err
		}
		columns = append(columns, c)
	}
	columns = append(columns, LabelColumn)

	var createStmtBuf bytes.Buffer
	fmt.Fprintf(&createStmtBuf, "CREATE TABLE IF NOT EXISTS %s(", name)
	for i, c := range columns {
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		fmt.Fprintf(&createStmtBuf, "%s TEXT NOT NULL", c)
	}
	createStmtBuf.WriteString(")")
	if _, err = db.ExecContext(ctx, createStmtBuf.String()); err != nil {
		return errors.Wrapf(err, "creating table %s", table)
	}

	for start := 0; start < len(t.Rows); start += MaxRowInsertionsPerStatement {
		end := start + MaxRowInsertionsPerStatement
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		if err = db.insertRows(ctx, name, columns, t.Rows[start:end]); err != nil {
			return errors.Wrapf(err, "inserting rows %d to %d into table %s", start+1, end, table)
		}
	}
	return nil
}

func (db *Database) insertRows(ctx context.Context, name string, columns []string, rows []dataset.Row) error {
	var insertStmtBuf bytes.Buffer
	fmt.Fprintf(&insertStmtBuf, "INSERT INTO %s(%s) VALUES ", name, strings.Join(columns, ", "))
	args := make([]interface{}, 0, len(rows)*len(columns))
	for i, r := range rows {
		if len(r.Values)+1 != len(columns) {
			return &dataset.ArityError{Line: i + 1, Expected: len(columns), Got: len(r.Values) + 1}
		}
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString("(")
		for _, v := range r.Values {
			args = append(args, v)
			insertStmtBuf.WriteString(db.placeholder(len(args)))
			insertStmtBuf.WriteString(", ")
		}
		args = append(args, string(r.Label))
		insertStmtBuf.WriteString(db.placeholder(len(args)))
		insertStmtBuf.WriteString(")")
	}
	_, err := db.ExecContext(ctx, insertStmtBuf.String(), args...)
	return err
}

// placeholder returns the bind parameter for the i-th argument of a
// statement, starting at 1.
func (db *Database) placeholder(i int) string {
	if db.postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

func quote(identifier string) (string, error) {
	if identifier == "" {
		return "", errors.New("empty identifier")
	}
	if strings.ContainsAny(identifier, `"`) {
		return "", errors.Errorf(`identifier '%s' contains invalid character '"'`, identifier)
	}
	return `"` + identifier + `"`, nil
}
