package database

import (
	"fmt"
	"strings"
)

// Record is implemented by every entity type that knows its own natural
// identity, so the store never type-switches on what it is handed.
// KeyColumns must be a subset of Columns and covered by a UNIQUE
// constraint in the schema.
type Record interface {
	Table() string
	KeyColumns() []string
	KeyValues() []any
	Columns() []string
	Values() []any
}

// Add inserts rec unless a row with its natural key is already stored,
// and reports whether a new row was written. A returned error means the
// store rejected the write and the transaction was rolled back; the
// stored data is unchanged either way.
func (st *Store) Add(rec Record) (bool, error) {
	stored, err := st.Contains(rec)
	if err != nil {
		return false, err
	}
	if stored {
		return false, nil
	}

	tx, err := st.DB.Begin()
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec(insertSQL(rec), rec.Values()...); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("add %s: %w", rec.Table(), err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("add %s: %w", rec.Table(), err)
	}
	return true, nil
}

// Merge upserts rec by its natural key, replacing every non-key column.
// A stub row gains the fuller data of a later fetch.
func (st *Store) Merge(rec Record) error {
	tx, err := st.DB.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(mergeSQL(rec), rec.Values()...); err != nil {
		tx.Rollback()
		return fmt.Errorf("merge %s: %w", rec.Table(), err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("merge %s: %w", rec.Table(), err)
	}
	return nil
}

// Contains reports whether a row with rec's natural key is stored.
func (st *Store) Contains(rec Record) (bool, error) {
	stmt := fmt.Sprintf("SELECT 1 FROM %s WHERE %s", rec.Table(), keyPredicate(rec))
	rows, err := st.DB.Query(stmt, rec.KeyValues()...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	stored := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return stored, nil
}

func insertSQL(rec Record) string {
	cols := rec.Columns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		rec.Table(), strings.Join(cols, ", "), placeholders)
}

func mergeSQL(rec Record) string {
	keys := make(map[string]bool)
	for _, col := range rec.KeyColumns() {
		keys[col] = true
	}
	var updates []string
	for _, col := range rec.Columns() {
		if !keys[col] {
			updates = append(updates, col+" = excluded."+col)
		}
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s",
		insertSQL(rec), strings.Join(rec.KeyColumns(), ", "), strings.Join(updates, ", "))
}

func keyPredicate(rec Record) string {
	preds := make([]string, 0, len(rec.KeyColumns()))
	for _, col := range rec.KeyColumns() {
		preds = append(preds, col+" = ?")
	}
	return strings.Join(preds, " AND ")
}
