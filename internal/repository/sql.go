package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"base-resolver/internal/schema"
)

const (
	createDefinitionsTable = `CREATE TABLE IF NOT EXISTS definitions (
	id TEXT PRIMARY KEY,
	ancestor TEXT NOT NULL DEFAULT ''
)`

	createFieldsTable = `CREATE TABLE IF NOT EXISTS fields (
	definition_id TEXT NOT NULL REFERENCES definitions(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	path TEXT NOT NULL,
	min INTEGER NOT NULL,
	max TEXT NOT NULL,
	base_path TEXT,
	base_min INTEGER,
	base_max TEXT,
	base_origin TEXT,
	base_generated_at TEXT,
	PRIMARY KEY (definition_id, position)
)`

	upsertDefinition = `INSERT INTO definitions (id, ancestor) VALUES (?, ?) ` +
		`ON CONFLICT(id) DO UPDATE SET ancestor = excluded.ancestor`

	deleteFields = `DELETE FROM fields WHERE definition_id = ?`

	insertField = `INSERT INTO fields (definition_id, position, path, min, max, ` +
		`base_path, base_min, base_max, base_origin, base_generated_at) ` +
		`VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateBase = `UPDATE fields SET base_path = ?, base_min = ?, base_max = ?, ` +
		`base_origin = ?, base_generated_at = ? WHERE definition_id = ? AND position = ?`

	selectDefinitions = `SELECT id, ancestor FROM definitions ORDER BY id`

	selectFields = `SELECT definition_id, path, min, max, base_path, base_min, base_max, ` +
		`base_origin, base_generated_at FROM fields ORDER BY definition_id, position`
)

// SQLStore persists definitions and their provenance in a SQL database.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open database handle. The caller owns db.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the tables if they don't exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range []string{createDefinitionsTable, createFieldsTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return nil
}

// Import stores definitions, replacing the field lists of existing ids.
func (s *SQLStore) Import(ctx context.Context, defs []*schema.Definition) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, def := range defs {
			if _, err := tx.ExecContext(ctx, upsertDefinition, def.ID, def.Ancestor); err != nil {
				return fmt.Errorf("failed to store definition %s: %w", def.ID, err)
			}

			if _, err := tx.ExecContext(ctx, deleteFields, def.ID); err != nil {
				return fmt.Errorf("failed to clear fields of %s: %w", def.ID, err)
			}

			for i := range def.Fields {
				f := &def.Fields[i]
				args := append([]any{def.ID, i, f.Path, f.Min, f.Max.String()}, baseArgs(f.Base)...)

				if _, err := tx.ExecContext(ctx, insertField, args...); err != nil {
					return fmt.Errorf("failed to store field %s of %s: %w", f.Path, def.ID, err)
				}
			}
		}

		return nil
	})
}

// SaveProvenance writes the Base descriptor of every field back.
func (s *SQLStore) SaveProvenance(ctx context.Context, defs []*schema.Definition) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, def := range defs {
			for i := range def.Fields {
				args := append(baseArgs(def.Fields[i].Base), def.ID, i)

				if _, err := tx.ExecContext(ctx, updateBase, args...); err != nil {
					return fmt.Errorf("failed to save provenance of %s in %s: %w", def.Fields[i].Path, def.ID, err)
				}
			}
		}

		return nil
	})
}

// Load reads every definition into a new Memory repository.
func (s *SQLStore) Load(ctx context.Context) (*Memory, error) {
	defs, order, err := s.loadDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.loadFields(ctx, defs); err != nil {
		return nil, err
	}

	mem := NewMemory()
	for _, id := range order {
		if err := mem.Register(defs[id]); err != nil {
			return nil, err
		}
	}

	return mem, nil
}

func (s *SQLStore) loadDefinitions(ctx context.Context) (map[string]*schema.Definition, []string, error) {
	rows, err := s.db.QueryContext(ctx, selectDefinitions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query definitions: %w", err)
	}
	defer rows.Close()

	defs := make(map[string]*schema.Definition)

	var order []string

	for rows.Next() {
		def := &schema.Definition{}
		if err := rows.Scan(&def.ID, &def.Ancestor); err != nil {
			return nil, nil, fmt.Errorf("failed to scan definition: %w", err)
		}

		defs[def.ID] = def
		order = append(order, def.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read definitions: %w", err)
	}

	return defs, order, nil
}

func (s *SQLStore) loadFields(ctx context.Context, defs map[string]*schema.Definition) error {
	rows, err := s.db.QueryContext(ctx, selectFields)
	if err != nil {
		return fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			defID, maxStr string
			f             schema.Field
			base          baseColumns
		)

		if err := rows.Scan(&defID, &f.Path, &f.Min, &maxStr,
			&base.path, &base.min, &base.max, &base.origin, &base.generatedAt); err != nil {
			return fmt.Errorf("failed to scan field: %w", err)
		}

		def, ok := defs[defID]
		if !ok {
			return fmt.Errorf("field %s belongs to unknown definition %s", f.Path, defID)
		}

		if f.Max, err = schema.ParseMax(maxStr); err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Path, defID, err)
		}

		if f.Base, err = base.descriptor(); err != nil {
			return fmt.Errorf("field %s of %s: %w", f.Path, defID, err)
		}

		def.Fields = append(def.Fields, f)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read fields: %w", err)
	}

	return nil
}

func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// baseColumns holds the nullable base_* columns of one field row.
type baseColumns struct {
	path        sql.NullString
	min         sql.NullInt64
	max         sql.NullString
	origin      sql.NullString
	generatedAt sql.NullString
}

func (b baseColumns) descriptor() (*schema.Descriptor, error) {
	if !b.path.Valid {
		return nil, nil
	}

	d := &schema.Descriptor{Path: b.path.String, Min: int(b.min.Int64)}

	var err error
	if d.Max, err = schema.ParseMax(b.max.String); err != nil {
		return nil, err
	}

	if d.Origin, err = schema.ParseOrigin(b.origin.String); err != nil {
		return nil, err
	}

	if b.generatedAt.Valid && b.generatedAt.String != "" {
		if d.GeneratedAt, err = time.Parse(time.RFC3339Nano, b.generatedAt.String); err != nil {
			return nil, fmt.Errorf("invalid base_generated_at %q: %w", b.generatedAt.String, err)
		}
	}

	return d, nil
}

// baseArgs returns the base_* column values for d, all NULL when d is nil.
func baseArgs(d *schema.Descriptor) []any {
	if d == nil {
		return []any{nil, nil, nil, nil, nil}
	}

	var generatedAt any
	if !d.GeneratedAt.IsZero() {
		generatedAt = d.GeneratedAt.UTC().Format(time.RFC3339Nano)
	}

	return []any{d.Path, d.Min, d.Max.String(), d.Origin.String(), generatedAt}
}
