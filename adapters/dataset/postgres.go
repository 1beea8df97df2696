package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"agenteval/domain/score"
	apperrors "agenteval/internal/errors"
	"agenteval/ports"
)

// PostgresSource loads an input dataset stored in Postgres. Datasets live in
// an input_datasets row (name, evaluators) with their examples in
// input_examples (example_id, query, fields jsonb).
type PostgresSource struct {
	db   *sqlx.DB
	name string
	meta score.Metadata
}

func NewPostgresSource(db *sqlx.DB, name string, meta score.Metadata) *PostgresSource {
	return &PostgresSource{db: db, name: name, meta: meta}
}

// Connect opens a verified Postgres connection
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open database connection")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

func (s *PostgresSource) Load(ctx context.Context) (*ports.InputDataset, error) {
	var header struct {
		ID         int64  `db:"id"`
		Name       string `db:"name"`
		Evaluators []byte `db:"evaluators"`
	}
	query := `SELECT id, name, evaluators FROM input_datasets WHERE name = $1`
	if err := s.db.GetContext(ctx, &header, query, s.name); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.LookupError(fmt.Sprintf("input dataset not found: %s", s.name))
		}
		return nil, apperrors.Wrapf(err, "failed to load input dataset %s", s.name)
	}

	ds := &ports.InputDataset{Name: header.Name}
	if err := json.Unmarshal(header.Evaluators, &ds.Evaluators); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal dataset evaluators")
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT example_id, query, fields FROM input_examples WHERE dataset_id = $1 ORDER BY id`,
		header.ID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to load examples for dataset %s", s.name)
	}
	defer rows.Close()

	for rows.Next() {
		var exampleID, exampleQuery string
		var fieldsJSON []byte
		if err := rows.Scan(&exampleID, &exampleQuery, &fieldsJSON); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan input example")
		}
		example := ports.InputExample{ID: exampleID, Query: exampleQuery, Fields: map[string]any{}}
		if len(fieldsJSON) > 0 {
			if err := json.Unmarshal(fieldsJSON, &example.Fields); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal example fields")
			}
		}
		ds.Data = append(ds.Data, example)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate input examples")
	}

	if err := Validate(ds, s.meta); err != nil {
		return nil, err
	}
	return ds, nil
}
