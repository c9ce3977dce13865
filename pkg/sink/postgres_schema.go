package sink

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

const schemaDDL = `
	CREATE SCHEMA IF NOT EXISTS {schema};

	CREATE TABLE IF NOT EXISTS {schema}.officer_edges (
		source_name TEXT NOT NULL,
		source_id_number TEXT NOT NULL,
		target_name TEXT NOT NULL,
		target_id_number TEXT NOT NULL,
		weight INTEGER NOT NULL CHECK (weight >= 1),
		PRIMARY KEY (source_name, source_id_number, target_name, target_id_number)
	);

	CREATE TABLE IF NOT EXISTS {schema}.corporation_edges (
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		weight INTEGER NOT NULL CHECK (weight >= 1),
		PRIMARY KEY (source, target)
	);

	CREATE TABLE IF NOT EXISTS {schema}.officer_attributes (
		name TEXT NOT NULL,
		id_number TEXT NOT NULL,
		full_name TEXT NOT NULL,
		company1 TEXT NOT NULL,
		company2 TEXT NOT NULL,
		company3 TEXT NOT NULL,
		PRIMARY KEY (name, id_number)
	);

	CREATE TABLE IF NOT EXISTS {schema}.corporation_attributes (
		corp_id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		alt_name TEXT NOT NULL,
		officer1 TEXT NOT NULL,
		officer2 TEXT NOT NULL,
		officer3 TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_officer_edges_target ON {schema}.officer_edges(target_name, target_id_number);
	CREATE INDEX IF NOT EXISTS idx_corporation_edges_target ON {schema}.corporation_edges(target);
	`

// schemaSQL renders the DDL for schema.
func schemaSQL(schema string) string {
	return strings.ReplaceAll(schemaDDL, "{schema}", pgx.Identifier{schema}.Sanitize())
}

func (s *PostgresSink) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL(s.schema))
	return err
}
