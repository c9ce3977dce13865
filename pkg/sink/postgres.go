package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-leaknet/pkg/config"
	"github.com/dd0wney/cluso-leaknet/pkg/export"
	"github.com/dd0wney/cluso-leaknet/pkg/identity"
	"github.com/dd0wney/cluso-leaknet/pkg/logging"
)

// PostgresSink replaces the four tables of a schema with the contents of a
// run, inside one transaction.
type PostgresSink struct {
	pool   *pgxpool.Pool
	schema string
	logger logging.Logger
}

// NewPostgres connects, verifies the connection and creates the schema.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*PostgresSink, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolCfg.MaxConns = 4
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = 5 * time.Minute
	poolCfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PostgresSink{
		pool:   pool,
		schema: cfg.Schema,
		logger: logger.With(logging.Component("postgres")),
	}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Name implements Sink.
func (s *PostgresSink) Name() string { return "postgres" }

// Close closes the connection pool.
func (s *PostgresSink) Close() error {
	s.pool.Close()
	return nil
}

// Publish reads the four tables back from the run directory and copies
// them in. Readers of the schema see either the previous run or this one.
func (s *PostgresSink) Publish(ctx context.Context, run *Run) error {
	loads, err := loadTables(run)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, l := range loads {
		ident := pgx.Identifier{s.schema, l.table}
		if _, err := tx.Exec(ctx, "TRUNCATE "+ident.Sanitize()); err != nil {
			return fmt.Errorf("truncate %s: %w", l.table, err)
		}
		n, err := tx.CopyFrom(ctx, ident, l.columns, pgx.CopyFromRows(l.rows))
		if err != nil {
			return fmt.Errorf("copy into %s: %w", l.table, err)
		}
		s.logger.Debug("table loaded", logging.String("table", l.table), logging.Count(int(n)))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("tables published", logging.RunID(run.ID), logging.String("schema", s.schema))
	return nil
}

type tableLoad struct {
	table   string
	columns []string
	rows    [][]any
}

func loadTables(run *Run) ([]tableLoad, error) {
	var loads []tableLoad

	p, err := run.mustPath(export.OfficerEdges)
	if err != nil {
		return nil, err
	}
	officerEdges, err := export.ReadEdges(p)
	if err != nil {
		return nil, err
	}
	rows, err := officerEdgeRows(officerEdges)
	if err != nil {
		return nil, err
	}
	loads = append(loads, tableLoad{"officer_edges", officerEdgeColumns, rows})

	if p, err = run.mustPath(export.CompanyEdges); err != nil {
		return nil, err
	}
	companyEdges, err := export.ReadEdges(p)
	if err != nil {
		return nil, err
	}
	loads = append(loads, tableLoad{"corporation_edges", companyEdgeColumns, companyEdgeRows(companyEdges)})

	if p, err = run.mustPath(export.OfficerAttributes); err != nil {
		return nil, err
	}
	officers, err := export.ReadOfficerAttributes(p)
	if err != nil {
		return nil, err
	}
	loads = append(loads, tableLoad{"officer_attributes", officerAttributeColumns, officerAttributeRows(officers)})

	if p, err = run.mustPath(export.CompanyAttributes); err != nil {
		return nil, err
	}
	companies, err := export.ReadCompanyAttributes(p)
	if err != nil {
		return nil, err
	}
	loads = append(loads, tableLoad{"corporation_attributes", companyAttributeColumns, companyAttributeRows(companies)})

	return loads, nil
}

var (
	officerEdgeColumns      = []string{"source_name", "source_id_number", "target_name", "target_id_number", "weight"}
	companyEdgeColumns      = []string{"source", "target", "weight"}
	officerAttributeColumns = []string{"name", "id_number", "full_name", "company1", "company2", "company3"}
	companyAttributeColumns = []string{"corp_id", "company_name", "alt_name", "officer1", "officer2", "officer3"}
)

// officerEdgeRows splits both endpoint keys into their two columns.
func officerEdgeRows(edges []export.EdgeRow) ([][]any, error) {
	rows := make([][]any, 0, len(edges))
	for _, e := range edges {
		src, err := identity.ParseOfficerKey(e.Source)
		if err != nil {
			return nil, fmt.Errorf("edge source: %w", err)
		}
		dst, err := identity.ParseOfficerKey(e.Target)
		if err != nil {
			return nil, fmt.Errorf("edge target: %w", err)
		}
		rows = append(rows, []any{src.Name, src.IDNumber, dst.Name, dst.IDNumber, int32(e.Weight)})
	}
	return rows, nil
}

func companyEdgeRows(edges []export.EdgeRow) [][]any {
	rows := make([][]any, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []any{e.Source, e.Target, int32(e.Weight)})
	}
	return rows
}
