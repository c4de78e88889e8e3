package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/notargets/gocrack/crack"
)

// Store is the run ledger: every applied crack with its duplicated nodes and
// rewritten cells
type Store struct {
	db *sql.DB
}

// Run is one ledger entry
type Run struct {
	ID            int64
	Mesh          string
	Group         string
	DupGroup      string
	NodesBefore   int
	NodesAdded    int
	CellsModified int
	FacetsAdded   int
	Digest        string
	CreatedAt     time.Time
}

// Open opens or creates the ledger at path, ":memory:" for a private in-memory one
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mesh TEXT NOT NULL,
		crack_group TEXT NOT NULL,
		dup_group TEXT NOT NULL,
		nodes_before INTEGER NOT NULL,
		nodes_added INTEGER NOT NULL,
		cells_modified INTEGER NOT NULL,
		facets_added INTEGER NOT NULL,
		digest TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS duplicates (
		run_id INTEGER NOT NULL,
		old_node INTEGER NOT NULL,
		new_node INTEGER NOT NULL,
		component INTEGER NOT NULL,
		PRIMARY KEY (run_id, old_node),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS correspondence (
		run_id INTEGER NOT NULL,
		cell INTEGER NOT NULL,
		old_node INTEGER NOT NULL,
		new_node INTEGER NOT NULL,
		PRIMARY KEY (run_id, cell, old_node),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_mesh ON runs(mesh);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one crack result in a single transaction and returns its run id
func (s *Store) Record(ctx context.Context, mesh string, res *crack.Result, digest string) (id int64, err error) {
	var tx *sql.Tx
	if tx, err = s.db.BeginTx(ctx, nil); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var result sql.Result
	if result, err = tx.ExecContext(ctx, `
		INSERT INTO runs (mesh, crack_group, dup_group, nodes_before, nodes_added,
			cells_modified, facets_added, digest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mesh, res.Group, res.DupGroup, res.NodesBefore, len(res.Duplicates),
		len(res.CellsModified), len(res.DuplicatedFacets), digest, time.Now().Unix()); err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	if id, err = result.LastInsertId(); err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, d := range res.Duplicates {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO duplicates (run_id, old_node, new_node, component) VALUES (?, ?, ?, ?)`,
			id, d.Old, d.New, d.Component); err != nil {
			return 0, fmt.Errorf("failed to insert duplicate %d: %w", d.Old, err)
		}
	}
	var stmt *sql.Stmt
	if stmt, err = tx.PrepareContext(ctx,
		`INSERT INTO correspondence (run_id, cell, old_node, new_node) VALUES (?, ?, ?, ?)`); err != nil {
		return 0, fmt.Errorf("failed to prepare correspondence insert: %w", err)
	}
	defer stmt.Close()
	for _, k := range res.Correspondence.Cells() {
		for _, p := range res.Correspondence.Pairs(k) {
			if _, err = stmt.ExecContext(ctx, id, k, p[0], p[1]); err != nil {
				return 0, fmt.Errorf("failed to insert correspondence of cell %d: %w", k, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// Runs lists the recorded runs in insertion order, all meshes when mesh is empty
func (s *Store) Runs(ctx context.Context, mesh string) ([]Run, error) {
	query := `
		SELECT id, mesh, crack_group, dup_group, nodes_before, nodes_added,
			cells_modified, facets_added, digest, created_at
		FROM runs`
	var args []any
	if mesh != "" {
		query += ` WHERE mesh = ?`
		args = append(args, mesh)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Mesh, &r.Group, &r.DupGroup, &r.NodesBefore, &r.NodesAdded,
			&r.CellsModified, &r.FacetsAdded, &r.Digest, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Correspondence loads the rewritten cells of one run
func (s *Store) Correspondence(ctx context.Context, runID int64) (crack.Correspondence, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cell, old_node, new_node FROM correspondence
		WHERE run_id = ? ORDER BY cell, old_node`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query correspondence: %w", err)
	}
	defer rows.Close()

	corr := make(crack.Correspondence)
	for rows.Next() {
		var k, old, nv int
		if err := rows.Scan(&k, &old, &nv); err != nil {
			return nil, fmt.Errorf("failed to scan correspondence: %w", err)
		}
		if corr[k] == nil {
			corr[k] = make(map[int]int)
		}
		corr[k][old] = nv
	}
	return corr, rows.Err()
}

// Duplicates loads the original to new node ids of one run
func (s *Store) Duplicates(ctx context.Context, runID int64) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT old_node, new_node FROM duplicates WHERE run_id = ? ORDER BY new_node`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query duplicates: %w", err)
	}
	defer rows.Close()

	dups := make(map[int]int)
	for rows.Next() {
		var old, nv int
		if err := rows.Scan(&old, &nv); err != nil {
			return nil, fmt.Errorf("failed to scan duplicate: %w", err)
		}
		dups[old] = nv
	}
	return dups, rows.Err()
}
