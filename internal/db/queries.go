package db

import (
	"database/sql"
	"fmt"
)

// CompileRun is one recorded invocation of the compiler.
type CompileRun struct {
	ID         int64
	Junction   string
	ConfigPath string
	RowCount   int
	ErrorCount int
	CreatedAt  string
}

// RowRecord is one logic row of a recorded run.
type RowRecord struct {
	ID       int64
	RunID    int64
	Seq      int
	From     string
	To       string
	Template string
	Logic    string
	Error    string
}

// RecordRun stores a run and its rows in a single transaction and returns
// the new run id.
func (d *DB) RecordRun(junction, configPath string, rows []RowRecord) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	errorCount := 0
	for _, r := range rows {
		if r.Error != "" {
			errorCount++
		}
	}

	res, err := tx.Exec(
		"INSERT INTO compile_runs (junction, config_path, row_count, error_count) VALUES (?, ?, ?, ?)",
		junction, configPath, len(rows), errorCount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO compile_rows (run_id, seq, from_stage, to_stage, template, logic, error) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		var errText any
		if r.Error != "" {
			errText = r.Error
		}
		if _, err := stmt.Exec(runID, r.Seq, r.From, r.To, r.Template, r.Logic, errText); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", r.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns recorded runs, newest first. A non-empty junction
// restricts the list to that junction; limit <= 0 means no limit.
func (d *DB) ListRuns(junction string, limit int) ([]CompileRun, error) {
	query := "SELECT id, junction, config_path, row_count, error_count, created_at FROM compile_runs"
	var args []any
	if junction != "" {
		query += " WHERE junction = ?"
		args = append(args, junction)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []CompileRun
	for rows.Next() {
		var r CompileRun
		if err := rows.Scan(&r.ID, &r.Junction, &r.ConfigPath, &r.RowCount, &r.ErrorCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns a run by id, or nil when no run with that id exists.
func (d *DB) GetRun(id int64) (*CompileRun, error) {
	row := d.conn.QueryRow(
		"SELECT id, junction, config_path, row_count, error_count, created_at FROM compile_runs WHERE id = ?", id)

	var r CompileRun
	err := row.Scan(&r.ID, &r.Junction, &r.ConfigPath, &r.RowCount, &r.ErrorCount, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &r, nil
}

// GetRunRows returns the rows of a run in sequence order.
func (d *DB) GetRunRows(runID int64) ([]RowRecord, error) {
	rows, err := d.conn.Query(
		"SELECT id, run_id, seq, from_stage, to_stage, template, logic, error FROM compile_rows WHERE run_id = ? ORDER BY seq",
		runID)
	if err != nil {
		return nil, fmt.Errorf("get run rows: %w", err)
	}
	defer rows.Close()

	var records []RowRecord
	for rows.Next() {
		var r RowRecord
		var errText sql.NullString
		if err := rows.Scan(&r.ID, &r.RunID, &r.Seq, &r.From, &r.To, &r.Template, &r.Logic, &errText); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if errText.Valid {
			r.Error = errText.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
