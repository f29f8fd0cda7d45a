package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bhasha-lang/bhasha"
)

// Run history lives in a small sqlite database so `bhasha -history` works
// across shells.

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	language     TEXT NOT NULL,
	path         TEXT NOT NULL,
	success      INTEGER NOT NULL,
	error        TEXT,
	output_lines INTEGER NOT NULL,
	steps        INTEGER NOT NULL
)`

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bhasha-history.db"
	}
	return filepath.Join(home, ".bhasha", "history.db")
}

func openHistory(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func recordRun(path, language, sourcePath string, res bhasha.Result) error {
	db, err := openHistory(path)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		`INSERT INTO runs (id, created_at, language, path, success, error, output_lines, steps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		time.Now().UTC().Format(time.RFC3339),
		language,
		sourcePath,
		boolToInt(res.Success),
		res.Error,
		len(res.Output),
		res.Steps,
	)
	return err
}

func showRecentRuns(path string) {
	db, err := openHistory(path)
	if err != nil {
		fail("open history: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(
		`SELECT created_at, language, path, success, error, output_lines, steps
		 FROM runs ORDER BY created_at DESC LIMIT 20`)
	if err != nil {
		fail("query history: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var createdAt, language, sourcePath, errMsg string
		var success, outputLines, steps int
		if err := rows.Scan(&createdAt, &language, &sourcePath, &success, &errMsg, &outputLines, &steps); err != nil {
			fail("scan history: %v", err)
		}
		status := "ok"
		if success == 0 {
			status = "FAILED: " + errMsg
		}
		fmt.Printf("%s  %-10s %-30s %4d lines %6d steps  %s\n",
			createdAt, language, sourcePath, outputLines, steps, status)
	}
	if err := rows.Err(); err != nil {
		fail("read history: %v", err)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
