package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the trading database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Migrate creates the summary tables when they do not exist yet.
// Column names match what the recorder writes, accents included; the
// loader resolves them by alias so older exports keep working too.
func (db *DB) Migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resumo_diario (
			"DATA" TEXT NOT NULL UNIQUE,
			"LUCRO LIQUIDO" REAL NOT NULL,
			"TOTAL TRADES" INTEGER DEFAULT 0,
			"GAINS" INTEGER DEFAULT 0,
			"LOSSES" INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS resumo_mensal (
			"MÊS/ANO" TEXT NOT NULL UNIQUE,
			"LUCRO LIQUIDO" REAL NOT NULL,
			"TOTAL TRADES" INTEGER DEFAULT 0,
			"GAINS" INTEGER DEFAULT 0,
			"LOSSES" INTEGER DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS resumo_anual (
			"ANO" INTEGER NOT NULL UNIQUE,
			"LUCRO LIQUIDO" REAL NOT NULL,
			"TOTAL TRADES" INTEGER DEFAULT 0,
			"GAINS" INTEGER DEFAULT 0,
			"LOSSES" INTEGER DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}

// Begin starts a new transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
