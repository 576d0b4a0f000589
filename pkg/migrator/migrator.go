package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const migrationsTable = "schema_migrations"

// Migration SQL миграция, загруженная из файла вида 001_init.sql
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет SQL миграции из директории в порядке версий
type Migrator struct {
	db     *sql.DB
	dir    string
	logger Logger
}

// New создает мигратор
func New(db *sql.DB, dir string, logger Logger) *Migrator {
	return &Migrator{db: db, dir: dir, logger: logger}
}

// Load читает все .sql файлы директории и сортирует их по версии
// Файлы без числового префикса пропускаются
func Load(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("migrator: read directory %s: %w", dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			continue
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("migrator: read file %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    entry.Name(),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Up применяет все ещё не примененные миграции
// Каждая миграция выполняется в отдельной транзакции вместе с записью в schema_migrations
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if _, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
    version    INTEGER PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return 0, fmt.Errorf("migrator: create %s: %w", migrationsTable, err)
	}

	migrations, err := Load(m.dir)
	if err != nil {
		return 0, err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mg := range migrations {
		if applied[mg.Version] {
			continue
		}

		if err := m.apply(ctx, mg); err != nil {
			return count, err
		}

		m.logger.Info("Migration applied: %s", mg.Name)
		count++
	}

	return count, nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT version FROM `+migrationsTable)
	if err != nil {
		return nil, fmt.Errorf("migrator: query applied versions: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("migrator: scan version: %w", err)
		}
		applied[v] = true
	}

	return applied, rows.Err()
}

func (m *Migrator) apply(ctx context.Context, mg Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrator: begin %s: %w", mg.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, mg.SQL); err != nil {
		return fmt.Errorf("migrator: apply %s: %w", mg.Name, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+migrationsTable+` (version, name) VALUES ($1, $2)`, mg.Version, mg.Name); err != nil {
		return fmt.Errorf("migrator: record %s: %w", mg.Name, err)
	}

	return tx.Commit()
}
