package db

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed scripts/*.sql
var bootstrapScripts embed.FS

// BootstrapDB executes every embedded scripts/*.sql file against the provided database, in alphabetical order
// by filename. The scripts are idempotent, so this is safe to run on every startup.
func BootstrapDB(DB *sql.DB, logger *zap.Logger) error {
	foundSQLFile := false
	scripts, err := bootstrapScripts.ReadDir("scripts")
	if err != nil {
		return err
	}
	for _, finfo := range scripts {
		if finfo.IsDir() {
			continue
		}
		foundSQLFile = true

		script, err := bootstrapScripts.ReadFile("scripts/" + finfo.Name())
		if err != nil {
			return err
		}
		_, err = DB.Exec(string(script))
		if err != nil {
			logger.Error("could not execute bootstrap script", zap.String("script", finfo.Name()), zap.Error(err))
			return fmt.Errorf("bootstrap script %s: %w", finfo.Name(), err)
		}
		logger.Debug("executed bootstrap script", zap.String("script", finfo.Name()))
	}
	if !foundSQLFile {
		return fmt.Errorf("could not find any *.sql files in schema folder scripts")
	}
	return nil
}

// Open opens the sqlite database at path and loads the schema.
func Open(path string, logger *zap.Logger) (*sql.DB, error) {
	DB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", path, err)
	}
	if err := BootstrapDB(DB, logger); err != nil {
		DB.Close()
		return nil, err
	}
	return DB, nil
}
