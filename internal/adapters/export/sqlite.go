package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/PolySpeedRunners/INF8808-Project/internal/domain/model"
)

var schema = []string{
	`CREATE TABLE snapshot_meta (
		run_id   TEXT NOT NULL,
		built_at TEXT NOT NULL,
		min_year INTEGER NOT NULL
	)`,
	`CREATE TABLE country_year_stats (
		year         INTEGER NOT NULL,
		season       TEXT NOT NULL,
		code         TEXT NOT NULL,
		country_name TEXT NOT NULL,
		medal_score  INTEGER NOT NULL,
		total_medals INTEGER NOT NULL,
		total_gold   INTEGER NOT NULL,
		total_silver INTEGER NOT NULL,
		total_bronze INTEGER NOT NULL,
		gdp          REAL,
		population   REAL,
		ath_count    REAL,
		tfr          REAL,
		percentage   REAL,
		PRIMARY KEY (year, season, code)
	)`,
	`CREATE TABLE discipline_stats (
		year       INTEGER NOT NULL,
		season     TEXT NOT NULL,
		code       TEXT NOT NULL,
		discipline TEXT NOT NULL,
		score      INTEGER NOT NULL,
		total      INTEGER NOT NULL,
		gold       INTEGER NOT NULL,
		silver     INTEGER NOT NULL,
		bronze     INTEGER NOT NULL,
		PRIMARY KEY (year, season, code, discipline)
	)`,
	`CREATE INDEX idx_country_year_stats_code ON country_year_stats(code)`,
}

// SQLite writes snap into a fresh database at path, replacing any existing
// file. Missing enrichment values are stored as NULL.
func SQLite(ctx context.Context, snap *model.Snapshot, path string) error {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_meta (run_id, built_at, min_year) VALUES (?, ?, ?)`,
		snap.RunID, snap.BuiltAt.UTC().Format(time.RFC3339), snap.MinYear); err != nil {
		return err
	}

	countries, err := tx.PrepareContext(ctx, `INSERT INTO country_year_stats
		(year, season, code, country_name, medal_score, total_medals, total_gold, total_silver, total_bronze,
		 gdp, population, ath_count, tfr, percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer countries.Close()

	disciplines, err := tx.PrepareContext(ctx, `INSERT INTO discipline_stats
		(year, season, code, discipline, score, total, gold, silver, bronze)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer disciplines.Close()

	for _, key := range snap.Data.Keys() {
		bucket := snap.Data[key]
		for _, code := range bucket.Codes() {
			s := bucket[code]
			if _, err := countries.ExecContext(ctx,
				key.Year, key.Season, code, s.CountryName,
				s.MedalScore, s.TotalMedals, s.TotalGold, s.TotalSilver, s.TotalBronze,
				value(s.GDP), value(s.Population), value(s.AthCount), value(s.TFR), value(s.Percentage),
			); err != nil {
				return fmt.Errorf("insert %s %s: %w", key, code, err)
			}
			for _, name := range sortedDisciplines(s) {
				d := s.Disciplines[name]
				if _, err := disciplines.ExecContext(ctx,
					key.Year, key.Season, code, name, d.Score, d.Total, d.Gold, d.Silver, d.Bronze,
				); err != nil {
					return fmt.Errorf("insert %s %s %s: %w", key, code, name, err)
				}
			}
		}
	}
	return tx.Commit()
}
