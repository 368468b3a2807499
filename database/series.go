package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/angas/gridhost-go/types"
)

// ReplaceNetLoad swaps the stored net load series for the given points,
// all in one transaction so readers never see a half-written series.
func (d *Database) ReplaceNetLoad(ctx context.Context, points []types.SeriesPoint) error {
	return d.replaceSeries(ctx, "net_load", "net_load_mw", points)
}

// ReplaceSolarProfile swaps the stored solar per-unit series.
func (d *Database) ReplaceSolarProfile(ctx context.Context, points []types.SeriesPoint) error {
	return d.replaceSeries(ctx, "solar_profile", "per_unit_ac", points)
}

func (d *Database) replaceSeries(ctx context.Context, table, valueColumn string, points []types.SeriesPoint) error {
	d.logger.Debug("replacing series", "table", table, "points", len(points))

	tx, err := d.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting %s transaction: %w", table, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (date, hour, %s) VALUES (?, ?, ?)", table, valueColumn))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Hour.Date, p.Hour.Hour, p.Value); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting into %s at %s: %w", table, p.Hour, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}

	return nil
}

// GetNetLoad returns the full stored net load series in ascending order.
func (d *Database) GetNetLoad(ctx context.Context) ([]types.SeriesPoint, error) {
	return d.getSeries(ctx, "net_load", "net_load_mw")
}

// GetSolarProfile returns the full stored solar series in ascending order.
func (d *Database) GetSolarProfile(ctx context.Context) ([]types.SeriesPoint, error) {
	return d.getSeries(ctx, "solar_profile", "per_unit_ac")
}

func (d *Database) getSeries(ctx context.Context, table, valueColumn string) ([]types.SeriesPoint, error) {
	rows, err := d.read.QueryContext(ctx, fmt.Sprintf(`
		SELECT date, hour, %s
		FROM %s
		ORDER BY date, hour ASC`, valueColumn, table))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", table, err)
	}
	defer rows.Close()

	points, err := scanSeriesPoints(rows)
	if err != nil {
		return points, fmt.Errorf("scanning %s row: %w", table, err)
	}

	return points, nil
}

func scanSeriesPoints(rows *sql.Rows) ([]types.SeriesPoint, error) {
	var points []types.SeriesPoint
	for rows.Next() {
		var p types.SeriesPoint
		if err := rows.Scan(&p.Hour.Date, &p.Hour.Hour, &p.Value); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}
