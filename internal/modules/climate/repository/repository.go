package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"climate-server/internal/modules/climate/types"
	"climate-server/internal/schema"
)

//go:embed sql/get-precipitation.sql
var getPrecipitationSQL string

//go:embed sql/get-station-ids.sql
var getStationIDsSQL string

type ClimateRepository interface {
	GetPrecipitation(ctx context.Context) ([]types.Precipitation, error)
	GetStationIDs(ctx context.Context) ([]string, error)
	GetObservations(ctx context.Context, r types.DateRange) ([]types.Observation, error)
	GetTemperatureSummary(ctx context.Context, r types.DateRange) (types.TemperatureSummary, error)
}

type repositoryImpl struct {
	db          *sql.DB
	placeholder squirrel.PlaceholderFormat
}

// NewRepository returns a read-only repository over db. placeholder must match
// the driver behind db (squirrel.Question for SQLite, squirrel.Dollar for Postgres).
func NewRepository(db *sql.DB, placeholder squirrel.PlaceholderFormat) ClimateRepository {
	if placeholder == nil {
		placeholder = squirrel.Question
	}
	return &repositoryImpl{db: db, placeholder: placeholder}
}

func (r *repositoryImpl) GetPrecipitation(ctx context.Context) ([]types.Precipitation, error) {
	rows, err := r.db.QueryContext(ctx, getPrecipitationSQL)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "precipitation")

	out := []types.Precipitation{}
	for rows.Next() {
		var prcp sql.NullFloat64
		if err := rows.Scan(&prcp); err != nil {
			return nil, err
		}
		out = append(out, types.Precipitation{Prcp: nullableFloat(prcp)})
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetStationIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, getStationIDsSQL)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "station ids")

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetObservations(ctx context.Context, dr types.DateRange) ([]types.Observation, error) {
	query, args, err := squirrel.
		Select("date", "tobs").
		From(schema.Measurement.Name).
		Where(dateFilter(dr)).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, "observations")

	out := []types.Observation{}
	for rows.Next() {
		var (
			o    types.Observation
			tobs sql.NullFloat64
		)
		if err := rows.Scan(&o.Date, &tobs); err != nil {
			return nil, err
		}
		o.Tobs = nullableFloat(tobs)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) GetTemperatureSummary(ctx context.Context, dr types.DateRange) (types.TemperatureSummary, error) {
	query, args, err := squirrel.
		Select("MIN(tobs)", "AVG(tobs)", "MAX(tobs)").
		From(schema.Measurement.Name).
		Where(dateFilter(dr)).
		PlaceholderFormat(r.placeholder).
		ToSql()
	if err != nil {
		return types.TemperatureSummary{}, err
	}

	// An aggregate without GROUP BY always yields exactly one row, all NULL
	// when nothing matched.
	var lo, avg, hi sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&lo, &avg, &hi); err != nil {
		return types.TemperatureSummary{}, err
	}
	return types.TemperatureSummary{
		Min: nullableFloat(lo),
		Avg: nullableFloat(avg),
		Max: nullableFloat(hi),
	}, nil
}

func dateFilter(dr types.DateRange) squirrel.Sqlizer {
	filter := squirrel.And{squirrel.GtOrEq{"date": dr.Start}}
	if dr.End != "" {
		filter = append(filter, squirrel.LtOrEq{"date": dr.End})
	}
	return filter
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func closeRows(rows *sql.Rows, what string) {
	if err := rows.Close(); err != nil {
		slog.Error("close rows", "query", what, "error", err)
	}
}
