package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	influxdb3 "github.com/InfluxCommunity/influxdb3-go/v2/influxdb3"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
	"edeon_enerji/pkg/logger"
)

const productionMeasurement = "uretim"

// InfluxMirror implements ProductionMirror on InfluxDB v3
type InfluxMirror struct {
	db *config.InfluxDatabase
}

// NewInfluxMirror creates the production mirror
func NewInfluxMirror(db *config.InfluxDatabase) *InfluxMirror {
	return &InfluxMirror{db: db}
}

// Write stores one point per production record.
func (r *InfluxMirror) Write(ctx context.Context, records []domain.Production) error {
	if r.db == nil || r.db.Client == nil {
		return fmt.Errorf("influx client is nil: %w", domain.ErrUnavailable)
	}
	if len(records) == 0 {
		return nil
	}

	points := make([]*influxdb3.Point, 0, len(records))
	for _, record := range records {
		points = append(points, productionPoint(record))
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := r.db.Client.WritePoints(ctx, points); err != nil {
		return fmt.Errorf("WritePoints failed: %w (points: %d, db: %s)", err, len(points), r.db.Database)
	}

	logger.Debug(fmt.Sprintf("✓ Mirrored %d production points", len(points)))
	return nil
}

// productionPoint converts a record to its time-series point
func productionPoint(record domain.Production) *influxdb3.Point {
	tags := map[string]string{
		"santral_id": record.SantralID,
	}
	if record.OlusturanKisi.ID != "" {
		tags["olusturan"] = record.OlusturanKisi.ID
	}

	fields := map[string]interface{}{
		"gunluk_uretim":    record.GunlukUretim,
		"anlik_guc":        record.AnlikGuc,
		"performans_orani": record.PerformansOrani,
		"gelir":            record.Gelir,
		"co2":              record.TasarrufEdilenCO2,
		"kayit_id":         record.ID.Hex(),
	}

	return influxdb3.NewPoint(productionMeasurement, tags, fields, record.Tarih)
}

// DailyTotals reads back the mirrored yields of a plant in [from, to).
func (r *InfluxMirror) DailyTotals(ctx context.Context, santralID string, from, to time.Time) ([]DailyTotal, error) {
	if r.db == nil || r.db.Client == nil {
		return nil, fmt.Errorf("influx client is nil: %w", domain.ErrUnavailable)
	}

	query := dailyTotalsQuery(santralID, from, to)
	iterator, err := r.db.Client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w (query: %s)", err, query)
	}

	var out []DailyTotal
	for iterator.Next() {
		value := iterator.Value()
		total := DailyTotal{Yield: getFloatValue(value, "gunluk_uretim")}
		if ts, ok := value["time"].(time.Time); ok {
			total.Day = ts
		}
		out = append(out, total)
	}
	return out, nil
}

func dailyTotalsQuery(santralID string, from, to time.Time) string {
	return fmt.Sprintf(
		"SELECT time, gunluk_uretim FROM %s WHERE santral_id = '%s' AND time >= '%s' AND time < '%s' ORDER BY time",
		productionMeasurement,
		strings.ReplaceAll(santralID, "'", "''"),
		from.UTC().Format(time.RFC3339),
		to.UTC().Format(time.RFC3339),
	)
}

// Type returns database type
func (r *InfluxMirror) Type() string {
	return "influx"
}

func getFloatValue(data map[string]interface{}, key string) float64 {
	switch val := data[key].(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return 0.0
	}
}
