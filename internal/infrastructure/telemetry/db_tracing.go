package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls the otelgorm integration.
type DBTracingConfig struct {
	Enabled          bool
	LogFullSQL       bool          // include full SQL in spans; leaks data in prod
	SlowQueryThresh  time.Duration // queries above this get a slow-query span event
	DBSystem         string
	WithoutVariables bool // strip bind variables from recorded SQL
}

// DefaultDBTracingConfig returns the secure-by-default setup: tracing off,
// no SQL text, no bind variables.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin wires otelgorm into a gorm.DB and layers slow-query
// detection and error marking on top of the spans otelgorm creates.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// RegisterOtelGorm installs the otelgorm plugin plus the timing callbacks.
// A disabled config makes this a no-op. Registering twice on the same DB
// fails because the callback names collide.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerCallbacks(db, "before", p.markQueryStart, false); err != nil {
		return err
	}
	if err := registerCallbacks(db, "after", p.annotateSpan, true); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

// gormOperations covers every callback processor a statement can run through.
var gormOperations = []string{"create", "query", "update", "delete", "row", "raw"}

// callbackRegistrar matches the registration handle GORM returns from
// Before/After; the concrete type is unexported.
type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

func registerCallbacks(db *gorm.DB, phase string, fn func(*gorm.DB), after bool) error {
	pick := func(op string) callbackRegistrar {
		anchor := "gorm:" + op
		switch op {
		case "create":
			if after {
				return db.Callback().Create().After(anchor)
			}
			return db.Callback().Create().Before(anchor)
		case "query":
			if after {
				return db.Callback().Query().After(anchor)
			}
			return db.Callback().Query().Before(anchor)
		case "update":
			if after {
				return db.Callback().Update().After(anchor)
			}
			return db.Callback().Update().Before(anchor)
		case "delete":
			if after {
				return db.Callback().Delete().After(anchor)
			}
			return db.Callback().Delete().Before(anchor)
		case "row":
			if after {
				return db.Callback().Row().After(anchor)
			}
			return db.Callback().Row().Before(anchor)
		default:
			if after {
				return db.Callback().Raw().After(anchor)
			}
			return db.Callback().Raw().Before(anchor)
		}
	}

	for _, op := range gormOperations {
		name := "otel_timing:" + phase + "_" + op
		if err := pick(op).Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBTracingPlugin) markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// annotateSpan runs after each statement: adds row counts and table names to
// the active span, records real errors, and flags slow queries.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// Not-found is an expected outcome for lookups, not a span error.
	if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if startTime, ok := ctx.Value(queryStartTimeKey).(time.Time); ok {
		elapsed := time.Since(startTime)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			span.AddEvent("slow_query_warning", trace.WithAttributes(
				attribute.Int64("duration_ms", elapsed.Milliseconds()),
				attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
			))
		}
	}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// WithQueryStartTime stamps the context with the current time so the after
// callback can compute elapsed query time.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}
