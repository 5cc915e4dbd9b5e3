package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tracedRow struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100"`
	CreatedAt time.Time
}

func openTracingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func newSpanRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func enabledTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          true,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "sqlite",
		WithoutVariables: true,
	}
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL, "SQL text must stay out of spans unless opted in")
	assert.True(t, cfg.WithoutVariables, "bind variables must be stripped unless opted in")
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestRegisterOtelGorm_Disabled(t *testing.T) {
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	assert.NoError(t, plugin.RegisterOtelGorm(openTracingTestDB(t)))
}

func TestRegisterOtelGorm_Enabled(t *testing.T) {
	plugin := NewDBTracingPlugin(enabledTracingConfig(), zap.NewNop())

	assert.NoError(t, plugin.RegisterOtelGorm(openTracingTestDB(t)))
}

func TestRegisterOtelGorm_FullSQL(t *testing.T) {
	cfg := enabledTracingConfig()
	cfg.LogFullSQL = true
	cfg.WithoutVariables = false
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	assert.NoError(t, plugin.RegisterOtelGorm(openTracingTestDB(t)))
}

func TestRegisterOtelGorm_DoubleRegistrationFails(t *testing.T) {
	db := openTracingTestDB(t)
	plugin := NewDBTracingPlugin(enabledTracingConfig(), zap.NewNop())

	require.NoError(t, plugin.RegisterOtelGorm(db))
	assert.Error(t, plugin.RegisterOtelGorm(db), "callback names collide on the second install")
}

func TestAnnotateSpan_RowsAffected(t *testing.T) {
	db := openTracingTestDB(t)
	tp, recorder := newSpanRecorder(t)
	plugin := NewDBTracingPlugin(enabledTracingConfig(), zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "price-write")
	rows := []tracedRow{{Name: "Small"}, {Name: "Medium"}, {Name: "Large"}}
	result := db.WithContext(ctx).Create(&rows)
	require.NoError(t, result.Error)

	plugin.annotateSpan(result.Statement.DB)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	found := false
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "db.rows_affected" {
			found = true
			assert.Equal(t, int64(3), attr.Value.AsInt64())
		}
	}
	assert.True(t, found, "db.rows_affected attribute should be present")
}

func TestAnnotateSpan_RecordNotFoundIsNotAnError(t *testing.T) {
	db := openTracingTestDB(t)
	tp, recorder := newSpanRecorder(t)
	plugin := NewDBTracingPlugin(enabledTracingConfig(), zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "variant-lookup")
	var row tracedRow
	tx := db.WithContext(ctx).First(&row, 99999)
	require.Error(t, tx.Error)

	plugin.annotateSpan(tx)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestAnnotateSpan_SlowQueryEvent(t *testing.T) {
	db := openTracingTestDB(t)
	tp, recorder := newSpanRecorder(t)

	cfg := enabledTracingConfig()
	cfg.SlowQueryThresh = time.Nanosecond
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "slow-resolution")
	ctx = WithQueryStartTime(ctx)
	time.Sleep(time.Millisecond)

	var row tracedRow
	tx := db.WithContext(ctx).Limit(1).Find(&row)
	require.NoError(t, tx.Error)

	plugin.annotateSpan(tx)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	foundEvent := false
	for _, event := range spans[0].Events() {
		if event.Name == "slow_query_warning" {
			foundEvent = true
		}
	}
	assert.True(t, foundEvent, "slow_query_warning event should be recorded")
}

func TestAnnotateSpan_NoRecordingSpan(t *testing.T) {
	db := openTracingTestDB(t)
	plugin := NewDBTracingPlugin(enabledTracingConfig(), zap.NewNop())

	// No span in context; must not panic
	assert.NotPanics(t, func() {
		plugin.annotateSpan(db.WithContext(context.Background()))
	})
}

func TestWithQueryStartTime(t *testing.T) {
	ctx := WithQueryStartTime(context.Background())

	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), start, time.Second)
}

func TestRegisterOtelGorm_SpansEmittedForQueries(t *testing.T) {
	db := openTracingTestDB(t)
	tp, recorder := newSpanRecorder(t)

	cfg := enabledTracingConfig()
	cfg.LogFullSQL = true
	cfg.WithoutVariables = false
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "round-trip")
	scoped := db.WithContext(ctx)

	require.NoError(t, scoped.Create(&tracedRow{Name: "Family"}).Error)
	var found tracedRow
	require.NoError(t, scoped.First(&found, "name = ?", "Family").Error)
	assert.Equal(t, "Family", found.Name)

	span.End()
	assert.NotEmpty(t, recorder.Ended())
}
