package tracing

import (
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"

	"innovation-hub/config"
)

const (
	gormSpanKey    = "sentry:span"
	gormStartKey   = "sentry:start"
	callbackPrefix = "sentry_tracing"
)

// GormPlugin 为每条 SQL 创建 span，描述只包含表名
type GormPlugin struct {
	slow time.Duration
}

func NewGormPlugin() *GormPlugin {
	return &GormPlugin{slow: threshold(config.Get().Sentry.Tracing.DBSlowThresholdMs)}
}

func (p *GormPlugin) Name() string {
	return "SentryTracingPlugin"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register(callbackPrefix+":before_create", p.before("db.sql.create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register(callbackPrefix+":before_query", p.before("db.sql.query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register(callbackPrefix+":before_update", p.before("db.sql.update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register(callbackPrefix+":before_delete", p.before("db.sql.delete")); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register(callbackPrefix+":after_create", p.after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register(callbackPrefix+":after_query", p.after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register(callbackPrefix+":after_update", p.after); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register(callbackPrefix+":after_delete", p.after)
}

func (p *GormPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil || db.Statement.Context == nil {
			return
		}
		db.InstanceSet(gormStartKey, time.Now())

		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		span := StartSpan(db.Statement.Context, operation, table)
		if span == nil {
			return
		}
		span.SetData("db.system", "mysql")
		db.InstanceSet(gormSpanKey, span)
		db.Statement.Context = span.Context()
	}
}

func (p *GormPlugin) after(db *gorm.DB) {
	v, ok := db.InstanceGet(gormSpanKey)
	if !ok {
		return
	}
	span, _ := v.(*sentry.Span)
	start := time.Now()
	if sv, ok := db.InstanceGet(gormStartKey); ok {
		start, _ = sv.(time.Time)
	}
	if span != nil {
		span.SetData("db.rows_affected", db.RowsAffected)
	}
	Finish(span, start, p.slow, db.Error)
}
