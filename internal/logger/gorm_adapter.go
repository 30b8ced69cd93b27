package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowQueryThreshold is used when a GormAdapter is built with a zero threshold.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// GormAdapter routes GORM log output through a module Logger.
//
// Statements go out at TRACE, so the datastore module must be set to "trace"
// to see SQL. Statements slower than the threshold and failed statements are
// reported at WARN. gorm.ErrRecordNotFound is not a failure here: lookups
// that find nothing are a normal outcome for the repositories.
type GormAdapter struct {
	log           Logger
	slowThreshold time.Duration
	silent        bool
}

// NewGormAdapter returns an adapter for log. A nil log writes to stdout at
// info level.
func NewGormAdapter(log Logger, slowThreshold time.Duration) *GormAdapter {
	if log == nil {
		log = NewSlogLogger(nil, LogLevelInfo, nil)
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowQueryThreshold
	}
	return &GormAdapter{log: log, slowThreshold: slowThreshold}
}

// LogMode only honours gormlogger.Silent; other levels are governed by the
// module level of the wrapped Logger.
func (a *GormAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *a
	clone.silent = level == gormlogger.Silent
	return &clone
}

func (a *GormAdapter) Info(ctx context.Context, msg string, data ...any) {
	if a.silent {
		return
	}
	a.log.WithContext(ctx).Debug(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if a.silent {
		return
	}
	a.log.WithContext(ctx).Warn(fmt.Sprintf(msg, data...))
}

func (a *GormAdapter) Error(ctx context.Context, msg string, data ...any) {
	if a.silent {
		return
	}
	a.log.WithContext(ctx).Error(fmt.Sprintf(msg, data...))
}

// Trace reports one executed statement.
func (a *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if a.silent {
		return
	}

	elapsed := time.Since(begin)
	stmt, rows := fc()
	log := a.log.WithContext(ctx).With(
		String("sql", stmt),
		Int64("rows", rows),
		Duration("elapsed", elapsed),
	)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("statement failed", Error(err))
	case elapsed > a.slowThreshold:
		log.Warn("slow statement", Duration("threshold", a.slowThreshold))
	default:
		log.Trace("statement")
	}
}
