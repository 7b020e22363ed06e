package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/srgjo27/gercamp/internal/core/ports"
)

type options struct {
	cache   ports.ScheduleCache
	auditor *Auditor
	logger  *zap.Logger
	limits  PageLimits
	now     func() time.Time
}

type Option func(*options)

type PageLimits struct {
	Default int
	Max     int
}

func WithScheduleCache(cache ports.ScheduleCache) Option {
	return func(o *options) { o.cache = cache }
}

func WithAuditor(a *Auditor) Option {
	return func(o *options) { o.auditor = a }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithPageLimits(l PageLimits) Option {
	return func(o *options) { o.limits = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{
		logger: zap.NewNop(),
		limits: PageLimits{Default: domain.DefaultPageSize, Max: domain.MaxPageSize},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.auditor == nil {
		o.auditor = NewAuditor(nil, o.logger)
	}
	o.auditor = o.auditor.withClock(o.now)
	return o
}
