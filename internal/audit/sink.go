package audit

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Sink receives audit events.
type Sink interface {
	Record(ctx context.Context, event types.AuditEvent) error
}

// Writer persists audit events. The database stores implement it.
type Writer interface {
	InsertAuditEvent(ctx context.Context, event *types.AuditEvent) error
}

// StoreSink writes events to a Writer.
type StoreSink struct {
	w Writer
}

// NewStoreSink returns a sink backed by w.
func NewStoreSink(w Writer) *StoreSink {
	return &StoreSink{w: w}
}

// Record implements Sink.
func (s *StoreSink) Record(ctx context.Context, event types.AuditEvent) error {
	if err := s.w.InsertAuditEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to store audit event %s: %w", event.EventType, err)
	}
	return nil
}

// LogSink writes one structured log line per event.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a sink logging to logger (a no-op logger when nil).
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Record implements Sink.
func (s *LogSink) Record(_ context.Context, event types.AuditEvent) error {
	s.logger.Info("audit event",
		zap.String("event_type", event.EventType),
		zap.String("entity_type", event.EntityType),
		zap.String("entity_id", event.EntityID.String()),
		zap.String("action", event.Action),
		zap.String("actor", event.Actor),
		zap.Time("timestamp", event.Timestamp),
	)
	return nil
}

// MultiSink fans an event out to every sink, collecting all errors.
type MultiSink []Sink

// Record implements Sink.
func (m MultiSink) Record(ctx context.Context, event types.AuditEvent) error {
	var err error
	for _, s := range m {
		err = multierr.Append(err, s.Record(ctx, event))
	}
	return err
}

// Recorder delivers events without failing the caller: the work an event describes has
// already been committed, so a sink failure is logged and dropped.
type Recorder struct {
	sink   Sink
	logger *zap.Logger
}

// NewRecorder returns a Recorder for sink. A nil sink discards events.
func NewRecorder(sink Sink, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{sink: sink, logger: logger}
}

// Record delivers event, logging any failure.
func (r *Recorder) Record(ctx context.Context, event types.AuditEvent) {
	if r == nil || r.sink == nil {
		return
	}
	if err := r.sink.Record(ctx, event); err != nil {
		r.logger.Warn("failed to record audit event",
			zap.String("event_type", event.EventType),
			zap.String("entity_id", event.EntityID.String()),
			zap.Error(err),
		)
	}
}
