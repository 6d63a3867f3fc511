package appcontext

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextId int

const (
	runIdKeyId contextId = iota
	volumeKeyId
	sourceKeyId
)

func WithRunId(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, runIdKeyId, id)
}

func WithVolume(ctx context.Context, volume string) context.Context {
	return context.WithValue(ctx, volumeKeyId, volume)
}

func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKeyId, source)
}

func LoggerFromContext(logger logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if ctx == nil {
		return logger
	}

	result := logger

	if ctxRunId, ok := ctx.Value(runIdKeyId).(int64); ok && ctxRunId != 0 {
		result = result.WithField("run_id", ctxRunId)
	}

	if ctxVolume, ok := ctx.Value(volumeKeyId).(string); ok && ctxVolume != "" {
		result = result.WithField("volume", ctxVolume)
	}

	if ctxSource, ok := ctx.Value(sourceKeyId).(string); ok && ctxSource != "" {
		result = result.WithField("source", ctxSource)
	}

	return result
}
