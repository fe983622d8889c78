package runrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.RunRecorder {
	return noopRecorder{}
}

func (noopRecorder) RecordRun(_ context.Context, _ domain.RunRecord) error {
	return nil
}

func (noopRecorder) Close() error {
	return nil
}
