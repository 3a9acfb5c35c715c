package jobs

import (
	"context"

	"github.com/forgo/gradproj/internal/service"
)

// Transcripts wraps the transcript service as a job
func Transcripts(svc *service.TranscriptService) Job {
	return Func{JobName: "transcripts", Fn: func(ctx context.Context) error {
		_, err := svc.Run(ctx)
		return err
	}}
}

// Allocate wraps the allocation service as a job
func Allocate(svc *service.AllocationService) Job {
	return Func{JobName: "allocate", Fn: func(ctx context.Context) error {
		_, err := svc.Run(ctx)
		return err
	}}
}

// Split wraps the split service as a job
func Split(svc *service.SplitService) Job {
	return Func{JobName: "split", Fn: func(ctx context.Context) error {
		_, err := svc.Run(ctx)
		return err
	}}
}
