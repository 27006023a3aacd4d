package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/pytidy/pkg/lint"
)

// Runner processes many files with a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// slot carries one file from the parallel prepare stage to the ordered
// commit stage.
type slot struct {
	file   File
	result *lint.PipelineResult
	err    error
	done   chan struct{}
}

// Run discovers files and processes them. Files are read and linted in
// parallel, but written and recorded strictly in discovery order, so the
// result is the same as a sequential run.
//
// Without KeepGoing the first failing file stops the run: files before it
// are committed and returned in the result, later files are neither written
// nor reported, and the error is returned. With KeepGoing failures are
// recorded in the result and processing continues.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	prepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	slots := make([]*slot, len(files))
	for i, f := range files {
		slots[i] = &slot{file: f, done: make(chan struct{})}
	}

	group, groupCtx := errgroup.WithContext(prepCtx)
	group.SetLimit(jobs)

	fed := make(chan struct{})
	go func() {
		defer close(fed)
		for _, s := range slots {
			group.Go(func() error {
				defer close(s.done)
				if err := groupCtx.Err(); err != nil {
					s.err = err
					return nil
				}
				s.result, s.err = r.Pipeline.PrepareAs(groupCtx, s.file.Abs, s.file.Path, opts.Pipeline)
				return nil
			})
		}
	}()

	runErr := r.commitAll(ctx, slots, opts, result)

	cancel()
	<-fed
	_ = group.Wait()

	return result, runErr
}

// commitAll commits prepared files in order.
func (r *Runner) commitAll(ctx context.Context, slots []*slot, opts Options, result *Result) error {
	for _, s := range slots {
		select {
		case <-s.done:
		case <-ctx.Done():
			return fmt.Errorf("run cancelled: %w", ctx.Err())
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled: %w", err)
		}

		outcome := FileOutcome{Path: s.file.Path, Result: s.result, Error: s.err}
		if outcome.Error == nil {
			if err := r.Pipeline.Commit(ctx, s.result, opts.Pipeline); err != nil {
				outcome.Result = nil
				outcome.Error = err
			}
		}

		if outcome.Error != nil && !opts.KeepGoing {
			return outcome.Error
		}
		result.accumulate(outcome)
	}
	return nil
}
