// Copyright 2025 The DBQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dqgcore

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// TaskPool runs grading tasks with bounded concurrency. Compiled rule
// sets are read-only, so tasks need no coordination beyond the pool
// itself.
type TaskPool struct {
	semaphore chan struct{}
	logger    *slog.Logger
	wg        sync.WaitGroup
	mu        sync.Mutex
	errors    []error
}

func NewTaskPool(poolSize int, logger *slog.Logger) *TaskPool {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &TaskPool{
		semaphore: make(chan struct{}, poolSize),
		logger:    logger,
	}
}

// Enqueue schedules a task. The task is skipped, with its error
// recorded, if ctx is cancelled before a pool slot frees up.
func (tp *TaskPool) Enqueue(ctx context.Context, id string, task func(ctx context.Context) error) {
	tp.wg.Add(1)
	go func() {
		defer tp.wg.Done()

		select {
		case tp.semaphore <- struct{}{}:
		case <-ctx.Done():
			tp.recordError(ctx.Err())
			return
		}
		defer func() { <-tp.semaphore }()

		tp.logger.Debug("executing grading task", "task_id", id)
		exeStartTime := time.Now()
		if err := task(ctx); err != nil {
			tp.logger.Error("grading task failed", "task_id", id, "error", err.Error())
			tp.recordError(err)
		}
		elapsed := time.Since(exeStartTime).Milliseconds()
		tp.logger.Debug("completed grading task", "task_id", id, "elapsed_ms", elapsed)
	}()
}

func (tp *TaskPool) Join() {
	tp.wg.Wait()
}

func (tp *TaskPool) Errors() []error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	errsCopy := make([]error, len(tp.errors))
	copy(errsCopy, tp.errors)
	return errsCopy
}

func (tp *TaskPool) recordError(err error) {
	tp.mu.Lock()
	tp.errors = append(tp.errors, err)
	tp.mu.Unlock()
}
