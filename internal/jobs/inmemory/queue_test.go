package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yudhistira-dev/orgintel/internal/jobs"
)

// waitForStatus polls the store until the job reaches the wanted status.
func waitForStatus(t *testing.T, store *Store, jobID string, want jobs.JobStatus) *jobs.ExtractReceiptJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.GetJob(context.Background(), jobID)
		if err == nil && job.Status == want {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s never reached status %s", jobID, want)
	return nil
}

func TestQueue_ProcessesJob(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 2, store)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	processed := make(chan string, 1)
	handler := func(ctx context.Context, job jobs.Job) error {
		processed <- job.GetID()
		return nil
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	job := &jobs.ExtractReceiptJob{ImageRef: "data:image/png;base64,AAAA"}
	if err := queue.PublishExtractReceipt(ctx, job); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if job.JobID == "" {
		t.Fatal("publish must assign a job ID")
	}

	select {
	case id := <-processed:
		if id != job.JobID {
			t.Errorf("processed %q, want %q", id, job.JobID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("job was never handled")
	}

	final := waitForStatus(t, store, job.JobID, jobs.JobStatusCompleted)
	if final.StartedAt == nil || final.CompletedAt == nil {
		t.Error("completed job must carry both timestamps")
	}
}

func TestQueue_FailedJobExhaustsRetries(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 1, store)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(ctx context.Context, job jobs.Job) error {
		return errors.New("extraction failed")
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatal(err)
	}

	// Retry budget already spent: one more failure finalizes the job.
	job := &jobs.ExtractReceiptJob{ImageRef: "x", RetryCount: 3, MaxRetries: 3}
	if err := queue.PublishExtractReceipt(ctx, job); err != nil {
		t.Fatal(err)
	}

	final := waitForStatus(t, store, job.JobID, jobs.JobStatusFailed)
	if final.Error == "" {
		t.Error("failed job must record the error")
	}
}

func TestQueue_PublishAfterClose(t *testing.T) {
	queue := NewQueue(1, 1, NewStore())
	if err := queue.Close(); err != nil {
		t.Fatal(err)
	}
	err := queue.PublishExtractReceipt(context.Background(), &jobs.ExtractReceiptJob{ImageRef: "x"})
	if err == nil {
		t.Error("expected error publishing to a closed queue")
	}
}

func TestQueue_StopWaitsForWorkers(t *testing.T) {
	store := NewStore()
	queue := NewQueue(10, 1, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	handler := func(ctx context.Context, job jobs.Job) error {
		close(started)
		time.Sleep(100 * time.Millisecond)
		return nil
	}
	if err := queue.Start(ctx, handler); err != nil {
		t.Fatal(err)
	}

	job := &jobs.ExtractReceiptJob{ImageRef: "x"}
	if err := queue.PublishExtractReceipt(ctx, job); err != nil {
		t.Fatal(err)
	}
	<-started

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := queue.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	final, err := store.GetJob(context.Background(), job.JobID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != jobs.JobStatusCompleted {
		t.Errorf("status after stop = %s, want completed", final.Status)
	}
}
