package index

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/daehokim/noteindex/models"
)

// Job is one manifest entry for a worker to assemble. Seq preserves the
// entry's manifest position so output order is stable regardless of
// worker scheduling.
type Job struct {
	Seq   int
	Entry models.ManifestEntry
}

// Result holds the three assembled variants, or the per-record error
// that made the record get skipped.
type Result struct {
	Seq    int
	ID     string
	Name   models.NameRecord
	HTML   models.HTMLRecord
	Attach models.AttachRecord
	Err    error
}

// worker drains jobs, assembling each note independently. Notes share
// no state besides the cache store, which serializes per-key writes
// itself.
func worker(ctx context.Context, id int, logger *slog.Logger, asm *Assembler, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Debug("worker processing record", "worker_id", id, "record", job.Entry.HTMLFile)
		name, html, attach, err := asm.Process(ctx, job.Entry)
		results <- Result{
			Seq:    job.Seq,
			ID:     job.Entry.HTMLFile,
			Name:   name,
			HTML:   html,
			Attach: attach,
			Err:    err,
		}
	}
}

// runPool processes all manifest entries on workerCount workers and
// returns results restored to manifest order.
func runPool(ctx context.Context, logger *slog.Logger, asm *Assembler, entries []models.ManifestEntry, workerCount int) []Result {
	if workerCount < 1 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan Job, len(entries))
	results := make(chan Result, len(entries))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, asm, &wg, jobs, results)
	}

	for i, entry := range entries {
		jobs <- Job{Seq: i, Entry: entry}
	}
	close(jobs)

	wg.Wait()
	close(results)

	collected := make([]Result, 0, len(entries))
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].Seq < collected[j].Seq })
	return collected
}
