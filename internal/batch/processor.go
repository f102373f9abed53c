// Package batch extracts many messages at once while keeping input order.
package batch

import (
	"context"
	"runtime"
	"strings"
	"sync"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
)

// DefaultSequentialThreshold is the batch size below which messages are
// processed on the calling goroutine.
const DefaultSequentialThreshold = 100

// Extractor is the single-message extraction the processor fans out.
type Extractor interface {
	Extract(text string) *models.ExtractedTransaction
}

// Result is the outcome for one input message.
type Result struct {
	Index       int
	Message     string
	Transaction *models.ExtractedTransaction
	Skipped     bool
	Err         error
}

// Options configures a Processor.
type Options struct {
	Workers             int
	SequentialThreshold int
}

// Processor runs an Extractor over message batches.
type Processor struct {
	extractor   Extractor
	workerCount int
	threshold   int
	logger      logging.Logger
}

// NewProcessor creates a Processor. Zero options select runtime.NumCPU()
// workers and DefaultSequentialThreshold.
func NewProcessor(extractor Extractor, opts Options, logger logging.Logger) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.SequentialThreshold <= 0 {
		opts.SequentialThreshold = DefaultSequentialThreshold
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Processor{
		extractor:   extractor,
		workerCount: opts.Workers,
		threshold:   opts.SequentialThreshold,
		logger:      logger,
	}
}

// Process extracts every message and returns one Result per message, in
// input order. Blank messages are marked Skipped. Once ctx is done the
// remaining messages carry ctx.Err().
func (p *Processor) Process(ctx context.Context, messages []string) []Result {
	var results []Result
	if len(messages) < p.threshold || p.workerCount == 1 {
		results = p.processSequential(ctx, messages)
	} else {
		results = p.processConcurrent(ctx, messages)
	}

	p.logger.Debug("Batch processing completed",
		logging.Field{Key: logging.FieldCount, Value: len(messages)},
		logging.Field{Key: logging.FieldWorkers, Value: p.workerCount})
	return results
}

func (p *Processor) processSequential(ctx context.Context, messages []string) []Result {
	results := make([]Result, len(messages))
	for i, msg := range messages {
		results[i] = p.processOne(ctx, i, msg)
	}
	return results
}

func (p *Processor) processConcurrent(ctx context.Context, messages []string) []Result {
	results := make([]Result, len(messages))
	indexes := make(chan int, p.workerCount)

	var wg sync.WaitGroup
	for w := 0; w < p.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				// Each worker writes only its own slots.
				results[i] = p.processOne(ctx, i, messages[i])
			}
		}()
	}

	for i := range messages {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

func (p *Processor) processOne(ctx context.Context, i int, msg string) Result {
	res := Result{Index: i, Message: msg}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	if strings.TrimSpace(msg) == "" {
		res.Skipped = true
		return res
	}
	res.Transaction = p.extractor.Extract(msg)
	return res
}

// Transactions returns the extracted records of results, in order,
// leaving out skipped and failed messages.
func Transactions(results []Result) []models.ExtractedTransaction {
	out := make([]models.ExtractedTransaction, 0, len(results))
	for _, r := range results {
		if r.Transaction != nil && r.Err == nil {
			out = append(out, *r.Transaction)
		}
	}
	return out
}
