package batch

import (
	"finize/txextract/internal/logging"
	"finize/txextract/internal/models"
)

// Stats tracks the outcome of a batch.
type Stats struct {
	Total       int // Messages in the batch
	Extracted   int // Records produced
	Skipped     int // Blank messages
	Failed      int // Messages not processed, e.g. after cancellation
	Categorized int // Records with a category other than General
	NoAmount    int // Records without a detected amount
}

// Record adds one result to the statistics.
func (s *Stats) Record(r Result) {
	s.Total++
	switch {
	case r.Err != nil:
		s.Failed++
	case r.Skipped || r.Transaction == nil:
		s.Skipped++
	default:
		s.Extracted++
		if r.Transaction.Category != models.CategoryGeneral {
			s.Categorized++
		}
		if !r.Transaction.AmountDetected {
			s.NoAmount++
		}
	}
}

// CategorizedRate returns the share of extracted records with a specific
// category, as a percentage.
func (s Stats) CategorizedRate() float64 {
	if s.Extracted == 0 {
		return 0.0
	}
	return float64(s.Categorized) / float64(s.Extracted) * 100.0
}

// LogSummary logs the statistics at info level.
func (s Stats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}
	logger.Info("Batch summary",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: s.Total},
		logging.Field{Key: "extracted", Value: s.Extracted},
		logging.Field{Key: "skipped", Value: s.Skipped},
		logging.Field{Key: "failed", Value: s.Failed},
		logging.Field{Key: "no_amount", Value: s.NoAmount},
		logging.Field{Key: "categorized_rate", Value: s.CategorizedRate()},
	)
}

// Summarize computes the statistics of results.
func Summarize(results []Result) Stats {
	var s Stats
	for _, r := range results {
		s.Record(r)
	}
	return s
}
