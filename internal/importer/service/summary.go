package service

// Summary holds the per-run import counters.
type Summary struct {
	Upserted     int
	SkippedStock int
	SkippedRow   int
}
