package models

// VisitorCounterKey identifies the single counter row.
const VisitorCounterKey = "visitors"

// VisitorCount is the single-row visitor counter.
type VisitorCount struct {
	Key   string
	Count int64
}
