package results

// Package results holds the ordered, uniquely keyed collection of converted
// records. It is the single source of truth for what has been found since
// the last clear.
