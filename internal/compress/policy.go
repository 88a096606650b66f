package compress

import "github.com/imgworks/shrinker/internal/catalog"

// ShouldCompress reports whether a record is selected for compression: true
// iff its exact byte count exceeds the budget. The comparison is strictly
// numeric; the formatted display size carries no authority here.
func ShouldCompress(rec catalog.ImageRecord, budgetBytes uint64) bool {
	return rec.SizeBytes > budgetBytes
}
