package sqlite

import (
	"slices"
	"strings"
)

// idBatchSize keeps every IN (...) list well below sqlite's bound-variable limit.
const idBatchSize = 500

// forEachIDBatch calls fn with a placeholder list and matching args for each
// batch of distinct ids.
func forEachIDBatch(ids []int64, fn func(placeholders string, args []any) error) error {
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	for start := 0; start < len(unique); start += idBatchSize {
		batch := unique[start:min(start+idBatchSize, len(unique))]
		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(batch)), ",")
		if err := fn(placeholders, args); err != nil {
			return err
		}
	}
	return nil
}
