package repository

import "context"

type LikeRepository interface {
	// InsertIfAbsent records the edge (from,to) and reports whether this
	// call created it. A duplicate insert is not an error.
	InsertIfAbsent(ctx context.Context, fromID, toID int64) (inserted bool, err error)
	Has(ctx context.Context, fromID, toID int64) (bool, error)
}
