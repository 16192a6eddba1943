package domain

import "time"

// LikeEdge records that From liked To. At most one edge exists per ordered
// pair; a mutual match is the presence of both (a,b) and (b,a).
type LikeEdge struct {
	FromID    int64     `json:"from_id" db:"from_id"`
	ToID      int64     `json:"to_id" db:"to_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Decision string

const (
	DecisionLike    Decision = "like"
	DecisionDislike Decision = "dislike"
)

func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionDislike
}
