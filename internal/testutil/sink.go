package testutil

import "github.com/alexanderramin/mintabi/internal/domain"

// Push is one {cards, days} pair received by a RecordingSink.
type Push struct {
	Cards []domain.Card
	Days  []domain.Column
}

// RecordingSink counts and keeps every board push.
type RecordingSink struct {
	Pushes []Push
}

func (r *RecordingSink) PushBoard(cards []domain.Card, days []domain.Column) {
	r.Pushes = append(r.Pushes, Push{Cards: cards, Days: days})
}

// Count returns the number of pushes received.
func (r *RecordingSink) Count() int { return len(r.Pushes) }

// Last returns the most recent push. It panics when nothing was pushed.
func (r *RecordingSink) Last() Push { return r.Pushes[len(r.Pushes)-1] }
