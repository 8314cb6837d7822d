package ledger

import (
	"github.com/google/uuid"

	"grana/internal/core"
)

// cardLedger owns the card records. It is not safe for concurrent use on
// its own; the Book serializes access.
type cardLedger struct {
	cards []core.Card
}

// CardPatch is a partial card update. Nil fields are left untouched.
// CurrentBill is deliberately absent: the bill only moves through
// applyBill, never through an edit.
type CardPatch struct {
	Name       *string
	LastDigits *string
	Color      *string
	Limit      *core.Money
	DueDay     *int
}

func (l *cardLedger) add(c core.Card) core.Card {
	c.ID = uuid.NewString()
	c.CurrentBill = core.Money{}
	l.cards = append(l.cards, c)
	return c
}

func (l *cardLedger) remove(id string) (core.Card, bool) {
	for i, c := range l.cards {
		if c.ID == id {
			l.cards = append(l.cards[:i], l.cards[i+1:]...)
			return c, true
		}
	}
	return core.Card{}, false
}

func (l *cardLedger) update(id string, p CardPatch) (core.Card, bool) {
	for i := range l.cards {
		if l.cards[i].ID != id {
			continue
		}
		c := &l.cards[i]
		if p.Name != nil {
			c.Name = *p.Name
		}
		if p.LastDigits != nil {
			c.LastDigits = *p.LastDigits
		}
		if p.Color != nil {
			c.Color = *p.Color
		}
		if p.Limit != nil {
			c.Limit = *p.Limit
		}
		if p.DueDay != nil {
			c.DueDay = *p.DueDay
		}
		return *c, true
	}
	return core.Card{}, false
}

// applyBill moves the running bill by delta cents. This is the only
// sanctioned bill mutation; negative deltas reverse earlier charges.
func (l *cardLedger) applyBill(id string, delta int64) bool {
	for i := range l.cards {
		if l.cards[i].ID == id {
			l.cards[i].CurrentBill.Cents += delta
			return true
		}
	}
	return false
}

func (l *cardLedger) get(id string) (core.Card, bool) {
	for _, c := range l.cards {
		if c.ID == id {
			return c, true
		}
	}
	return core.Card{}, false
}

func (l *cardLedger) list() []core.Card {
	return append([]core.Card(nil), l.cards...)
}
