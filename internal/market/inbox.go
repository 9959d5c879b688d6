package market

import (
	"fmt"

	"github.com/google/uuid"
)

func newTransfer(buyerID, sellerID, playerID uint, fee int64, ticks int) *Transfer {
	return &Transfer{
		ID:              uuid.NewString(),
		BiddingClubID:   buyerID,
		SellingClubID:   sellerID,
		PlayerID:        playerID,
		Fee:             fee,
		ExpirationTicks: ticks,
	}
}

// Enqueue appends a message in arrival order.
func (c *Club) Enqueue(t *Transfer) {
	c.Inbox = append(c.Inbox, t)
}

func (c *Club) FindTransfer(id string) *Transfer {
	for _, t := range c.Inbox {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (c *Club) RemoveTransfer(id string) bool {
	for i, t := range c.Inbox {
		if t.ID == id {
			c.Inbox = append(c.Inbox[:i], c.Inbox[i+1:]...)
			return true
		}
	}
	return false
}

// DecayInboxes ticks every message once. Messages reaching zero are dropped
// without notifying either party. It returns the number dropped.
func (w *World) DecayInboxes() int {
	expired := 0
	for _, club := range w.Clubs() {
		kept := club.Inbox[:0]
		for _, t := range club.Inbox {
			t.ExpirationTicks--
			if t.ExpirationTicks <= 0 {
				expired++
				continue
			}
			kept = append(kept, t)
		}
		for i := len(kept); i < len(club.Inbox); i++ {
			club.Inbox[i] = nil
		}
		club.Inbox = kept
	}
	return expired
}

// Negotiating reports whether an active message for the player with the
// club as bidder sits in any inbox.
func (w *World) Negotiating(playerID, clubID uint) bool {
	for _, club := range w.clubs {
		for _, t := range club.Inbox {
			if t.PlayerID == playerID && t.BiddingClubID == clubID && t.Active() {
				return true
			}
		}
	}
	return false
}

// FindTransfer locates a message by id across every inbox and returns the
// club holding it.
func (w *World) FindTransfer(id string) (*Club, *Transfer, error) {
	for _, club := range w.Clubs() {
		if t := club.FindTransfer(id); t != nil {
			return club, t, nil
		}
	}
	return nil, nil, fmt.Errorf("%w %s", ErrUnknownTransfer, id)
}

// PurgePlayerTransfers removes every message about the player from every
// inbox and returns the number removed.
func (w *World) PurgePlayerTransfers(playerID uint) int {
	return w.purge(func(t *Transfer) bool { return t.PlayerID == playerID })
}

// PurgeReleaseClauseActivations removes pending release clause messages for
// the player. A renewed contract invalidates them.
func (w *World) PurgeReleaseClauseActivations(playerID uint) int {
	return w.purge(func(t *Transfer) bool {
		return t.PlayerID == playerID && t.ActivatedReleaseClause
	})
}

// PurgeAllTransfers empties every inbox.
func (w *World) PurgeAllTransfers() int {
	return w.purge(func(*Transfer) bool { return true })
}

func (w *World) purge(match func(*Transfer) bool) int {
	removed := 0
	for _, club := range w.clubs {
		kept := make([]*Transfer, 0, len(club.Inbox))
		for _, t := range club.Inbox {
			if match(t) {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		club.Inbox = kept
	}
	return removed
}

// Notify leaves an informational message for a human-controlled club. AI
// clubs have nobody to read it.
func (w *World) Notify(clubID uint, format string, args ...any) {
	club, ok := w.clubs[clubID]
	if !ok || !club.HumanControlled {
		return
	}
	club.Messages = append(club.Messages, fmt.Sprintf(format, args...))
}

func (w *World) clubName(id uint) string {
	if c, ok := w.clubs[id]; ok {
		return c.Name
	}
	return fmt.Sprintf("club %d", id)
}
