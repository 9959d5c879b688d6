package market

// CooldownRegistry is the flat list of negotiation cooldowns.
type CooldownRegistry struct {
	entries []NegotiationCooldown
}

func NewCooldownRegistry() *CooldownRegistry {
	return &CooldownRegistry{}
}

// Add inserts a cooldown. An existing entry for the same player, club and
// kind keeps the larger tick count.
func (r *CooldownRegistry) Add(c NegotiationCooldown) {
	if c.TicksRemaining <= 0 {
		return
	}
	for i := range r.entries {
		e := &r.entries[i]
		if e.PlayerID == c.PlayerID && e.ClubID == c.ClubID && e.Kind == c.Kind {
			if c.TicksRemaining > e.TicksRemaining {
				e.TicksRemaining = c.TicksRemaining
			}
			return
		}
	}
	r.entries = append(r.entries, c)
}

// Active matches an entry scoped to the club or a wildcard entry.
// Passing AllClubs only matches wildcard entries.
func (r *CooldownRegistry) Active(playerID, clubID uint, kind CooldownKind) bool {
	for _, e := range r.entries {
		if e.PlayerID != playerID || e.Kind != kind {
			continue
		}
		if e.ClubID == AllClubs || e.ClubID == clubID {
			return true
		}
	}
	return false
}

// Decay ticks every entry once and drops those that reach zero. It returns
// the number of entries removed.
func (r *CooldownRegistry) Decay() int {
	kept := r.entries[:0]
	expired := 0
	for _, e := range r.entries {
		e.TicksRemaining--
		if e.TicksRemaining <= 0 {
			expired++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return expired
}

func (r *CooldownRegistry) Entries() []NegotiationCooldown {
	out := make([]NegotiationCooldown, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *CooldownRegistry) Len() int {
	return len(r.entries)
}
