package market

import (
	"fmt"
	"sort"
)

// World is the id-keyed arena the engine works on. It replaces any shared
// global state: every evaluator receives it explicitly.
type World struct {
	CurrentYear int
	Cycle       int
	Cooldowns   *CooldownRegistry
	History     []TransferHistoryRecord

	leagues map[uint]*League
	clubs   map[uint]*Club
	players map[uint]*Player
}

func NewWorld(currentYear int) *World {
	return &World{
		CurrentYear: currentYear,
		Cooldowns:   NewCooldownRegistry(),
		leagues:     make(map[uint]*League),
		clubs:       make(map[uint]*Club),
		players:     make(map[uint]*Player),
	}
}

func (w *World) AddLeague(l *League) {
	w.leagues[l.ID] = l
}

// AddClub registers a club. A club in an unregistered league is accepted
// when LeagueID is zero.
func (w *World) AddClub(c *Club) error {
	if c.LeagueID != 0 {
		if _, ok := w.leagues[c.LeagueID]; !ok {
			return fmt.Errorf("club %d: %w %d", c.ID, ErrUnknownLeague, c.LeagueID)
		}
	}
	w.clubs[c.ID] = c
	return nil
}

// AddPlayer registers a player and appends it to its club's roster.
func (w *World) AddPlayer(p *Player) error {
	club, ok := w.clubs[p.ClubID]
	if !ok {
		return fmt.Errorf("player %d: %w %d", p.ID, ErrUnknownClub, p.ClubID)
	}
	w.players[p.ID] = p
	club.roster = append(club.roster, p.ID)
	return nil
}

func (w *World) League(id uint) (*League, error) {
	l, ok := w.leagues[id]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownLeague, id)
	}
	return l, nil
}

func (w *World) Club(id uint) (*Club, error) {
	c, ok := w.clubs[id]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownClub, id)
	}
	return c, nil
}

func (w *World) Player(id uint) (*Player, error) {
	p, ok := w.players[id]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownPlayer, id)
	}
	return p, nil
}

// Leagues, Clubs and Players return the arena in ascending id order.
func (w *World) Leagues() []*League {
	out := make([]*League, 0, len(w.leagues))
	for _, l := range w.leagues {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) Clubs() []*Club {
	out := make([]*Club, 0, len(w.clubs))
	for _, c := range w.clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (w *World) Players() []*Player {
	out := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Roster returns the club's players in ascending id order. The slice is a
// snapshot and stays valid while players move.
func (w *World) Roster(clubID uint) ([]*Player, error) {
	club, err := w.Club(clubID)
	if err != nil {
		return nil, err
	}
	out := make([]*Player, 0, len(club.roster))
	for _, id := range club.roster {
		if p, ok := w.players[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MovePlayer changes ownership in one step: roster removal, roster
// insertion and the player's club id.
func (w *World) MovePlayer(playerID, toClubID uint) error {
	p, err := w.Player(playerID)
	if err != nil {
		return err
	}
	to, err := w.Club(toClubID)
	if err != nil {
		return err
	}
	if from, ok := w.clubs[p.ClubID]; ok {
		for i, id := range from.roster {
			if id == playerID {
				from.roster = append(from.roster[:i], from.roster[i+1:]...)
				break
			}
		}
	}
	to.roster = append(to.roster, playerID)
	p.ClubID = toClubID
	return nil
}

// AverageOverall is the mean overall of the club's best eleven, or of the
// whole squad when it has fewer than eleven players.
func (w *World) AverageOverall(clubID uint) int {
	roster, err := w.Roster(clubID)
	if err != nil || len(roster) == 0 {
		return 0
	}
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].Overall > roster[j].Overall })
	n := len(roster)
	if n > 11 {
		n = 11
	}
	total := 0
	for _, p := range roster[:n] {
		total += p.Overall
	}
	return total / n
}

// CanSell reports whether the club may let the player go without breaking
// its squad floor or position minimums.
func (w *World) CanSell(club *Club, player *Player, rules Rules) bool {
	if club.SquadSize()-1 < rules.MinSquadSize {
		return false
	}
	keepers := 0
	for _, id := range club.roster {
		if p, ok := w.players[id]; ok && p.IsGoalkeeper() {
			keepers++
		}
	}
	if player.IsGoalkeeper() {
		return keepers-1 >= rules.MinGoalkeepers
	}
	return club.SquadSize()-keepers-1 >= rules.MinOutfielders
}

// HasRoom reports whether the club can take on another player.
func (w *World) HasRoom(club *Club, rules Rules) bool {
	return club.SquadSize() < rules.MaxSquadSize
}

// SetHumanControlled hands a club to a manager or back to the AI.
func (w *World) SetHumanControlled(clubID uint, human bool) error {
	club, err := w.Club(clubID)
	if err != nil {
		return err
	}
	club.HumanControlled = human
	return nil
}

func (w *World) recordTransfer(rec TransferHistoryRecord) {
	w.History = append(w.History, rec)
}
