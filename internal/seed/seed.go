// Package seed generates a deterministic football world for the market:
// leagues, clubs with budgets, and squads with contracts.
package seed

import (
	"fmt"
	"math"

	"github.com/DhavalSuthar-24/transferhub/internal/market"
)

// Player positions, matching the names used by the API.
const (
	Goalkeeper = market.GoalkeeperPosition
	Defender   = 1
	Midfielder = 2
	Attacker   = 3
)

type Options struct {
	Seed           int64 `mapstructure:"seed"`
	StartYear      int   `mapstructure:"start_year"`
	Leagues        int   `mapstructure:"leagues"`
	ClubsPerLeague int   `mapstructure:"clubs_per_league"`
	SquadSize      int   `mapstructure:"squad_size"`
	// HumanClubs marks the first clubs of the top league as human controlled.
	HumanClubs int `mapstructure:"human_clubs"`
}

func DefaultOptions() Options {
	return Options{
		Seed:           1,
		StartYear:      2024,
		Leagues:        3,
		ClubsPerLeague: 8,
		SquadSize:      22,
	}
}

var (
	towns = []string{
		"Ashford", "Bramley", "Castleton", "Dunmore", "Eastwick", "Fairhaven", "Glenmoor", "Harrowgate",
		"Ironbridge", "Kingsport", "Lowden", "Marlow", "Northam", "Oakridge", "Pendle", "Queensbury",
		"Redcliffe", "Stanmore", "Thornbury", "Upwell", "Valemouth", "Westfield", "Yarrow", "Zennor",
	}
	suffixes   = []string{"United", "City", "Rovers", "Athletic", "Town", "Wanderers", "Albion", "County"}
	firstNames = []string{
		"Aaron", "Ben", "Callum", "Dan", "Elliot", "Finn", "George", "Harry", "Isaac", "Jack",
		"Kieran", "Leo", "Marcus", "Nathan", "Oscar", "Patrick", "Reece", "Sam", "Tom", "Will",
	}
	lastNames = []string{
		"Adams", "Barker", "Clarke", "Dawson", "Evans", "Fletcher", "Grant", "Hughes", "Irwin", "Jones",
		"Kerr", "Lowe", "Morgan", "Nolan", "Owens", "Palmer", "Quinn", "Reid", "Shaw", "Turner",
		"Vaughan", "Walsh", "Young",
	}
	// squadShape is the share of each position in a squad, goalkeepers first.
	squadShape = []struct {
		position int
		weight   int
	}{
		{Goalkeeper, 3}, {Defender, 7}, {Midfielder, 7}, {Attacker, 5},
	}
)

func (o Options) validate(rules market.Rules) error {
	switch {
	case o.Leagues < 1:
		return fmt.Errorf("seed: need at least one league, got %d", o.Leagues)
	case o.ClubsPerLeague < 2:
		return fmt.Errorf("seed: need at least two clubs per league, got %d", o.ClubsPerLeague)
	case o.SquadSize < rules.MinSquadSize || o.SquadSize > rules.MaxSquadSize:
		return fmt.Errorf("seed: squad size %d outside [%d, %d]", o.SquadSize, rules.MinSquadSize, rules.MaxSquadSize)
	case o.HumanClubs < 0 || o.HumanClubs > o.ClubsPerLeague:
		return fmt.Errorf("seed: %d human clubs do not fit in a league of %d", o.HumanClubs, o.ClubsPerLeague)
	}
	if keepers := goalkeepers(o.SquadSize); keepers < rules.MinGoalkeepers || o.SquadSize-keepers < rules.MinOutfielders {
		return fmt.Errorf("seed: squad size %d cannot hold the position minimums", o.SquadSize)
	}
	return nil
}

func goalkeepers(squadSize int) int {
	return max(2, squadSize*squadShape[0].weight/22)
}

// Generate builds a world from opts. Equal options give equal worlds.
func Generate(opts Options, rules market.Rules) (*market.World, error) {
	if err := opts.validate(rules); err != nil {
		return nil, err
	}
	g := &generator{opts: opts, rng: market.NewRandom(opts.Seed), world: market.NewWorld(opts.StartYear)}
	if err := g.run(); err != nil {
		return nil, err
	}
	return g.world, nil
}

type generator struct {
	opts  Options
	rng   market.Random
	world *market.World

	nextClub   uint
	nextPlayer uint
}

func (g *generator) run() error {
	for tier := 1; tier <= g.opts.Leagues; tier++ {
		league := &market.League{ID: uint(tier), Name: leagueName(tier), Tier: tier}
		g.world.AddLeague(league)
		for i := 0; i < g.opts.ClubsPerLeague; i++ {
			human := tier == 1 && i < g.opts.HumanClubs
			if err := g.addClub(league, human); err != nil {
				return err
			}
		}
	}
	return nil
}

func leagueName(tier int) string {
	if tier == 1 {
		return "Premier Division"
	}
	return fmt.Sprintf("Division %d", tier-1)
}

func (g *generator) clubName(n uint) string {
	i := int(n - 1)
	name := towns[i%len(towns)] + " " + suffixes[(i/len(towns)+i)%len(suffixes)]
	if lap := i / (len(towns) * len(suffixes)); lap > 0 {
		name = fmt.Sprintf("%s %d", name, lap+1)
	}
	return name
}

func (g *generator) addClub(league *market.League, human bool) error {
	g.nextClub++
	c := &market.Club{
		ID:              g.nextClub,
		Name:            g.clubName(g.nextClub),
		LeagueID:        league.ID,
		HumanControlled: human,
	}
	if err := g.world.AddClub(c); err != nil {
		return err
	}

	// Strength falls by six points per tier, with some spread inside a league.
	strength := 78 - 6*(league.Tier-1) + g.rng.Int(-3, 3)
	var totalWages int64
	for _, p := range g.squadPositions() {
		player := g.newPlayer(c.ID, p, strength)
		if err := g.world.AddPlayer(player); err != nil {
			return err
		}
		totalWages += player.Wage
	}

	base := 40_000_000 / int64(math.Pow(3, float64(league.Tier-1)))
	c.TransferBudget = market.TruncateSF(int64(float64(base)*g.rng.Float(0.5, 1.5)), 3)
	c.WageBudget = market.TruncateSF(int64(float64(totalWages)/4.03306), 3)
	return nil
}

func (g *generator) squadPositions() []int {
	size := g.opts.SquadSize
	keepers := goalkeepers(size)
	positions := make([]int, 0, size)
	for i := 0; i < keepers; i++ {
		positions = append(positions, Goalkeeper)
	}
	outfield := size - keepers
	weights := 0
	for _, s := range squadShape[1:] {
		weights += s.weight
	}
	for i := 0; i < outfield; i++ {
		// Spread outfielders by weight, in position order.
		acc := 0
		slot := i * weights / outfield
		for _, s := range squadShape[1:] {
			acc += s.weight
			if slot < acc {
				positions = append(positions, s.position)
				break
			}
		}
	}
	return positions
}

func (g *generator) newPlayer(clubID uint, position, strength int) *market.Player {
	g.nextPlayer++
	age := g.rng.Int(17, 35)
	overall := clamp(strength+g.rng.Int(-8, 6), 40, 95)
	potential := overall
	if age < 27 {
		potential = clamp(overall+(27-age)*g.rng.Int(0, 2), overall, 99)
	}
	value := playerValue(overall, age)

	p := &market.Player{
		ID:         g.nextPlayer,
		Name:       g.playerName(),
		ClubID:     clubID,
		Position:   position,
		Age:        age,
		Overall:    overall,
		Potential:  potential,
		Value:      value,
		Wage:       market.TruncateSF(max(value/200, 1_000), 2),
		ExpiryYear: g.opts.StartYear + g.rng.Int(1, 5),
	}
	if g.rng.Int(1, 5) == 1 {
		p.ReleaseClause = market.TruncateSF(int64(float64(value)*g.rng.Float(1.5, 3.0)), 3)
	}
	return p
}

func (g *generator) playerName() string {
	return firstNames[g.rng.Int(0, len(firstNames)-1)] + " " + lastNames[g.rng.Int(0, len(lastNames)-1)]
}

// playerValue grows about 17% per overall point above 50. Young players
// carry a premium and veterans a discount.
func playerValue(overall, age int) int64 {
	v := 50_000 * math.Pow(1.17, float64(overall-50))
	switch {
	case age <= 23:
		v *= 1.3
	case age >= 31:
		v *= 0.6
	}
	return market.TruncateSF(int64(v), 3)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
