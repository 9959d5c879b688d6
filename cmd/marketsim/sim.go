package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/DhavalSuthar-24/transferhub/internal/market"
	"github.com/DhavalSuthar-24/transferhub/internal/seed"
)

const (
	policyPassive = "passive"
	policyAccept  = "accept"
)

type simOptions struct {
	World  seed.Options
	Cycles int
	Policy string
	Logger *slog.Logger
}

func defaultSimOptions() simOptions {
	return simOptions{
		World:  seed.DefaultOptions(),
		Cycles: 20,
		Policy: policyPassive,
	}
}

// loadRules overlays a rules file on the default rules. Keys missing from the
// file keep their default value.
func loadRules(path string) (market.Rules, error) {
	rules := market.DefaultRules()
	if path == "" {
		return rules, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return market.Rules{}, fmt.Errorf("reading rules file: %w", err)
	}
	if err := v.Unmarshal(&rules); err != nil {
		return market.Rules{}, fmt.Errorf("decoding rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return market.Rules{}, err
	}
	return rules, nil
}

func simulate(out io.Writer, rules market.Rules, opts simOptions) (*market.World, error) {
	if opts.Policy != policyPassive && opts.Policy != policyAccept {
		return nil, fmt.Errorf("unknown policy %q", opts.Policy)
	}
	if opts.Cycles < 0 {
		return nil, fmt.Errorf("cycles must not be negative, got %d", opts.Cycles)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	world, err := seed.Generate(opts.World, rules)
	if err != nil {
		return nil, err
	}
	engine, err := market.NewEngine(world, rules, market.NewRandom(opts.World.Seed), logger)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "%d leagues, %d clubs, %d players, season %d\n",
		len(world.Leagues()), len(world.Clubs()), len(world.Players()), world.CurrentYear)
	for i := 0; i < opts.Cycles; i++ {
		if opts.Policy == policyAccept {
			actAsHumans(engine, logger)
		}
		report, err := engine.AdvanceCycle()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "cycle %3d: %d bids, %d answered, %d completed, %d failed, %d expired, %d blocked\n",
			report.Cycle, report.Bids, report.ProcessedMessages, report.Completions,
			report.FailedCompletions, report.ExpiredMessages, report.BlockedTransfers)
	}

	printHistory(out, world)
	return world, nil
}

func printHistory(out io.Writer, world *market.World) {
	fmt.Fprintf(out, "\n%d transfers\n", len(world.History))
	for _, rec := range world.History {
		player := fmt.Sprintf("player %d", rec.PlayerID)
		if p, err := world.Player(rec.PlayerID); err == nil {
			player = p.Name
		}
		fmt.Fprintf(out, "%d  %-20s %-24s -> %-24s %s\n", rec.Year, player,
			clubName(world, rec.SellerClubID), clubName(world, rec.BuyerClubID), market.FormatCash(rec.Fee))
	}
}

func clubName(world *market.World, id uint) string {
	if c, err := world.Club(id); err == nil {
		return c.Name
	}
	return fmt.Sprintf("club %d", id)
}

// actAsHumans plays every human club with the accept policy: fees and
// release clause activations are accepted, rejections dismissed, and
// agreed signings get the player's counter terms.
func actAsHumans(engine *market.Engine, logger *slog.Logger) {
	world := engine.World()
	for _, club := range world.Clubs() {
		if !club.HumanControlled {
			continue
		}
		inbox := make([]market.Transfer, 0, len(club.Inbox))
		for _, t := range club.Inbox {
			inbox = append(inbox, *t)
		}
		for _, t := range inbox {
			var err error
			switch {
			case t.RejectedOffer:
				err = engine.DismissTransfer(club.ID, t.ID)
			case t.FeeAgreed && t.BiddingClubID == club.ID:
				err = signPlayer(engine, club.ID, t.PlayerID)
			default:
				err = engine.RespondToTransfer(club.ID, t.ID, market.ActionAccept, 0)
			}
			if err != nil && !errors.Is(err, market.ErrStaleTransfer) {
				logger.Info("human action refused", "club", club.ID, "player", t.PlayerID, "status", t.Status(), "err", err)
			}
		}
	}
}

func signPlayer(engine *market.Engine, clubID, playerID uint) error {
	player, err := engine.World().Player(playerID)
	if err != nil {
		return err
	}
	resp, err := engine.NegotiateContract(market.ContractOffer{
		PlayerID: playerID,
		ClubID:   clubID,
		Length:   3,
		Wage:     player.Wage,
	})
	if err != nil || resp.Outcome != market.ContractCountered {
		return err
	}
	_, err = engine.ConcludeContract(clubID, playerID, true)
	return err
}
