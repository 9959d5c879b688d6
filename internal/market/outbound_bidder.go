package market

// placeBids lets AI clubs open negotiations for players at human clubs.
func (e *Engine) placeBids(report *CycleReport) {
	w := e.world
	for _, seller := range w.Clubs() {
		if !seller.HumanControlled {
			continue
		}
		roster, err := w.Roster(seller.ID)
		if err != nil {
			e.log.Error("roster lookup failed", "club_id", seller.ID, "error", err)
			continue
		}
		for _, player := range roster {
			if t := e.openingBid(seller, player); t != nil {
				seller.Enqueue(t)
				report.Bids++
				if t.ActivatedReleaseClause {
					report.ReleaseClauseTriggers++
					w.Notify(seller.ID, "%s have activated the %s release clause of %s.",
						w.clubName(t.BiddingClubID), FormatCash(t.Fee), player.Name)
				} else {
					w.Notify(seller.ID, "%s have made a %s bid for %s.",
						w.clubName(t.BiddingClubID), FormatCash(t.Fee), player.Name)
				}
				e.log.Debug("opening bid placed",
					"player_id", player.ID, "buyer_id", t.BiddingClubID, "seller_id", seller.ID,
					"fee", t.Fee, "release_clause", t.ActivatedReleaseClause)
			}
		}
	}
}

// openingBid returns the message an AI club sends for the player this
// cycle, or nil when nobody bids.
func (e *Engine) openingBid(seller *Club, player *Player) *Transfer {
	w := e.world
	if player.TransfersBlocked {
		return nil
	}
	if !w.CanSell(seller, player, e.rules) {
		return nil
	}
	if w.Cooldowns.Active(player.ID, AllClubs, TransferNegotiating) {
		return nil
	}

	interest := e.rng.Int(0, 100)
	if player.TransferListed {
		interest += e.rules.TransferListedInterest
	}
	if interest < e.rules.BidInterestThreshold {
		return nil
	}

	floor, _ := e.bids.SellerBand(player, w.CurrentYear)
	candidates := e.biddingCandidates(seller, player, floor)
	if len(candidates) == 0 {
		return nil
	}
	buyer := candidates[e.rng.Int(0, len(candidates)-1)]

	fee := e.bids.SampleSellerPrice(player, w.CurrentYear)
	if player.Wage > buyer.WageBudget/2 {
		fee = int64(float64(fee) * e.rules.WageAffordabilityPenalty)
	}
	if fee > buyer.TransferBudget {
		fee = buyer.TransferBudget
	}
	fee = TruncateSF(fee, e.rules.SignificantFigures)
	if fee <= 0 {
		return nil
	}

	t := newTransfer(buyer.ID, seller.ID, player.ID, fee, e.rules.MessageTicks)
	if player.ReleaseClause > 0 && fee >= player.ReleaseClause {
		t.Fee = player.ReleaseClause
		t.FeeAgreed = true
		t.ActivatedReleaseClause = true
		t.ExpirationTicks = e.rules.ReleaseClauseTicks
	}
	return t
}

// biddingCandidates lists the AI clubs that could plausibly bid.
func (e *Engine) biddingCandidates(seller *Club, player *Player, floor int64) []*Club {
	w := e.world
	var out []*Club
	for _, club := range w.Clubs() {
		switch {
		case club.HumanControlled, club.ID == seller.ID:
			continue
		case w.Negotiating(player.ID, club.ID):
			continue
		case !w.HasRoom(club, e.rules):
			continue
		case w.Cooldowns.Active(player.ID, club.ID, TransferNegotiating):
			continue
		case club.TransferBudget < floor:
			continue
		case !e.ratingFit(club, player):
			continue
		}
		out = append(out, club)
	}
	return out
}

func (e *Engine) ratingFit(club *Club, player *Player) bool {
	avg := e.world.AverageOverall(club.ID)
	if player.Overall >= e.rules.LowRatedThreshold {
		return avg >= player.Overall-e.rules.RatingBand && avg <= player.Overall+e.rules.RatingBand
	}
	return avg <= e.rules.LowRatedClubCeiling
}
