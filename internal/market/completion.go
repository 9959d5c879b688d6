package market

// completeTransfer settles an agreed deal subject to the player agreeing
// personal terms. It reports whether the player moved.
func (e *Engine) completeTransfer(buyer, seller *Club, player *Player, fee int64, releaseClause bool) bool {
	w := e.world

	if e.rng.Int(1, 100) > e.personalTermsChance(buyer, player) {
		w.Notify(seller.ID, "%s could not agree personal terms with %s and will stay.", player.Name, buyer.Name)
		e.log.Info("personal terms failed", "player_id", player.ID, "buyer_id", buyer.ID, "seller_id", seller.ID)
		return false
	}

	oldWage := player.Wage
	seller.TransferBudget += fee
	buyer.TransferBudget -= fee
	seller.WageBudget += oldWage

	player.Wage = e.contracts.MinimumWage(player)
	player.ExpiryYear = w.CurrentYear + e.signingLength(player)
	player.ReleaseClause = 0
	player.TransferListed = false
	player.TransfersBlocked = false
	buyer.WageBudget -= player.Wage

	if err := w.MovePlayer(player.ID, buyer.ID); err != nil {
		e.log.Error("move failed after settlement", "player_id", player.ID, "error", err)
	}
	w.PurgePlayerTransfers(player.ID)
	w.recordTransfer(TransferHistoryRecord{
		PlayerID:     player.ID,
		SellerClubID: seller.ID,
		BuyerClubID:  buyer.ID,
		Fee:          fee,
		Year:         w.CurrentYear,
	})
	w.Cooldowns.Add(NegotiationCooldown{
		PlayerID:       player.ID,
		ClubID:         AllClubs,
		Kind:           TransferNegotiating,
		TicksRemaining: e.rules.CompletedTransferCooldownTicks,
	})

	how := "transfer"
	if releaseClause {
		how = "release clause"
	}
	w.Notify(seller.ID, "%s has joined %s for %s (%s).", player.Name, buyer.Name, FormatCash(fee), how)
	w.Notify(buyer.ID, "%s has signed from %s for %s.", player.Name, seller.Name, FormatCash(fee))
	e.log.Info("transfer completed",
		"player_id", player.ID, "buyer_id", buyer.ID, "seller_id", seller.ID,
		"fee", fee, "release_clause", releaseClause)
	return true
}

// personalTermsChance is the percentage chance a player accepts terms; the
// larger the wage relative to the buyer's wage budget, the lower it is.
func (e *Engine) personalTermsChance(buyer *Club, player *Player) int {
	if buyer.WageBudget <= 0 {
		return 10
	}
	chance := int(100 * (1 - float64(player.Wage)/float64(buyer.WageBudget)))
	return max(10, min(95, chance))
}

func (e *Engine) signingLength(player *Player) int {
	switch {
	case player.Age <= 23:
		return e.rng.Int(3, 5)
	case player.Age <= 29:
		return e.rng.Int(2, 4)
	default:
		return e.rng.Int(1, 2)
	}
}
