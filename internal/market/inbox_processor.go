package market

// processInboxes answers every message waiting at an AI club. Inboxes are
// detached before any club is handled, so responses created in this pass
// wait for the next one.
func (e *Engine) processInboxes(report *CycleReport) {
	type batch struct {
		club     *Club
		messages []*Transfer
	}
	var batches []batch
	for _, club := range e.world.Clubs() {
		if club.HumanControlled || len(club.Inbox) == 0 {
			continue
		}
		batches = append(batches, batch{club: club, messages: club.Inbox})
		club.Inbox = nil
	}

	for _, b := range batches {
		for _, t := range b.messages {
			report.ProcessedMessages++
			if t.BiddingClubID == b.club.ID {
				e.answerAsBuyer(b.club, t, report)
			} else {
				e.answerAsSeller(b.club, t, report)
			}
		}
	}
}

// counterparties resolves the other side of a message and drops it when the
// player has already left the expected seller.
func (e *Engine) counterparties(t *Transfer, report *CycleReport) (buyer, seller *Club, player *Player, ok bool) {
	w := e.world
	var err error
	if buyer, err = w.Club(t.BiddingClubID); err != nil {
		e.log.Error("dropping transfer message", "transfer_id", t.ID, "error", err)
		return nil, nil, nil, false
	}
	if seller, err = w.Club(t.SellingClubID); err != nil {
		e.log.Error("dropping transfer message", "transfer_id", t.ID, "error", err)
		return nil, nil, nil, false
	}
	if player, err = w.Player(t.PlayerID); err != nil {
		e.log.Error("dropping transfer message", "transfer_id", t.ID, "error", err)
		return nil, nil, nil, false
	}
	if player.ClubID != seller.ID {
		report.StaleMessages++
		return nil, nil, nil, false
	}
	return buyer, seller, player, true
}

func (e *Engine) answerAsBuyer(buyer *Club, t *Transfer, report *CycleReport) {
	w := e.world
	_, seller, player, ok := e.counterparties(t, report)
	if !ok {
		return
	}

	switch {
	case t.RejectedOffer:
		return
	case t.FeeAgreed:
		if reason := e.completionBlocked(buyer, seller, player, t.Fee); reason != "" {
			report.BlockedTransfers++
			e.log.Warn("transfer blocked",
				"player_id", player.ID, "buyer_id", buyer.ID, "seller_id", seller.ID, "reason", reason)
			w.Notify(seller.ID, "The transfer of %s to %s could not go through: %s.",
				player.Name, buyer.Name, reason)
			return
		}
		if e.completeTransfer(buyer, seller, player, t.Fee, t.ActivatedReleaseClause) {
			report.Completions++
		} else {
			report.FailedCompletions++
		}
	case t.CounterOffer:
		eval := e.bids.EvaluateAsk(buyer, player, w.CurrentYear, t.Fee)
		switch eval.Decision {
		case Accept:
			agreed := newTransfer(buyer.ID, seller.ID, player.ID, t.Fee, e.rules.MessageTicks)
			agreed.FeeAgreed = true
			// The agreed fee waits in the buyer's inbox for completion; the
			// seller only gets the notice.
			buyer.Enqueue(agreed)
			w.Notify(seller.ID, "%s have agreed to pay %s for %s.", buyer.Name, FormatCash(t.Fee), player.Name)
		case Counter:
			counter := newTransfer(buyer.ID, seller.ID, player.ID, eval.Fee, e.rules.MessageTicks)
			counter.CounterOffer = true
			seller.Enqueue(counter)
			w.Notify(seller.ID, "%s have raised their offer for %s to %s.", buyer.Name, player.Name, FormatCash(eval.Fee))
		case Reject:
			rejected := newTransfer(buyer.ID, seller.ID, player.ID, t.Fee, e.rules.MessageTicks)
			rejected.RejectedOffer = true
			seller.Enqueue(rejected)
			w.Cooldowns.Add(NegotiationCooldown{
				PlayerID:       player.ID,
				ClubID:         AllClubs,
				Kind:           TransferNegotiating,
				TicksRemaining: e.rules.RejectionCooldownTicks,
			})
			w.Notify(seller.ID, "%s have pulled out of the deal for %s.", buyer.Name, player.Name)
			e.log.Info("buyer walked away", "player_id", player.ID, "buyer_id", buyer.ID, "ask", t.Fee)
		}
	}
}

func (e *Engine) answerAsSeller(seller *Club, t *Transfer, report *CycleReport) {
	w := e.world
	buyer, _, player, ok := e.counterparties(t, report)
	if !ok {
		return
	}
	if t.RejectedOffer || t.FeeAgreed {
		return
	}

	reply := newTransfer(buyer.ID, seller.ID, player.ID, t.Fee, e.rules.MessageTicks)
	if !w.CanSell(seller, player, e.rules) {
		reply.RejectedOffer = true
		buyer.Enqueue(reply)
		w.Notify(buyer.ID, "%s cannot sell %s without falling below their squad minimum.", seller.Name, player.Name)
		return
	}

	eval := e.bids.EvaluateBid(player, w.CurrentYear, t.Fee)
	switch eval.Decision {
	case Accept:
		reply.FeeAgreed = true
		w.Notify(buyer.ID, "%s have accepted your %s bid for %s.", seller.Name, FormatCash(t.Fee), player.Name)
	case Counter:
		reply.Fee = eval.Fee
		reply.CounterOffer = true
		w.Notify(buyer.ID, "%s want %s for %s.", seller.Name, FormatCash(eval.Fee), player.Name)
	case Reject:
		reply.RejectedOffer = true
		w.Cooldowns.Add(NegotiationCooldown{
			PlayerID:       player.ID,
			ClubID:         buyer.ID,
			Kind:           TransferNegotiating,
			TicksRemaining: e.rng.Int(e.rules.SellerRejectionCooldownMin, e.rules.SellerRejectionCooldownMax),
		})
		w.Notify(buyer.ID, "%s have rejected your %s bid for %s.", seller.Name, FormatCash(t.Fee), player.Name)
	}
	buyer.Enqueue(reply)
}

// completionBlocked returns why an agreed deal cannot complete, or "".
func (e *Engine) completionBlocked(buyer, seller *Club, player *Player, fee int64) string {
	switch {
	case !e.world.CanSell(seller, player, e.rules):
		return "selling club would fall below the squad minimum"
	case !e.world.HasRoom(buyer, e.rules):
		return "buying club squad is full"
	case buyer.TransferBudget < fee:
		return "buying club cannot afford the fee"
	}
	return ""
}
