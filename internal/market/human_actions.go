package market

import (
	"fmt"
	"sort"
)

// Action is a manager's answer to a transfer message.
type Action int

const (
	ActionAccept Action = iota
	ActionReject
	ActionCounter
)

// ParseAction maps the wire names accept, reject and counter.
func ParseAction(s string) (Action, error) {
	switch s {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	case "counter":
		return ActionCounter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

const notForSaleChance = 30

// OpenBid places a bid for a player on behalf of the buying club.
func (e *Engine) OpenBid(buyerID, playerID uint, fee int64) (*Transfer, error) {
	if err := e.idle(); err != nil {
		return nil, err
	}
	if fee <= 0 {
		return nil, ErrInvalidFee
	}
	w := e.world
	buyer, err := w.Club(buyerID)
	if err != nil {
		return nil, err
	}
	player, err := w.Player(playerID)
	if err != nil {
		return nil, err
	}
	seller, err := w.Club(player.ClubID)
	if err != nil {
		return nil, err
	}

	switch {
	case seller.ID == buyer.ID:
		return nil, ErrOwnPlayer
	case player.TransfersBlocked:
		return nil, ErrTransfersBlocked
	case w.Negotiating(player.ID, buyer.ID):
		return nil, ErrAlreadyNegotiating
	case w.Cooldowns.Active(player.ID, buyer.ID, TransferNegotiating):
		return nil, ErrCooldownActive
	case !seller.HumanControlled && e.notForSale(seller, player):
		return nil, ErrNotForSale
	case fee > buyer.TransferBudget:
		return nil, ErrInsufficientBudget
	}

	t := newTransfer(buyer.ID, seller.ID, player.ID, fee, e.rules.MessageTicks)
	seller.Enqueue(t)
	w.Notify(seller.ID, "%s have made a %s bid for %s.", buyer.Name, FormatCash(fee), player.Name)
	return t, nil
}

// notForSale protects an AI club's three best players while their
// contracts are long.
func (e *Engine) notForSale(seller *Club, player *Player) bool {
	roster, err := e.world.Roster(seller.ID)
	if err != nil {
		return false
	}
	sort.SliceStable(roster, func(i, j int) bool { return roster[i].Overall > roster[j].Overall })
	top := false
	for i := 0; i < len(roster) && i < 3; i++ {
		if roster[i].ID == player.ID {
			top = true
			break
		}
	}
	if !top {
		return false
	}
	switch years := player.YearsLeft(e.world.CurrentYear); {
	case years > 3:
		return true
	case years == 3:
		return e.rng.Int(1, 100) <= notForSaleChance
	}
	return false
}

// RespondToTransfer applies a manager's answer to a message in the club's
// inbox. fee is only read for counters.
func (e *Engine) RespondToTransfer(clubID uint, transferID string, action Action, fee int64) error {
	if err := e.idle(); err != nil {
		return err
	}
	w := e.world
	club, err := w.Club(clubID)
	if err != nil {
		return err
	}
	t := club.FindTransfer(transferID)
	if t == nil {
		return fmt.Errorf("%w %s", ErrUnknownTransfer, transferID)
	}
	buyer, err := w.Club(t.BiddingClubID)
	if err != nil {
		return err
	}
	seller, err := w.Club(t.SellingClubID)
	if err != nil {
		return err
	}
	player, err := w.Player(t.PlayerID)
	if err != nil {
		return err
	}
	if player.ClubID != seller.ID {
		club.RemoveTransfer(t.ID)
		return ErrStaleTransfer
	}
	isBuyer := t.BiddingClubID == club.ID

	if t.RejectedOffer || (t.FeeAgreed && isBuyer) {
		return ErrInvalidAction
	}
	if t.ActivatedReleaseClause && action != ActionAccept {
		return ErrReleaseClauseBinding
	}

	switch action {
	case ActionAccept:
		if isBuyer && t.Fee > buyer.TransferBudget {
			return ErrInsufficientBudget
		}
		club.RemoveTransfer(t.ID)
		agreed := newTransfer(buyer.ID, seller.ID, player.ID, t.Fee, e.rules.MessageTicks)
		agreed.FeeAgreed = true
		agreed.ActivatedReleaseClause = t.ActivatedReleaseClause
		buyer.Enqueue(agreed)
		if !isBuyer {
			w.Notify(buyer.ID, "%s have accepted your %s bid for %s.", seller.Name, FormatCash(t.Fee), player.Name)
		}
	case ActionReject:
		club.RemoveTransfer(t.ID)
		other := seller
		if !isBuyer {
			other = buyer
			w.Cooldowns.Add(NegotiationCooldown{
				PlayerID:       player.ID,
				ClubID:         buyer.ID,
				Kind:           TransferNegotiating,
				TicksRemaining: e.rules.RejectionCooldownTicks,
			})
		}
		rejected := newTransfer(buyer.ID, seller.ID, player.ID, t.Fee, e.rules.MessageTicks)
		rejected.RejectedOffer = true
		other.Enqueue(rejected)
		w.Notify(other.ID, "%s have ended talks over %s.", club.Name, player.Name)
	case ActionCounter:
		if fee <= 0 {
			return ErrInvalidFee
		}
		if isBuyer && fee > buyer.TransferBudget {
			return ErrInsufficientBudget
		}
		club.RemoveTransfer(t.ID)
		other := seller
		if !isBuyer {
			other = buyer
		}
		counter := newTransfer(buyer.ID, seller.ID, player.ID, fee, e.rules.MessageTicks)
		counter.CounterOffer = true
		other.Enqueue(counter)
		w.Notify(other.ID, "%s have countered with %s for %s.", club.Name, FormatCash(fee), player.Name)
	default:
		return fmt.Errorf("%w: %d", ErrInvalidAction, action)
	}
	return nil
}

// DismissTransfer clears a rejected message from the club's inbox.
func (e *Engine) DismissTransfer(clubID uint, transferID string) error {
	if err := e.idle(); err != nil {
		return err
	}
	club, err := e.world.Club(clubID)
	if err != nil {
		return err
	}
	t := club.FindTransfer(transferID)
	if t == nil {
		return fmt.Errorf("%w %s", ErrUnknownTransfer, transferID)
	}
	if !t.RejectedOffer {
		return ErrInvalidAction
	}
	club.RemoveTransfer(transferID)
	return nil
}

// ActivateReleaseClause pays a player's clause. The resulting fee-agreed
// message waits in the buyer's own inbox for a contract offer.
func (e *Engine) ActivateReleaseClause(buyerID, playerID uint) (*Transfer, error) {
	if err := e.idle(); err != nil {
		return nil, err
	}
	w := e.world
	buyer, err := w.Club(buyerID)
	if err != nil {
		return nil, err
	}
	player, err := w.Player(playerID)
	if err != nil {
		return nil, err
	}
	switch {
	case player.ClubID == buyer.ID:
		return nil, ErrOwnPlayer
	case player.ReleaseClause <= 0:
		return nil, ErrNoReleaseClause
	case player.TransfersBlocked:
		return nil, ErrTransfersBlocked
	case w.Negotiating(player.ID, buyer.ID):
		return nil, ErrAlreadyNegotiating
	case player.ReleaseClause > buyer.TransferBudget:
		return nil, ErrInsufficientBudget
	}
	t := newTransfer(buyer.ID, player.ClubID, player.ID, player.ReleaseClause, e.rules.MessageTicks)
	t.FeeAgreed = true
	t.ActivatedReleaseClause = true
	buyer.Enqueue(t)
	w.Notify(player.ClubID, "%s have activated the %s release clause of %s.",
		buyer.Name, FormatCash(player.ReleaseClause), player.Name)
	return t, nil
}

// NegotiateContract puts an offer to a player: a renewal for the club's own
// player, or a signing once a fee has been agreed.
func (e *Engine) NegotiateContract(offer ContractOffer) (ContractResponse, error) {
	if err := e.idle(); err != nil {
		return ContractResponse{}, err
	}
	club, player, agreed, err := e.contractGates(offer)
	if err != nil {
		return ContractResponse{}, err
	}

	resp := e.contracts.Evaluate(player, offer, e.world.CurrentYear)
	key := contractKey{clubID: club.ID, playerID: player.ID}
	switch resp.Outcome {
	case ContractAccepted:
		e.applyContract(club, player, agreed, offer.Renewal, resp)
	case ContractCountered:
		e.counters[key] = pendingContract{offer: offer, response: resp}
	case ContractRejected:
		e.contractFailed(club, player)
	}
	return resp, nil
}

// ConcludeContract accepts the player's pending counter or walks away.
func (e *Engine) ConcludeContract(clubID, playerID uint, accept bool) (ContractResponse, error) {
	if err := e.idle(); err != nil {
		return ContractResponse{}, err
	}
	key := contractKey{clubID: clubID, playerID: playerID}
	pending, ok := e.counters[key]
	if !ok {
		return ContractResponse{}, ErrNoPendingCounter
	}

	club, err := e.world.Club(clubID)
	if err != nil {
		return ContractResponse{}, err
	}
	player, err := e.world.Player(playerID)
	if err != nil {
		return ContractResponse{}, err
	}
	if !accept {
		delete(e.counters, key)
		e.contractFailed(club, player)
		resp := pending.response
		resp.Outcome = ContractRejected
		return resp, nil
	}

	terms := pending.offer
	terms.Length = pending.response.Length
	terms.Wage = pending.response.Wage
	terms.ReleaseClause = pending.response.ReleaseClause
	// A failed gate keeps the counter so the club can retry this cycle.
	_, _, agreed, err := e.contractGates(terms)
	if err != nil {
		return ContractResponse{}, err
	}
	delete(e.counters, key)
	resp := pending.response
	resp.Outcome = ContractAccepted
	e.applyContract(club, player, agreed, terms.Renewal, resp)
	return resp, nil
}

// contractGates checks every precondition of an offer. For signings it
// returns the fee-agreed message the deal rests on.
func (e *Engine) contractGates(offer ContractOffer) (*Club, *Player, *Transfer, error) {
	w := e.world
	club, err := w.Club(offer.ClubID)
	if err != nil {
		return nil, nil, nil, err
	}
	player, err := w.Player(offer.PlayerID)
	if err != nil {
		return nil, nil, nil, err
	}
	minLength := 1
	if offer.Renewal {
		minLength = 0
	}
	if offer.Length < minLength || offer.Length > e.rules.MaxContractLength || offer.Wage <= 0 || offer.ReleaseClause < 0 {
		return nil, nil, nil, ErrInvalidOffer
	}
	if w.Cooldowns.Active(player.ID, club.ID, ContractNegotiating) {
		return nil, nil, nil, ErrCooldownActive
	}

	if offer.Renewal {
		if player.ClubID != club.ID {
			return nil, nil, nil, ErrNotOwner
		}
		if offer.Wage-player.Wage > club.WageBudget {
			return nil, nil, nil, ErrInsufficientWageBudget
		}
		return club, player, nil, nil
	}

	if player.ClubID == club.ID {
		return nil, nil, nil, ErrOwnPlayer
	}
	var agreed *Transfer
	for _, t := range club.Inbox {
		if t.PlayerID == player.ID && t.FeeAgreed && t.BiddingClubID == club.ID {
			agreed = t
			break
		}
	}
	if agreed == nil {
		return nil, nil, nil, ErrNoAgreedFee
	}
	seller, err := w.Club(player.ClubID)
	if err != nil {
		return nil, nil, nil, err
	}
	switch {
	case !w.CanSell(seller, player, e.rules):
		return nil, nil, nil, ErrSquadTooSmall
	case !w.HasRoom(club, e.rules):
		return nil, nil, nil, ErrSquadFull
	case agreed.Fee > club.TransferBudget:
		return nil, nil, nil, ErrInsufficientBudget
	case offer.Wage > club.WageBudget:
		return nil, nil, nil, ErrInsufficientWageBudget
	}
	gap, err := e.leagueGap(club, seller)
	if err != nil {
		return nil, nil, nil, err
	}
	if gap {
		return nil, nil, nil, ErrLeagueGap
	}
	return club, player, agreed, nil
}

// leagueGap reports whether the player's league sits two or more tiers
// above the buying club's.
func (e *Engine) leagueGap(buyer, seller *Club) (bool, error) {
	if buyer.LeagueID == 0 || seller.LeagueID == 0 {
		return false, nil
	}
	buyerLeague, err := e.world.League(buyer.LeagueID)
	if err != nil {
		return false, err
	}
	sellerLeague, err := e.world.League(seller.LeagueID)
	if err != nil {
		return false, err
	}
	return sellerLeague.Tier <= buyerLeague.Tier-2, nil
}

func (e *Engine) applyContract(club *Club, player *Player, agreed *Transfer, renewal bool, terms ContractResponse) {
	w := e.world
	oldWage := player.Wage

	if renewal {
		player.ExpiryYear += terms.Length
		player.Wage = terms.Wage
		player.ReleaseClause = terms.ReleaseClause
		club.WageBudget -= terms.Wage - oldWage
		w.PurgeReleaseClauseActivations(player.ID)
		w.Notify(club.ID, "%s has signed a new contract until %d.", player.Name, player.ExpiryYear)
	} else {
		seller, err := w.Club(player.ClubID)
		if err != nil {
			e.log.Error("signing without seller", "player_id", player.ID, "error", err)
			return
		}
		club.TransferBudget -= agreed.Fee
		seller.TransferBudget += agreed.Fee
		club.WageBudget -= terms.Wage
		seller.WageBudget += oldWage

		player.ExpiryYear = w.CurrentYear + terms.Length
		player.Wage = terms.Wage
		player.ReleaseClause = terms.ReleaseClause
		player.TransferListed = false
		player.TransfersBlocked = false

		if err := w.MovePlayer(player.ID, club.ID); err != nil {
			e.log.Error("move failed after settlement", "player_id", player.ID, "error", err)
		}
		w.PurgePlayerTransfers(player.ID)
		w.recordTransfer(TransferHistoryRecord{
			PlayerID:     player.ID,
			SellerClubID: seller.ID,
			BuyerClubID:  club.ID,
			Fee:          agreed.Fee,
			Year:         w.CurrentYear,
		})
		w.Cooldowns.Add(NegotiationCooldown{
			PlayerID:       player.ID,
			ClubID:         AllClubs,
			Kind:           TransferNegotiating,
			TicksRemaining: e.rules.CompletedTransferCooldownTicks,
		})
		w.Notify(seller.ID, "%s has joined %s for %s.", player.Name, club.Name, FormatCash(agreed.Fee))
		e.log.Info("signing completed",
			"player_id", player.ID, "buyer_id", club.ID, "seller_id", seller.ID,
			"fee", agreed.Fee, "release_clause", agreed.ActivatedReleaseClause)
	}

	w.Cooldowns.Add(NegotiationCooldown{
		PlayerID:       player.ID,
		ClubID:         AllClubs,
		Kind:           ContractNegotiating,
		TicksRemaining: e.rules.ContractSuccessCooldownTicks,
	})
}

func (e *Engine) contractFailed(club *Club, player *Player) {
	e.world.Cooldowns.Add(NegotiationCooldown{
		PlayerID:       player.ID,
		ClubID:         club.ID,
		Kind:           ContractNegotiating,
		TicksRemaining: e.rng.Int(e.rules.ContractFailureCooldownMin, e.rules.ContractFailureCooldownMax),
	})
}

// SetTransferStatus lists or blocks one of the club's players. Blocking a
// player takes it off the list.
func (e *Engine) SetTransferStatus(clubID, playerID uint, listed, blocked bool) (*Player, error) {
	if err := e.idle(); err != nil {
		return nil, err
	}
	player, err := e.world.Player(playerID)
	if err != nil {
		return nil, err
	}
	if player.ClubID != clubID {
		return nil, ErrNotOwner
	}
	player.TransfersBlocked = blocked
	player.TransferListed = listed && !blocked
	return player, nil
}

// PendingCounter returns the player's outstanding contract counter for the
// club, if any.
func (e *Engine) PendingCounter(clubID, playerID uint) (ContractResponse, bool) {
	p, ok := e.counters[contractKey{clubID: clubID, playerID: playerID}]
	return p.response, ok
}
