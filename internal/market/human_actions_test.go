package market

import (
	"errors"
	"testing"
)

func TestOpenBidGates(t *testing.T) {
	tests := []struct {
		name   string
		player uint
		fee    int64
		setup  func(w *World)
		want   error
	}{
		{name: "zero fee", player: 303, fee: 0, want: ErrInvalidFee},
		{name: "unknown player", player: 999, fee: 1_000_000, want: ErrUnknownPlayer},
		{name: "own player", player: 103, fee: 1_000_000, want: ErrOwnPlayer},
		{
			name: "blocked player", player: 303, fee: 1_000_000,
			setup: func(w *World) { w.players[303].TransfersBlocked = true },
			want:  ErrTransfersBlocked,
		},
		{
			name: "already negotiating", player: 303, fee: 1_000_000,
			setup: func(w *World) { w.clubs[3].Enqueue(newTransfer(1, 3, 303, 500_000, 3)) },
			want:  ErrAlreadyNegotiating,
		},
		{
			name: "cooling down", player: 303, fee: 1_000_000,
			setup: func(w *World) {
				w.Cooldowns.Add(NegotiationCooldown{PlayerID: 303, ClubID: 1, Kind: TransferNegotiating, TicksRemaining: 3})
			},
			want: ErrCooldownActive,
		},
		{
			name: "star on a long contract", player: 205, fee: 1_000_000,
			setup: func(w *World) {
				w.players[205].Overall = 90
				w.players[205].ExpiryYear = testYear + 4
			},
			want: ErrNotForSale,
		},
		{name: "over budget", player: 303, fee: 60_000_000, want: ErrInsufficientBudget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false), defaultSpec(3, true))
			if tt.setup != nil {
				tt.setup(w)
			}
			e := newTestEngine(t, w, alwaysMin())
			if _, err := e.OpenBid(1, tt.player, tt.fee); !errors.Is(err, tt.want) {
				t.Fatalf("OpenBid = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOpenBidReachesSeller(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(3, true))
	e := newTestEngine(t, w, alwaysMin())

	bid, err := e.OpenBid(1, 303, 1_500_000)
	if err != nil {
		t.Fatal(err)
	}
	seller := mustClub(t, w, 3)
	if seller.FindTransfer(bid.ID) == nil {
		t.Fatal("bid not in the seller's inbox")
	}
	if bid.Status() != "bid" || bid.ExpirationTicks != DefaultRules().MessageTicks {
		t.Errorf("bid = %+v", bid)
	}
	if len(seller.Messages) != 1 {
		t.Errorf("seller notifications = %v", seller.Messages)
	}
	if _, err := e.OpenBid(1, 303, 1_600_000); !errors.Is(err, ErrAlreadyNegotiating) {
		t.Errorf("second bid = %v, want ErrAlreadyNegotiating", err)
	}
}

func TestNotForSaleOnThreeYearContract(t *testing.T) {
	tests := []struct {
		roll int
		want error
	}{
		{30, ErrNotForSale},
		{31, nil},
	}
	for _, tt := range tests {
		w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
		star := mustPlayer(t, w, 205)
		star.Overall = 90
		star.ExpiryYear = testYear + 3
		e := newTestEngine(t, w, &stubRandom{ints: []int{tt.roll}})

		if _, err := e.OpenBid(1, 205, 1_000_000); !errors.Is(err, tt.want) {
			t.Errorf("roll %d: OpenBid = %v, want %v", tt.roll, err, tt.want)
		}
	}
}

func TestRespondToTransfer(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		fee      int64
		status   string
		replyFee int64
		cooldown bool
	}{
		{"accept", ActionAccept, 0, "fee_agreed", 900_000, false},
		{"reject", ActionReject, 0, "rejected", 900_000, true},
		{"counter", ActionCounter, 2_000_000, "counter_offer", 2_000_000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
			e := newTestEngine(t, w, alwaysMin())
			seller := mustClub(t, w, 1)
			bid := newTransfer(2, 1, 103, 900_000, 3)
			seller.Enqueue(bid)

			if err := e.RespondToTransfer(1, bid.ID, tt.action, tt.fee); err != nil {
				t.Fatal(err)
			}
			if len(seller.Inbox) != 0 {
				t.Error("answered message stayed in the inbox")
			}
			replies := messagesFor(mustClub(t, w, 2), 103)
			if len(replies) != 1 || replies[0].Status() != tt.status || replies[0].Fee != tt.replyFee {
				t.Fatalf("replies = %+v, want %s %d", replies, tt.status, tt.replyFee)
			}
			if got := w.Cooldowns.Active(103, 2, TransferNegotiating); got != tt.cooldown {
				t.Errorf("cooldown for the bidder = %v, want %v", got, tt.cooldown)
			}
			if w.Cooldowns.Active(103, 3, TransferNegotiating) {
				t.Error("rejection cooled the player down for an uninvolved club")
			}
		})
	}
}

func TestRespondToTransferErrors(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false), defaultSpec(3, false))
	e := newTestEngine(t, w, alwaysMin())
	human := mustClub(t, w, 1)

	bid := newTransfer(2, 1, 103, 900_000, 3)
	human.Enqueue(bid)
	if err := e.RespondToTransfer(1, bid.ID, ActionCounter, 0); !errors.Is(err, ErrInvalidFee) {
		t.Errorf("counter without fee = %v, want ErrInvalidFee", err)
	}
	if human.FindTransfer(bid.ID) == nil {
		t.Error("failed counter consumed the message")
	}
	if err := e.RespondToTransfer(1, "missing", ActionAccept, 0); !errors.Is(err, ErrUnknownTransfer) {
		t.Errorf("unknown message = %v, want ErrUnknownTransfer", err)
	}

	clause := newTransfer(2, 1, 104, 5_000_000, 2)
	clause.FeeAgreed = true
	clause.ActivatedReleaseClause = true
	human.Enqueue(clause)
	if err := e.RespondToTransfer(1, clause.ID, ActionReject, 0); !errors.Is(err, ErrReleaseClauseBinding) {
		t.Errorf("rejecting a release clause = %v, want ErrReleaseClauseBinding", err)
	}
	if err := e.RespondToTransfer(1, clause.ID, ActionAccept, 0); err != nil {
		t.Fatalf("accepting a release clause: %v", err)
	}
	agreed := messagesFor(mustClub(t, w, 2), 104)
	if len(agreed) != 1 || !agreed[0].FeeAgreed || !agreed[0].ActivatedReleaseClause {
		t.Errorf("buyer inbox after clause = %+v", agreed)
	}

	rejected := newTransfer(1, 2, 205, 100_000, 3)
	rejected.RejectedOffer = true
	human.Enqueue(rejected)
	if err := e.RespondToTransfer(1, rejected.ID, ActionAccept, 0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("answering a rejection = %v, want ErrInvalidAction", err)
	}
	if err := e.DismissTransfer(1, bid.ID); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("dismissing an open bid = %v, want ErrInvalidAction", err)
	}
	if err := e.DismissTransfer(1, rejected.ID); err != nil {
		t.Fatal(err)
	}
	if human.FindTransfer(rejected.ID) != nil {
		t.Error("dismissed rejection is still in the inbox")
	}

	stale := newTransfer(3, 1, 105, 900_000, 3)
	human.Enqueue(stale)
	if err := w.MovePlayer(105, 2); err != nil {
		t.Fatal(err)
	}
	if err := e.RespondToTransfer(1, stale.ID, ActionAccept, 0); !errors.Is(err, ErrStaleTransfer) {
		t.Errorf("stale message = %v, want ErrStaleTransfer", err)
	}
	if human.FindTransfer(stale.ID) != nil {
		t.Error("stale message was not removed")
	}
}

func TestHumanBuyerAcceptsCounter(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	buyer := mustClub(t, w, 1)
	counter := newTransfer(1, 2, 203, 2_000_000, 3)
	counter.CounterOffer = true
	buyer.Enqueue(counter)

	if err := e.RespondToTransfer(1, counter.ID, ActionAccept, 0); err != nil {
		t.Fatal(err)
	}
	agreed := messagesFor(buyer, 203)
	if len(agreed) != 1 || !agreed[0].FeeAgreed || agreed[0].Fee != 2_000_000 {
		t.Fatalf("buyer inbox = %+v, want the agreed fee", agreed)
	}
	if err := e.RespondToTransfer(1, agreed[0].ID, ActionAccept, 0); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("answering own agreement = %v, want ErrInvalidAction", err)
	}
}

func signingOffer(playerID, clubID uint) ContractOffer {
	return ContractOffer{PlayerID: playerID, ClubID: clubID, Length: 3, Wage: 20_000}
}

func TestReleaseClauseSigning(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	player := mustPlayer(t, w, 203)
	player.ReleaseClause = 5_000_000
	buyer, seller := mustClub(t, w, 1), mustClub(t, w, 2)
	wagesBefore := buyer.WageBudget

	msg, err := e.ActivateReleaseClause(1, 203)
	if err != nil {
		t.Fatal(err)
	}
	if buyer.FindTransfer(msg.ID) == nil || msg.Status() != "release_clause" {
		t.Fatalf("activation = %+v, want a release clause message in the buyer inbox", msg)
	}

	resp, err := e.NegotiateContract(signingOffer(203, 1))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Outcome != ContractAccepted {
		t.Fatalf("outcome = %v, want accepted", resp.Outcome)
	}
	if player.ClubID != 1 || player.ExpiryYear != testYear+3 || player.Wage != 20_000 {
		t.Errorf("player after signing = %+v", player)
	}
	if buyer.TransferBudget != 45_000_000 || seller.TransferBudget != 55_000_000 {
		t.Errorf("budgets = %d / %d, want 45M / 55M", buyer.TransferBudget, seller.TransferBudget)
	}
	if buyer.WageBudget != wagesBefore-20_000 {
		t.Errorf("buyer wage budget = %d", buyer.WageBudget)
	}
	if len(buyer.Inbox) != 0 {
		t.Error("agreement survived the signing")
	}
	if len(w.History) != 1 || w.History[0].Fee != 5_000_000 {
		t.Errorf("history = %+v", w.History)
	}
	if !w.Cooldowns.Active(203, AllClubs, TransferNegotiating) || !w.Cooldowns.Active(203, AllClubs, ContractNegotiating) {
		t.Error("signing left the player without cooldowns")
	}
}

func TestActivateReleaseClauseGates(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	if _, err := e.ActivateReleaseClause(1, 203); !errors.Is(err, ErrNoReleaseClause) {
		t.Errorf("no clause = %v, want ErrNoReleaseClause", err)
	}
	mustPlayer(t, w, 203).ReleaseClause = 80_000_000
	if _, err := e.ActivateReleaseClause(1, 203); !errors.Is(err, ErrInsufficientBudget) {
		t.Errorf("clause over budget = %v, want ErrInsufficientBudget", err)
	}
	mustPlayer(t, w, 103).ReleaseClause = 1_000_000
	if _, err := e.ActivateReleaseClause(1, 103); !errors.Is(err, ErrOwnPlayer) {
		t.Errorf("own clause = %v, want ErrOwnPlayer", err)
	}
}

func TestSigningGates(t *testing.T) {
	agreedFee := func(w *World) {
		m := newTransfer(1, 2, 203, 1_000_000, 3)
		m.FeeAgreed = true
		w.clubs[1].Enqueue(m)
	}
	tests := []struct {
		name  string
		buyer clubSpec
		sell  clubSpec
		offer ContractOffer
		agree bool
		want  error
	}{
		{"no agreed fee", defaultSpec(1, true), defaultSpec(2, false), signingOffer(203, 1), false, ErrNoAgreedFee},
		{"zero length", defaultSpec(1, true), defaultSpec(2, false), ContractOffer{PlayerID: 203, ClubID: 1, Length: 0, Wage: 20_000}, true, ErrInvalidOffer},
		{"too long", defaultSpec(1, true), defaultSpec(2, false), ContractOffer{PlayerID: 203, ClubID: 1, Length: 6, Wage: 20_000}, true, ErrInvalidOffer},
		{"own player", defaultSpec(1, true), defaultSpec(2, false), signingOffer(103, 1), false, ErrOwnPlayer},
		{"wage budget", defaultSpec(1, true), defaultSpec(2, false), ContractOffer{PlayerID: 203, ClubID: 1, Length: 3, Wage: 20_000_000}, true, ErrInsufficientWageBudget},
		{"squad full", clubSpec{id: 1, human: true, keepers: 2, outfield: 28, overall: 70, budget: 50_000_000, wageBudget: 10_000_000}, defaultSpec(2, false), signingOffer(203, 1), true, ErrSquadFull},
		{"seller at minimum", defaultSpec(1, true), clubSpec{id: 2, keepers: 2, outfield: 14, overall: 70, budget: 50_000_000, wageBudget: 10_000_000}, signingOffer(203, 1), true, ErrSquadTooSmall},
		{"league gap", clubSpec{id: 1, human: true, keepers: 2, outfield: 16, overall: 70, budget: 50_000_000, wageBudget: 10_000_000, leagueID: 3}, defaultSpec(2, false), signingOffer(203, 1), true, ErrLeagueGap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, tt.buyer, tt.sell)
			if tt.agree {
				agreedFee(w)
			}
			e := newTestEngine(t, w, alwaysMin())
			if _, err := e.NegotiateContract(tt.offer); !errors.Is(err, tt.want) {
				t.Fatalf("NegotiateContract = %v, want %v", err, tt.want)
			}
			if mustPlayer(t, w, tt.offer.PlayerID).ClubID == 1 && tt.offer.PlayerID != 103 {
				t.Error("gated signing moved the player")
			}
		})
	}
}

func TestOneTierGapIsAllowed(t *testing.T) {
	buyer := defaultSpec(1, true)
	buyer.leagueID = 2
	w := newTestWorld(t, buyer, defaultSpec(2, false))
	m := newTransfer(1, 2, 203, 1_000_000, 3)
	m.FeeAgreed = true
	mustClub(t, w, 1).Enqueue(m)
	e := newTestEngine(t, w, alwaysMin())

	resp, err := e.NegotiateContract(signingOffer(203, 1))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Outcome != ContractAccepted || mustPlayer(t, w, 203).ClubID != 1 {
		t.Fatalf("response = %+v, want a completed signing", resp)
	}
}

func renewal(length int, wage int64) ContractOffer {
	return ContractOffer{PlayerID: 103, ClubID: 1, Length: length, Wage: wage, Renewal: true}
}

func TestRenewalAcceptedPurgesClauseActivations(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	club := mustClub(t, w, 1)
	player := mustPlayer(t, w, 103)
	player.ReleaseClause = 2_000_000
	clause := newTransfer(2, 1, 103, 2_000_000, 2)
	clause.FeeAgreed = true
	clause.ActivatedReleaseClause = true
	club.Enqueue(clause)
	bid := newTransfer(2, 1, 104, 900_000, 3)
	club.Enqueue(bid)
	wages := club.WageBudget

	// (7-(2+1))*100/(25/20) = 320 keeps the offered length.
	resp, err := e.NegotiateContract(renewal(1, 20_000))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Outcome != ContractAccepted {
		t.Fatalf("outcome = %v, want accepted", resp.Outcome)
	}
	if player.ExpiryYear != testYear+3 || player.Wage != 20_000 {
		t.Errorf("player after renewal = %+v", player)
	}
	if club.WageBudget != wages-10_000 {
		t.Errorf("wage budget = %d, want %d", club.WageBudget, wages-10_000)
	}
	if club.FindTransfer(clause.ID) != nil {
		t.Error("release clause activation survived the renewal")
	}
	if club.FindTransfer(bid.ID) == nil {
		t.Error("unrelated bid was purged")
	}
}

func TestRenewalGates(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())

	if _, err := e.NegotiateContract(ContractOffer{PlayerID: 203, ClubID: 1, Length: 1, Wage: 20_000, Renewal: true}); !errors.Is(err, ErrNotOwner) {
		t.Errorf("renewing another club's player = %v, want ErrNotOwner", err)
	}
	if _, err := e.NegotiateContract(renewal(1, 20_000_000)); !errors.Is(err, ErrInsufficientWageBudget) {
		t.Errorf("unaffordable raise = %v, want ErrInsufficientWageBudget", err)
	}
}

func TestContractCounterThenConclude(t *testing.T) {
	for _, accept := range []bool{true, false} {
		w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
		e := newTestEngine(t, w, alwaysMin())
		player := mustPlayer(t, w, 103)

		// (7-(2+2))*100/(25/20) = 240 asks for one year less.
		resp, err := e.NegotiateContract(renewal(2, 20_000))
		if err != nil {
			t.Fatal(err)
		}
		if resp.Outcome != ContractCountered || resp.Length != 1 {
			t.Fatalf("response = %+v, want a one-year counter", resp)
		}
		if pending, ok := e.PendingCounter(1, 103); !ok || pending.Length != 1 {
			t.Fatalf("pending counter = %+v, %v", pending, ok)
		}

		final, err := e.ConcludeContract(1, 103, accept)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := e.PendingCounter(1, 103); ok {
			t.Error("counter still pending after conclusion")
		}
		if accept {
			if final.Outcome != ContractAccepted || player.ExpiryYear != testYear+3 {
				t.Errorf("accepted counter: response %+v, expiry %d", final, player.ExpiryYear)
			}
			continue
		}
		if final.Outcome != ContractRejected || player.ExpiryYear != testYear+2 {
			t.Errorf("walked away: response %+v, expiry %d", final, player.ExpiryYear)
		}
		if _, err := e.NegotiateContract(renewal(1, 20_000)); !errors.Is(err, ErrCooldownActive) {
			t.Errorf("offer after walking away = %v, want ErrCooldownActive", err)
		}
	}
}

func TestConcludeKeepsCounterWhenGateFails(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	club := mustClub(t, w, 1)
	player := mustPlayer(t, w, 103)

	resp, err := e.NegotiateContract(renewal(2, 20_000))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Outcome != ContractCountered {
		t.Fatalf("outcome = %v, want countered", resp.Outcome)
	}

	budget := club.WageBudget
	club.WageBudget = 0
	if _, err := e.ConcludeContract(1, 103, true); !errors.Is(err, ErrInsufficientWageBudget) {
		t.Fatalf("ConcludeContract with no wage budget = %v, want ErrInsufficientWageBudget", err)
	}
	if _, ok := e.PendingCounter(1, 103); !ok {
		t.Fatal("counter dropped after a failed gate")
	}
	if w.Cooldowns.Active(103, 1, ContractNegotiating) {
		t.Fatal("failed gate should not start a cooldown")
	}

	club.WageBudget = budget
	final, err := e.ConcludeContract(1, 103, true)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if final.Outcome != ContractAccepted || player.ExpiryYear != testYear+3 {
		t.Errorf("retry: response %+v, expiry %d", final, player.ExpiryYear)
	}
	if _, ok := e.PendingCounter(1, 103); ok {
		t.Error("counter still pending after acceptance")
	}
}

func TestConcludeWithoutCounter(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true))
	e := newTestEngine(t, w, alwaysMin())
	if _, err := e.ConcludeContract(1, 103, true); !errors.Is(err, ErrNoPendingCounter) {
		t.Fatalf("ConcludeContract = %v, want ErrNoPendingCounter", err)
	}
}

func TestContractCounterLapsesWithCycle(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	if _, err := e.NegotiateContract(renewal(2, 20_000)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AdvanceCycle(); err != nil {
		t.Fatal(err)
	}
	if _, err := e.ConcludeContract(1, 103, true); !errors.Is(err, ErrNoPendingCounter) {
		t.Fatalf("ConcludeContract after a cycle = %v, want ErrNoPendingCounter", err)
	}
}

func TestInsultingWageEndsTalks(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true))
	e := newTestEngine(t, w, alwaysMin())

	resp, err := e.NegotiateContract(renewal(1, 4_000))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Outcome != ContractRejected {
		t.Fatalf("outcome = %v, want rejected", resp.Outcome)
	}
	if !w.Cooldowns.Active(103, 1, ContractNegotiating) {
		t.Error("rejection left no contract cooldown")
	}
}

func TestSetTransferStatus(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())

	p, err := e.SetTransferStatus(1, 103, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if !p.TransferListed || p.TransfersBlocked {
		t.Errorf("listed player = %+v", p)
	}
	if p, _ = e.SetTransferStatus(1, 103, true, true); p.TransferListed || !p.TransfersBlocked {
		t.Errorf("blocked player = %+v, want blocked and unlisted", p)
	}
	if _, err := e.SetTransferStatus(1, 203, true, false); !errors.Is(err, ErrNotOwner) {
		t.Errorf("other club's player = %v, want ErrNotOwner", err)
	}
}

func TestHumanActionsWaitForIdle(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	e := newTestEngine(t, w, alwaysMin())
	e.phase = PhaseBidding

	if _, err := e.OpenBid(1, 203, 1_000_000); !errors.Is(err, ErrCycleInProgress) {
		t.Errorf("OpenBid = %v", err)
	}
	if err := e.RespondToTransfer(1, "x", ActionAccept, 0); !errors.Is(err, ErrCycleInProgress) {
		t.Errorf("RespondToTransfer = %v", err)
	}
	if _, err := e.NegotiateContract(renewal(1, 20_000)); !errors.Is(err, ErrCycleInProgress) {
		t.Errorf("NegotiateContract = %v", err)
	}
	if _, err := e.SetTransferStatus(1, 103, true, false); !errors.Is(err, ErrCycleInProgress) {
		t.Errorf("SetTransferStatus = %v", err)
	}
}

func TestParseAction(t *testing.T) {
	for s, want := range map[string]Action{"accept": ActionAccept, "reject": ActionReject, "counter": ActionCounter} {
		if got, err := ParseAction(s); err != nil || got != want {
			t.Errorf("ParseAction(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseAction("shrug"); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("ParseAction(shrug) = %v", err)
	}
}
