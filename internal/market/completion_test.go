package market

import "testing"

func TestCompleteTransferSettlesExactly(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false), defaultSpec(3, false))
	seller := mustClub(t, w, 1)
	buyer := mustClub(t, w, 2)
	player := mustPlayer(t, w, 103)
	player.ReleaseClause = 3_000_000
	mustClub(t, w, 3).Enqueue(newTransfer(3, 1, 103, 800_000, 3))
	seller.Enqueue(newTransfer(3, 1, 104, 800_000, 3))

	sellerBefore, buyerBefore := seller.TransferBudget, buyer.TransferBudget
	sellerWages, buyerWages := seller.WageBudget, buyer.WageBudget
	const fee = 1_234_000

	// terms roll, new wage, contract length
	e := newTestEngine(t, w, &stubRandom{ints: []int{1, 15_000, 4}})
	if !e.completeTransfer(buyer, seller, player, fee, false) {
		t.Fatal("completion failed")
	}

	if seller.TransferBudget != sellerBefore+fee {
		t.Errorf("seller budget = %d, want %d", seller.TransferBudget, sellerBefore+fee)
	}
	if buyer.TransferBudget != buyerBefore-fee {
		t.Errorf("buyer budget = %d, want %d", buyer.TransferBudget, buyerBefore-fee)
	}
	if seller.WageBudget != sellerWages+10_000 {
		t.Errorf("seller wage budget = %d, want %d", seller.WageBudget, sellerWages+10_000)
	}
	if buyer.WageBudget != buyerWages-15_000 {
		t.Errorf("buyer wage budget = %d, want %d", buyer.WageBudget, buyerWages-15_000)
	}
	if player.ClubID != 2 || player.Wage != 15_000 || player.ExpiryYear != testYear+4 || player.ReleaseClause != 0 {
		t.Errorf("player after move = %+v", player)
	}
	if seller.SquadSize() != 17 || buyer.SquadSize() != 19 {
		t.Errorf("squad sizes = %d / %d, want 17 / 19", seller.SquadSize(), buyer.SquadSize())
	}
	if len(messagesFor(mustClub(t, w, 3), 103)) != 0 {
		t.Error("other negotiations for the player survived")
	}
	if len(messagesFor(seller, 104)) != 1 {
		t.Error("unrelated negotiation was purged")
	}
	want := TransferHistoryRecord{PlayerID: 103, SellerClubID: 1, BuyerClubID: 2, Fee: fee, Year: testYear}
	if len(w.History) != 1 || w.History[0] != want {
		t.Errorf("history = %+v, want [%+v]", w.History, want)
	}
	if !w.Cooldowns.Active(103, AllClubs, TransferNegotiating) {
		t.Error("no wildcard cooldown after completion")
	}
	if len(seller.Messages) != 1 {
		t.Errorf("seller notifications = %v", seller.Messages)
	}
}

func TestCompleteTransferPersonalTermsFail(t *testing.T) {
	w := newTestWorld(t, defaultSpec(1, true), defaultSpec(2, false))
	seller := mustClub(t, w, 1)
	buyer := mustClub(t, w, 2)
	player := mustPlayer(t, w, 103)
	sellerBefore, buyerBefore := seller.TransferBudget, buyer.TransferBudget

	e := newTestEngine(t, w, &stubRandom{ints: []int{100}})
	if e.completeTransfer(buyer, seller, player, 1_000_000, false) {
		t.Fatal("completion succeeded above the personal terms chance")
	}
	if player.ClubID != 1 || seller.TransferBudget != sellerBefore || buyer.TransferBudget != buyerBefore {
		t.Error("failed completion changed state")
	}
	if len(w.History) != 0 {
		t.Error("failed completion wrote history")
	}
	if len(seller.Messages) != 1 {
		t.Errorf("seller notifications = %v, want one", seller.Messages)
	}
}

func TestPersonalTermsChance(t *testing.T) {
	e := newTestEngine(t, NewWorld(testYear), alwaysMin())
	tests := []struct {
		wage, budget int64
		want         int
	}{
		{0, 1_000_000, 95},
		{500_000, 1_000_000, 50},
		{1_000_000, 1_000_000, 10},
		{2_000_000, 1_000_000, 10},
		{10_000, 0, 10},
	}
	for _, tt := range tests {
		got := e.personalTermsChance(&Club{WageBudget: tt.budget}, &Player{Wage: tt.wage})
		if got != tt.want {
			t.Errorf("chance(wage %d, budget %d) = %d, want %d", tt.wage, tt.budget, got, tt.want)
		}
	}
}

func TestSigningLengthByAge(t *testing.T) {
	tests := []struct {
		age    int
		lo, hi int
	}{
		{19, 3, 5},
		{23, 3, 5},
		{24, 2, 4},
		{29, 2, 4},
		{30, 1, 2},
	}
	for _, tt := range tests {
		lo := newTestEngine(t, NewWorld(testYear), alwaysMin()).signingLength(&Player{Age: tt.age})
		hi := newTestEngine(t, NewWorld(testYear), alwaysMax()).signingLength(&Player{Age: tt.age})
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("age %d: range [%d, %d], want [%d, %d]", tt.age, lo, hi, tt.lo, tt.hi)
		}
	}
}
