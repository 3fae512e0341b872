package entities

import "testing"

func weights(table map[string]uint64) func(string) uint64 {
	return func(accountID string) uint64 {
		return table[accountID]
	}
}

func TestTallyVotesSumsWeightsPerBallot(t *testing.T) {
	votes := Votes{
		Accepting:   []string{"alice"},
		Rejecting:   []string{"bob"},
		Indifferent: []string{"carol"},
	}
	result := TallyVotes(votes, weights(map[string]uint64{
		"alice": 600,
		"bob":   300,
		"carol": 100,
	}))
	if result.Participated != 1000 {
		t.Fatalf("expected participated 1000, got %d", result.Participated)
	}
	if result.Favorable != 600 {
		t.Fatalf("expected favorable 600, got %d", result.Favorable)
	}
}

func TestTallyVotesUnregisteredVoterWeighsZero(t *testing.T) {
	votes := Votes{
		Accepting: []string{"alice", "ghost"},
	}
	result := TallyVotes(votes, weights(map[string]uint64{"alice": 500}))
	if result.Participated != 500 || result.Favorable != 500 {
		t.Fatalf("expected 500/500, got %d/%d", result.Participated, result.Favorable)
	}
}

func TestTallyVotesRepeatedBallotCountsAgain(t *testing.T) {
	var votes Votes
	if !votes.Record("alice", VoteChoiceAccept) {
		t.Fatal("record failed")
	}
	if !votes.Record("alice", VoteChoiceAccept) {
		t.Fatal("record failed")
	}
	result := TallyVotes(votes, weights(map[string]uint64{"alice": 600}))
	if result.Favorable != 1200 {
		t.Fatalf("expected repeated ballot to double the weight, got %d", result.Favorable)
	}
}

func TestVotesRecordRejectsUnknownChoice(t *testing.T) {
	var votes Votes
	if votes.Record("alice", VoteChoice("maybe")) {
		t.Fatal("expected unknown choice to be rejected")
	}
}

func TestAsSaleSwitchesOnKind(t *testing.T) {
	sale := Motion{
		MotionID: "m-1",
		Kind:     MotionKindSale,
		Sale:     &SaleDetails{ReceiverID: "alice", SalePrice: 100},
	}
	details, ok := sale.AsSale()
	if !ok || details.ReceiverID != "alice" {
		t.Fatalf("expected sale details, got ok=%v details=%+v", ok, details)
	}

	generic := Motion{
		MotionID: "m-2",
		Kind:     MotionKindGeneric,
		Generic:  &GenericDetails{InitiatorID: "bob", Description: "repaint the hull"},
	}
	if _, ok := generic.AsSale(); ok {
		t.Fatal("generic motion must not expose sale details")
	}
}

func TestSettlementStatePredicates(t *testing.T) {
	var state SettlementState
	if state.Sold() || state.SaleInProgress() {
		t.Fatal("empty state must be neither sold nor in progress")
	}

	amount := uint64(101)
	motionID := "m-1"
	state = SettlementState{CashoutAmount: &amount, SaleInProgressID: &motionID}
	if !state.Sold() || !state.SaleInProgress() {
		t.Fatal("committed state must be sold and in progress")
	}

	state = SettlementState{CashoutAmount: &amount}
	if !state.Sold() || state.SaleInProgress() {
		t.Fatal("settled state must be sold with no pending sale")
	}
}
