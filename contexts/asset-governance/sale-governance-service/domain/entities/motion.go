package entities

import "time"

type VoteChoice string

const (
	VoteChoiceAccept      VoteChoice = "accept"
	VoteChoiceReject      VoteChoice = "reject"
	VoteChoiceIndifferent VoteChoice = "indifferent"
)

// Votes holds the three ballot sets of a motion. Ballots are appended exactly
// as cast; repeated casting by the same account is recorded again and inflates
// the tally.
type Votes struct {
	Accepting   []string `json:"accepting"`
	Rejecting   []string `json:"rejecting"`
	Indifferent []string `json:"indifferent"`
}

func (v *Votes) Record(accountID string, choice VoteChoice) bool {
	switch choice {
	case VoteChoiceAccept:
		v.Accepting = append(v.Accepting, accountID)
	case VoteChoiceReject:
		v.Rejecting = append(v.Rejecting, accountID)
	case VoteChoiceIndifferent:
		v.Indifferent = append(v.Indifferent, accountID)
	default:
		return false
	}
	return true
}

type MotionKind string

const (
	MotionKindSale    MotionKind = "sale"
	MotionKindGeneric MotionKind = "generic"
)

type SaleDetails struct {
	ReceiverID string
	SalePrice  uint64
}

type GenericDetails struct {
	InitiatorID string
	Description string
}

// Motion is a tagged union: exactly one of Sale or Generic is set, selected by
// Kind. Every consumption site switches over Kind; an unknown kind is a
// programming error, never a silent fallthrough.
type Motion struct {
	MotionID  string
	Kind      MotionKind
	Sale      *SaleDetails
	Generic   *GenericDetails
	Votes     Votes
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Motion) AsSale() (SaleDetails, bool) {
	switch m.Kind {
	case MotionKindSale:
		if m.Sale == nil {
			return SaleDetails{}, false
		}
		return *m.Sale, true
	case MotionKindGeneric:
		return SaleDetails{}, false
	default:
		return SaleDetails{}, false
	}
}

// SettlementState is the contract-level settlement machine. CashoutAmount set
// means the asset is permanently gone and cashout is enabled; it is never
// cleared once a sale completes. SaleInProgressID is set only while the asset
// hand-off is pending.
type SettlementState struct {
	CashoutAmount    *uint64
	SaleInProgressID *string
}

func (s SettlementState) Sold() bool {
	return s.CashoutAmount != nil
}

func (s SettlementState) SaleInProgress() bool {
	return s.SaleInProgressID != nil
}

type TallyResult struct {
	Participated uint64
	Favorable    uint64
}

// TallyVotes resolves vote weight lazily against the current ledger via
// weightOf. Unregistered or zero-balance accounts weigh zero and never error
// here. The result is a pure sum over the recorded ballots.
func TallyVotes(votes Votes, weightOf func(accountID string) uint64) TallyResult {
	var result TallyResult
	for _, accountID := range votes.Accepting {
		weight := weightOf(accountID)
		result.Participated += weight
		result.Favorable += weight
	}
	for _, accountID := range votes.Rejecting {
		result.Participated += weightOf(accountID)
	}
	for _, accountID := range votes.Indifferent {
		result.Participated += weightOf(accountID)
	}
	return result
}
