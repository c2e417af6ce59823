package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashEntry is the cash footprint of one posted journal entry: the net change
// across cash accounts plus what kind of counterparty accounts the entry
// touched.
type CashEntry struct {
	EntryID             uuid.UUID       `json:"entryId"`
	EntryDate           time.Time       `json:"entryDate"`
	Description         string          `json:"description"`
	CashChange          decimal.Decimal `json:"cashChange"`
	TouchesRevExpense   bool            `json:"-"`
	TouchesNonCashAsset bool            `json:"-"`
}

// Activity buckets for the statement.
const (
	ActivityOperating = "operating"
	ActivityInvesting = "investing"
	ActivityFinancing = "financing"
)

// Classify places the entry into an activity bucket. Revenue or expense
// counterparties win, then non-cash assets, then everything else is treated
// as financing.
func (e CashEntry) Classify() string {
	switch {
	case e.TouchesRevExpense:
		return ActivityOperating
	case e.TouchesNonCashAsset:
		return ActivityInvesting
	default:
		return ActivityFinancing
	}
}

// CashFlowItem is one line of a cash flow section.
type CashFlowItem struct {
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CashFlowSection groups items for one activity bucket.
type CashFlowSection struct {
	Label string          `json:"label"`
	Items []CashFlowItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CashFlow is the structured response for the cash flow statement.
type CashFlow struct {
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Operating   CashFlowSection `json:"operating"`
	Investing   CashFlowSection `json:"investing"`
	Financing   CashFlowSection `json:"financing"`
	NetChange   decimal.Decimal `json:"netChange"`
	OpeningCash decimal.Decimal `json:"openingCash"`
	ClosingCash decimal.Decimal `json:"closingCash"`
}

// BuildCashFlow classifies cash-touching entries into operating, investing,
// and financing activity and reconciles opening to closing cash.
func BuildCashFlow(entries []CashEntry, openingCash decimal.Decimal, start, end time.Time) CashFlow {
	sections := map[string]*CashFlowSection{
		ActivityOperating: {Label: "Operating Activities", Total: decimal.Zero},
		ActivityInvesting: {Label: "Investing Activities", Total: decimal.Zero},
		ActivityFinancing: {Label: "Financing Activities", Total: decimal.Zero},
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EntryDate.Before(entries[j].EntryDate) })

	net := decimal.Zero
	for _, e := range entries {
		if e.CashChange.IsZero() {
			continue
		}
		section := sections[e.Classify()]
		section.Items = append(section.Items, CashFlowItem{EntryDate: e.EntryDate, Description: e.Description, Amount: e.CashChange})
		section.Total = section.Total.Add(e.CashChange)
		net = net.Add(e.CashChange)
	}

	return CashFlow{
		StartDate:   start,
		EndDate:     end,
		Operating:   *sections[ActivityOperating],
		Investing:   *sections[ActivityInvesting],
		Financing:   *sections[ActivityFinancing],
		NetChange:   net,
		OpeningCash: openingCash,
		ClosingCash: openingCash.Add(net),
	}
}
