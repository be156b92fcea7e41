package models

// RuleMatchType selects how an import rule's keyword is compared against a
// transaction description. All comparisons are case-insensitive.
type RuleMatchType string

const (
	RuleContains   RuleMatchType = "contains"
	RuleExact      RuleMatchType = "exact"
	RuleStartsWith RuleMatchType = "starts_with"
)

// AmountSign optionally restricts a rule to inflows or outflows.
type AmountSign string

const (
	SignAny      AmountSign = ""
	SignPositive AmountSign = "positive"
	SignNegative AmountSign = "negative"
)

// ImportRule maps a description keyword to a target classification. Rules are
// evaluated in ascending Position order and the first match wins.
type ImportRule struct {
	ID         string        `json:"id"`
	Position   int           `json:"position,omitempty"`
	Keyword    string        `json:"keyword"`
	MatchType  RuleMatchType `json:"matchType,omitempty"` // contains when empty
	Sign       AmountSign    `json:"sign,omitempty"`
	AccountIDs []string      `json:"accountIds,omitempty"` // empty = all accounts

	TargetType           TransactionType `json:"targetType"`
	TargetBucketID       string          `json:"targetBucketId,omitempty"`
	TargetCategoryMainID string          `json:"targetCategoryMainId,omitempty"`
	TargetCategorySubID  string          `json:"targetCategorySubId,omitempty"`
}

// AppliesToAccount reports whether the rule is scoped to the given account.
func (r ImportRule) AppliesToAccount(accountID string) bool {
	if len(r.AccountIDs) == 0 {
		return true
	}
	for _, id := range r.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}
