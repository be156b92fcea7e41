package models

// DefaultPayday is the payday-of-month applied when settings are absent.
const DefaultPayday = 25

// Settings holds the user-level knobs of the budgeting engine.
// AutoApproveRule and AutoApproveHistory let the user trust those match types
// so that data-complete suggestions commit without a manual glance.
type Settings struct {
	Payday             int  `json:"payday"`
	AutoApproveRule    bool `json:"autoApproveRule,omitempty"`
	AutoApproveHistory bool `json:"autoApproveHistory,omitempty"`
}

// DefaultSettings returns the settings applied when none are persisted.
func DefaultSettings() Settings {
	return Settings{Payday: DefaultPayday}
}

// User is an income earner in the household.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Account is a bank account owned by the household.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId,omitempty"`
}
