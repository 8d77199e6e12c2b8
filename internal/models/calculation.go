package models

// SavedCalculation is a bill split a user chose to keep.
//
// TipAmount, TotalAmount and PerPersonAmount are derived when the
// calculation is made and stored as-is; they are not recomputed on read.
type SavedCalculation struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`

	// Bill is the pre-tip bill amount.
	Bill float64 `json:"bill"`

	// Tip is the tip percentage (e.g. 18 for 18%).
	Tip float64 `json:"tip"`

	// People is the number of people splitting the total.
	People int `json:"people"`

	TipAmount       float64 `json:"tipAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	PerPersonAmount float64 `json:"perPersonAmount"`

	// CreatedAt is an RFC 3339 timestamp.
	CreatedAt string `json:"createdAt"`
}
