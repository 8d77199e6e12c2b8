package api

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// SkippedDocument describes a stored document that failed to decode.
type SkippedDocument struct {
	ID     string `json:"id"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

type ListRequest struct{}

type ListResponse[T any] struct {
	Items   []T               `json:"items"`
	Skipped []SkippedDocument `json:"skipped,omitempty"`
}

type CreateRequest struct {
	Fields map[string]any `json:"fields"`
}

type CreateResponse[T any] struct {
	Item T `json:"item"`
}

type UpdateRequest struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type UpdateResponse[T any] struct {
	Item T `json:"item"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}

type DeleteResponse struct{}

type WatchRequest struct{}

type WatchResponse[T any] struct {
	Items   []T               `json:"items"`
	Skipped []SkippedDocument `json:"skipped,omitempty"`
}

type CalculateRequest struct {
	Bill   float64 `json:"bill"`
	Tip    float64 `json:"tip"`
	People int     `json:"people"`
}

type CalculateResponse struct {
	TipAmount       float64 `json:"tipAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	PerPersonAmount float64 `json:"perPersonAmount"`
}

type SaveCalculationRequest struct {
	Name   string  `json:"name"`
	Bill   float64 `json:"bill"`
	Tip    float64 `json:"tip"`
	People int     `json:"people"`
}

// Calculation mirrors models.SavedCalculation on the wire.
type Calculation struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Bill            float64 `json:"bill"`
	Tip             float64 `json:"tip"`
	People          int     `json:"people"`
	TipAmount       float64 `json:"tipAmount"`
	TotalAmount     float64 `json:"totalAmount"`
	PerPersonAmount float64 `json:"perPersonAmount"`
	CreatedAt       string  `json:"createdAt"`
}

type SaveCalculationResponse struct {
	Calculation *Calculation `json:"calculation"`
}

type ListCalculationsRequest struct{}

type ListCalculationsResponse struct {
	Calculations []*Calculation `json:"calculations"`
}

type DeleteCalculationRequest struct {
	ID string `json:"id"`
}

type DeleteCalculationResponse struct{}

type GetHeaderRequest struct{}

type GetHeaderResponse struct {
	AppName     string `json:"appName"`
	Tagline     string `json:"tagline"`
	DisplayName string `json:"displayName,omitempty"`
}
