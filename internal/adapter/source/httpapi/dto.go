package httpapi

// FriendsResponse is the body of GET /friends
type FriendsResponse struct {
	Friends []FriendDTO `json:"friends"`
}

type FriendDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// CardsResponse is the body of GET /cards
type CardsResponse struct {
	Cards []CardDTO `json:"cards"`
}

type CardDTO struct {
	ID         string `json:"id"`
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
}

// TransfersResponse is the body of GET /transfers
type TransfersResponse struct {
	Transfers []TransferDTO `json:"transfers"`
}

// TransferDTO carries amounts as decimal strings to avoid float rounding
type TransferDTO struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"` // RFC 3339
	From        string `json:"from"`
	To          string `json:"to"`
	Direction   string `json:"direction"` // "out" or "in"
}

// MeResponse is the body of GET /me
type MeResponse struct {
	Username string `json:"username"`
	Plan     string `json:"plan"` // "premium" or "basic"
}
