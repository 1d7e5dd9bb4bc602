package adminapi

// FeeTable is one versioned emoluments table as returned by the admin API.
type FeeTable struct {
	ID         string  `json:"id"`
	UF         string  `json:"uf"`
	Year       int     `json:"year"`
	Status     string  `json:"status"`
	SourceName *string `json:"source_name,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// FeeBracket is one fee tier inside a table. Bounds are inclusive on both ends.
type FeeBracket struct {
	ID        string  `json:"id"`
	TableID   string  `json:"table_id"`
	RangeFrom float64 `json:"range_from"`
	RangeTo   float64 `json:"range_to"`
	Amount    float64 `json:"amount"`
	SortOrder *int    `json:"sort_order,omitempty"`
	Active    bool    `json:"active"`
}

// BracketUpdate is the full payload of a bracket PUT.
type BracketUpdate struct {
	RangeFrom float64 `json:"range_from"`
	RangeTo   float64 `json:"range_to"`
	Amount    float64 `json:"amount"`
	Active    bool    `json:"active"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// EconomyQuote is one side of the fee comparison (the informed UF or the best one).
type EconomyQuote struct {
	UF         string  `json:"uf"`
	Emolumento float64 `json:"emolumento"`
}

// EconomyInput echoes the simulation parameters back from the API.
type EconomyInput struct {
	UF            string  `json:"uf"`
	PropertyValue float64 `json:"property_value"`
}

// EconomyResult is the server-computed deed economy simulation.
type EconomyResult struct {
	Input       EconomyInput `json:"input"`
	Local       EconomyQuote `json:"local"`
	Best        EconomyQuote `json:"best"`
	Economia    float64      `json:"economia"`
	EconomiaPct float64      `json:"economia_pct"`
}

// Lead is a marketing contact submitted from the landing page.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Profile string `json:"profile"`
	Message string `json:"message"`
	Consent bool   `json:"consent"`
}
