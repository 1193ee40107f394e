package domain

// StockQuote is a scraped quote with display-ready strings
type StockQuote struct {
	Symbol        string `json:"symbol"`
	Price         string `json:"price"`          // "$" prefixed, or "N/A"
	Change        string `json:"change"`         // signed decimal
	ChangePercent string `json:"change_percent"` // "%" suffixed
	IsUp          bool   `json:"is_up"`
	Name          string `json:"name"`
}

// UnavailableQuote returns the sentinel quote used when no price could be extracted
func UnavailableQuote(symbol string) StockQuote {
	return StockQuote{
		Symbol:        symbol,
		Price:         "N/A",
		Change:        "0.00",
		ChangePercent: "0.00%",
		IsUp:          true,
		Name:          symbol,
	}
}
