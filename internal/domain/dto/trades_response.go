package dto

// TradeRow is one normalized trade as exposed by the API.
//
// Field names match the export schema so API consumers and CSV consumers
// see the same vocabulary.
type TradeRow struct {
	Date     string  `json:"date" example:"11-06-2025"`
	Time     string  `json:"hora" example:"11:00:47,851"`
	Ticker   string  `json:"ativo" example:"CBIO"`
	Quantity int64   `json:"qtde" example:"100"`
	Price    float64 `json:"preco" example:"85.5"`
	Volume   float64 `json:"vol" example:"8550"`
	Type     string  `json:"tipo" example:"Negócio"`
	Canceled string  `json:"canc" example:"-"`
}

// TradesResponse represents the JSON structure returned by the
// GET /api/v1/trades endpoint.
type TradesResponse struct {
	Ticker string     `json:"ticker" example:"CBIO"`
	Count  int        `json:"count" example:"2"`
	Trades []TradeRow `json:"trades"`
}
