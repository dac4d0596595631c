package leavetransaction

type TransactionResponse struct {
	ID              string `json:"id"`
	BalanceID       string `json:"balance_id"`
	TransactionType string `json:"transaction_type"`
	Days            string `json:"days"`
	Remarks         string `json:"remarks"`
	CreatedAt       string `json:"created_at"`
}
