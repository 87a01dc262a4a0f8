package dto

// TransactionInput is one statement row from the ingestion client.
// Dates are ISO-8601; amounts are signed, positive means credit.
type TransactionInput struct {
	Date       string  `json:"date" validate:"required"`
	Narration  string  `json:"narration" validate:"required"`
	Amount     float64 `json:"amount" validate:"required"`
	AccountRef string  `json:"account_ref"`
}

type IngestTransactionsRequest struct {
	Transactions []TransactionInput `json:"transactions" validate:"required,min=1"`
}

type TransactionResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Narration     string  `json:"narration"`
	Amount        float64 `json:"amount"`
	AccountRef    string  `json:"account_ref,omitempty"`
	Category      string  `json:"category"`
	Subcategory   string  `json:"subcategory"`
	Merchant      string  `json:"merchant,omitempty"`
	MatchKind     string  `json:"match_kind"`
	CreatedAt     string  `json:"created_at"`
}

type IngestTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

type ReclassifyResponse struct {
	Reclassified int `json:"reclassified"`
	Changed      int `json:"changed"`
}

type CatalogReloadResponse struct {
	Merchants int `json:"merchants"`
}
