package dto

type AskInsightRequest struct {
	Question string `json:"question" validate:"required"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
}

// ProtectionMeasure reports one kind of masking applied to the
// context that left the process.
type ProtectionMeasure struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type PrivacyStatus struct {
	PrivacyEnabled      bool                `json:"privacy_enabled"`
	ProtectionMeasures  []ProtectionMeasure `json:"protection_measures"`
	TotalItemsProtected int                 `json:"total_items_protected"`
}

type AskInsightResponse struct {
	Answer  string        `json:"answer"`
	Privacy PrivacyStatus `json:"privacy"`
}
