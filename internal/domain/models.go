package domain

// Measurement is one timed fetch of an identifier.
type Measurement struct {
	Identifier string  `json:"identifier"`
	Seconds    float64 `json:"seconds"`     // rounded to 3 decimals
	StatusCode int     `json:"status_code"` // informational only
}

// PageRecord is what gets persisted per page.
type PageRecord struct {
	Page        string `json:"page"`
	LoadingTime string `json:"loading_time"` // formatted snapshot, not a live value
}
