package set_rate_active

// SetActiveRequest HTTP request model
type SetActiveRequest struct {
	Active *bool `json:"active"`
}
