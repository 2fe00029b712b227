package models

// ResolutionStatus tells the transport how to report a result.
type ResolutionStatus string

const (
	StatusOK               ResolutionStatus = "ok"
	StatusValidationFailed ResolutionStatus = "validation_failed"
	StatusServiceFailed    ResolutionStatus = "service_failed"
)

// ResolutionResult is the single answer produced for a query.
type ResolutionResult struct {
	Answer    string           `json:"answer"`
	SourceURL string           `json:"sourceUrl,omitempty"`
	Resolver  string           `json:"resolver"`
	Status    ResolutionStatus `json:"status"`
	QueryID   string           `json:"queryId"`
}

func (r *ResolutionResult) OK() bool {
	return r.Status == StatusOK
}
