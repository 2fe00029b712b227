package resolvecustomerquery

type Input struct {
	Message string `json:"message"`
}

type Output struct {
	Answer    string `json:"answer"`
	Resolver  string `json:"resolver"`
	SourceURL string `json:"sourceUrl"`
	Status    string `json:"status"`
	QueryID   string `json:"queryId"`
}
