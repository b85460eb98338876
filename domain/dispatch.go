package domain

type Candidate struct {
	Model string
	Url   string
}

type AttemptError struct {
	Kind       string
	StatusCode int
	Message    string
}

// TransportResult is the outcome of one dispatch before content-shape
// validation. Ok only reflects transport-level success (2xx within timeout).
type TransportResult struct {
	Ok        bool
	Candidate Candidate
	Body      []byte
	LastError *AttemptError
}
