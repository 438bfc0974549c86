package domain

// ResultStatus discriminates the closed set of analysis outcomes.
type ResultStatus string

const (
	// ResultSuccess means the service analysed the URL; Signals is set.
	ResultSuccess ResultStatus = "SUCCESS"
	// ResultServiceFailure means the service was reached but reported a failure.
	ResultServiceFailure ResultStatus = "SERVICE_FAILURE"
	// ResultTransportFailure means the service could not be reached, answered
	// garbage, timed out, or the pass was superseded.
	ResultTransportFailure ResultStatus = "TRANSPORT_FAILURE"
)

// AnalysisResult is the outcome of one analysis pass. Build it with Success,
// ServiceFailure or TransportFailure.
type AnalysisResult struct {
	Status ResultStatus
	// Signals is only set for ResultSuccess.
	Signals *SignalSet
	// Message describes a failure; empty on success.
	Message string
	// Generation is the orchestrator pass that produced this result.
	Generation uint64
}

// Success builds a successful result. The signal set is copied.
func Success(generation uint64, signals SignalSet) AnalysisResult {
	s := signals.Clone()

	return AnalysisResult{Status: ResultSuccess, Signals: &s, Generation: generation}
}

// ServiceFailure builds a result for a service reported failure.
func ServiceFailure(generation uint64, message string) AnalysisResult {
	return AnalysisResult{Status: ResultServiceFailure, Message: message, Generation: generation}
}

// TransportFailure builds a result for an unreachable or misbehaving service.
func TransportFailure(generation uint64, message string) AnalysisResult {
	return AnalysisResult{Status: ResultTransportFailure, Message: message, Generation: generation}
}

// OK reports whether the result carries signals.
func (r AnalysisResult) OK() bool { return r.Status == ResultSuccess && r.Signals != nil }

// SourceResult is the outcome of a page source retrieval. It shares the
// status vocabulary of AnalysisResult.
type SourceResult struct {
	Status  ResultStatus
	HTML    string
	Message string
}
