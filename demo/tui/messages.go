package tui

// BlogGeneratedMsg carries the outcome of a generation request.
type BlogGeneratedMsg struct {
	Result *BlogResult
	Err    error
}

// HealthMsg reports the API health check made at startup.
type HealthMsg struct {
	Err error
}
