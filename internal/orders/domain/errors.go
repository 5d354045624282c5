package domain

// ValidationError marks input the caller can correct. HTTP adapters map it
// to a 400-class response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
