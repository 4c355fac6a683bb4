package service

// ValidationError carries the full list of user-facing messages for the phone
// fields that failed validation. Nothing is written when it is returned.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string { return "contact fields failed validation" }

// ReadError marks a failure while loading the current record, so the handler
// can report which step of a replace failed.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string { return "read current contact data: " + e.Err.Error() }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError marks a failure while persisting the new record.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "write contact data: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
