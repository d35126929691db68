package service

// ValidationError represents user input issues. Controllers translate it to
// a client error; it is never logged as a server fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError covers both a missing resource and one the caller may not
// see. The two collapse deliberately so existence is not leaked.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// UnauthorizedError means the caller presented no or invalid credentials.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}
