package api

import "errors"

// Result is the outcome of a mutating call. The caller decides how to show it.
type Result struct {
	Message string
	Err     error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

func success(msg string) Result {
	return Result{Message: msg}
}

func failure(msg string, err error) Result {
	return Result{Message: msg, Err: err}
}

// Text is the message to show the user.
func (r Result) Text() string {
	if r.Err == nil {
		return r.Message
	}
	var apiErr *APIError
	if errors.As(r.Err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return r.Message
}
