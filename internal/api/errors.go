package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FetchError is any remote call failure: a non-success HTTP status or
// a network-level error. Status is zero when no response was received.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("fetch failed: HTTP %d: %s", e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("fetch failed: HTTP %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("fetch failed: %v", e.Err)
	default:
		return "fetch failed"
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AuthError is a rejected or malformed login/register exchange.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// errorBody is the shape backend error responses come in. Some
// endpoints use "error", others "message".
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newFetchError(resp *http.Response) *FetchError {
	fe := &FetchError{Status: resp.StatusCode}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fe
	}

	var body errorBody
	if err := json.Unmarshal(payload, &body); err == nil {
		switch {
		case body.Error != "":
			fe.Message = body.Error
		case body.Message != "":
			fe.Message = body.Message
		}
	}
	return fe
}
