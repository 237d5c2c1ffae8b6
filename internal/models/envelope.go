package models

import "encoding/json"

// Envelope is the wrapper the backend puts around most responses.
type Envelope[T any] struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Data      T      `json:"data"`
	TimeStamp string `json:"timeStamp"`
}

// ErrorBody is the backend error response.
type ErrorBody struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	TimeStamp string `json:"timeStamp"`
}

// StatusUpdate is the body of a status change call.
type StatusUpdate struct {
	Status string `json:"status"`
}

// DecodeList decodes either a bare JSON array or an Envelope holding one.
func DecodeList[T any](body []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var env Envelope[[]T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
