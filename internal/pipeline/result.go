package pipeline

import (
	"encoding/json"
	"net/http"

	"rockie-classroom-api/pkg/lambda"
)

// Result is a terminal pipeline state: a status code and a body. The body is
// always serialized as a string-encoded JSON document; the source system's
// raw-object variant is deliberately gone.
type Result struct {
	Status int
	Body   interface{}
}

// ErrorBody is the uniform error payload.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the uniform confirmation payload for operations that return
// no entity.
type MessageBody struct {
	Message string `json:"message"`
}

func errorResult(status int, message string) *Result {
	return &Result{
		Status: status,
		Body:   ErrorBody{Error: message},
	}
}

// Response encodes the result as a generic serverless response.
func (r *Result) Response() *lambda.Response {
	body, err := json.Marshal(r.Body)
	if err != nil {
		// A non-serializable success payload is a programming error; degrade
		// to a generic 500 rather than leaking a half-written body.
		return &lambda.Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(`{"error": "Internal server error"}`),
		}
	}
	return &lambda.Response{
		StatusCode: r.Status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}
