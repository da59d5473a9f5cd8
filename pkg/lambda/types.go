package lambda

import (
	"github.com/aws/aws-lambda-go/events"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// FromAPIGateway converts an API Gateway proxy event into a generic request.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
	}
}

// ToAPIGateway converts a generic response into an API Gateway proxy
// response. The body is always a string-encoded JSON document.
func (r *Response) ToAPIGateway() events.APIGatewayProxyResponse {
	headers := r.Headers
	if headers == nil {
		headers = map[string]string{"Content-Type": "application/json"}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    headers,
		Body:       string(r.Body),
	}
}

// BearerToken returns the Authorization header value. API Gateway does not
// canonicalize header case, so both spellings are checked.
func (r *Request) BearerToken() string {
	if r.Headers == nil {
		return ""
	}
	if token, ok := r.Headers["Authorization"]; ok {
		return token
	}
	return r.Headers["authorization"]
}

// PathParam returns a path parameter by name, empty when absent.
func (r *Request) PathParam(name string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(req *Request) (*Response, error)
