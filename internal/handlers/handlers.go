// Package handlers exposes one handler per entity family. Every operation is
// expressed as a pipeline invocation, so the auth, identity, validation and
// ownership stages run in the same order everywhere.
//
// Handlers come in two flavors per operation: a framework-agnostic
// Handle* method operating on lambda.Request for the serverless entry
// points, and a thin gin adapter for the local development server. The gin
// adapters delegate to the Handle* methods so there is a single
// implementation of each operation.
package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"rockie-classroom-api/pkg/lambda"
)

// ginRequest converts a gin request into the generic serverless request.
func ginRequest(c *gin.Context) *lambda.Request {
	headers := map[string]string{}
	for name := range c.Request.Header {
		headers[name] = c.GetHeader(name)
	}

	queryParams := map[string]string{}
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			queryParams[name] = values[0]
		}
	}

	pathParams := map[string]string{}
	for _, param := range c.Params {
		pathParams[param.Key] = param.Value
	}

	body, _ := io.ReadAll(c.Request.Body)

	return &lambda.Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     headers,
		QueryParams: queryParams,
		Body:        body,
		PathParams:  pathParams,
	}
}

// writeResponse writes a generic serverless response through gin.
func writeResponse(c *gin.Context, resp *lambda.Response) {
	contentType := resp.Headers["Content-Type"]
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

// errMissingID reports an absent path identifier. Surfaced from the body
// validation stage so it cannot run before authorization.
func errMissingID(name string) error {
	return fmt.Errorf("missing %s in path", name)
}
