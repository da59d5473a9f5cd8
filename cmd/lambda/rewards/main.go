package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"rockie-classroom-api/internal/config"
	"rockie-classroom-api/pkg/lambda"
	"rockie-classroom-api/pkg/server"
)

var container *server.Container

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	cfg = config.AdaptConfigForServerless(cfg)

	container, err = server.NewContainer(context.Background(), cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req := lambda.FromAPIGateway(event)
	h := container.Rewards

	var resp *lambda.Response
	var err error

	switch {
	case req.Method == "POST":
		resp, err = h.HandleCreate(ctx, req)
	case req.Method == "GET" && req.PathParam("id") != "":
		resp, err = h.HandleGet(ctx, req)
	case req.Method == "GET":
		resp, err = h.HandleList(ctx, req)
	case req.Method == "PUT" && req.PathParam("id") != "":
		resp, err = h.HandleUpdate(ctx, req)
	case req.Method == "DELETE" && req.PathParam("id") != "":
		resp, err = h.HandleDelete(ctx, req)
	default:
		resp = &lambda.Response{
			StatusCode: 404,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       []byte(`{"error": "Not found"}`),
		}
	}

	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	return resp.ToAPIGateway(), nil
}

func main() {
	awslambda.Start(handler)
}
