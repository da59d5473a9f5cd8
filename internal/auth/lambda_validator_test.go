package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
)

type fakeInvoker struct {
	output *awslambda.InvokeOutput
	err    error
	calls  int
	input  *awslambda.InvokeInput
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error) {
	f.calls++
	f.input = params
	return f.output, f.err
}

func TestLambdaValidator_Validate(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		wantErr       bool
		wantRejection bool
		wantReason    string
	}{
		{
			name:    "valid token",
			payload: `{"statusCode": 200, "body": "Token is valid"}`,
			wantErr: false,
		},
		{
			name:          "rejected with bare string body",
			payload:       `{"statusCode": 403, "body": "token expired"}`,
			wantErr:       true,
			wantRejection: true,
			wantReason:    "token expired",
		},
		{
			name:          "rejected with object body",
			payload:       `{"statusCode": 403, "body": {"error": "token does not exist"}}`,
			wantErr:       true,
			wantRejection: true,
			wantReason:    "token does not exist",
		},
		{
			name:    "unexpected status",
			payload: `{"statusCode": 418, "body": "teapot"}`,
			wantErr: true,
		},
		{
			name:    "malformed response",
			payload: `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeInvoker{
				output: &awslambda.InvokeOutput{Payload: []byte(tt.payload)},
			}
			validator := NewLambdaValidator(client, "dev_validate_access_token", nil)

			err := validator.Validate(context.Background(), "some-token")

			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantRejection {
				var rejection *RejectionError
				if !errors.As(err, &rejection) {
					t.Fatalf("Expected RejectionError, got %v", err)
				}
				if rejection.Reason != tt.wantReason {
					t.Errorf("Expected reason %q, got %q", tt.wantReason, rejection.Reason)
				}
			} else if err != nil && !errors.Is(err, ErrValidatorUnavailable) {
				t.Errorf("Expected ErrValidatorUnavailable, got %v", err)
			}
			if client.calls != 1 {
				t.Errorf("Expected exactly one invocation, got %d", client.calls)
			}
		})
	}
}

func TestLambdaValidator_EmptyToken(t *testing.T) {
	client := &fakeInvoker{}
	validator := NewLambdaValidator(client, "dev_validate_access_token", nil)

	err := validator.Validate(context.Background(), "")

	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("Expected ErrMissingToken, got %v", err)
	}
	if client.calls != 0 {
		t.Error("Validator must not be invoked for an empty token")
	}
}

func TestLambdaValidator_InvokeFailure(t *testing.T) {
	client := &fakeInvoker{err: errors.New("connection refused")}
	validator := NewLambdaValidator(client, "dev_validate_access_token", nil)

	err := validator.Validate(context.Background(), "some-token")

	if !errors.Is(err, ErrValidatorUnavailable) {
		t.Errorf("Expected ErrValidatorUnavailable, got %v", err)
	}
}

func TestLambdaValidator_FunctionError(t *testing.T) {
	client := &fakeInvoker{
		output: &awslambda.InvokeOutput{
			FunctionError: aws.String("Unhandled"),
			Payload:       []byte(`{"errorMessage": "boom"}`),
		},
	}
	validator := NewLambdaValidator(client, "dev_validate_access_token", nil)

	err := validator.Validate(context.Background(), "some-token")

	if !errors.Is(err, ErrValidatorUnavailable) {
		t.Errorf("Expected ErrValidatorUnavailable, got %v", err)
	}
}

func TestLambdaValidator_NoFunctionConfigured(t *testing.T) {
	client := &fakeInvoker{}
	validator := NewLambdaValidator(client, "", nil)

	err := validator.Validate(context.Background(), "some-token")

	if !errors.Is(err, ErrValidatorUnavailable) {
		t.Errorf("Expected ErrValidatorUnavailable, got %v", err)
	}
	if client.calls != 0 {
		t.Error("Validator must not be invoked without a function name")
	}
}
