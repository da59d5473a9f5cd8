package server

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/sirupsen/logrus"

	"rockie-classroom-api/internal/auth"
	"rockie-classroom-api/internal/config"
	"rockie-classroom-api/internal/handlers"
	"rockie-classroom-api/internal/pipeline"
	"rockie-classroom-api/internal/repositories"
	"rockie-classroom-api/internal/repositories/dynamo"
	"rockie-classroom-api/internal/repositories/memory"
	"rockie-classroom-api/internal/services"
)

// Container holds all application dependencies. Clients and stores are
// constructed once per process and injected; nothing reaches for a global.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Stores       repositories.EntityStores
	Tokens       repositories.TokenStore
	Students     repositories.StudentStore
	Transactions repositories.TransactionStore

	Validator auth.TokenValidator
	Resolver  auth.IdentityResolver
	Pipeline  *pipeline.Pipeline

	AuthService     services.AuthService
	PurchaseService services.PurchaseService

	Activities   *handlers.ActivityHandler
	Purchasables *handlers.PurchasableHandler
	Rewards      *handlers.RewardHandler
	Rockies      *handlers.RockieHandler
	Auth         *handlers.AuthHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := logrus.New()
	if config.IsServerlessMode() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.buildStores(ctx); err != nil {
		return nil, err
	}

	c.Resolver = auth.NewTokenResolver(c.Tokens)
	c.Pipeline = pipeline.New(c.Validator, c.Resolver, logger)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	c.AuthService = services.NewAuthService(c.Students, c.Tokens, tokenTTL, logger)
	c.PurchaseService = services.NewPurchaseService(c.Stores.Purchasables, c.Stores.Rockies, c.Transactions, logger)

	c.Activities = handlers.NewActivityHandler(c.Pipeline, c.Stores.Activities)
	c.Purchasables = handlers.NewPurchasableHandler(c.Pipeline, c.Stores.Purchasables, c.PurchaseService)
	c.Rewards = handlers.NewRewardHandler(c.Pipeline, c.Stores.Rewards)
	c.Rockies = handlers.NewRockieHandler(c.Pipeline, c.Stores.Rockies)
	c.Auth = handlers.NewAuthHandler(c.AuthService)

	return c, nil
}

// buildStores constructs the stores and the token validator for the
// configured backend.
func (c *Container) buildStores(ctx context.Context) error {
	cfg := c.Config

	if cfg.Store.Type == "memory" {
		c.Stores = repositories.EntityStores{
			Activities:   memory.NewRecordStore(cfg.TableName("activities")),
			Purchasables: memory.NewRecordStore(cfg.TableName("purchasables")),
			Rewards:      memory.NewRecordStore(cfg.TableName("rewards")),
			Rockies:      memory.NewRecordStore(cfg.TableName("rockies")),
		}
		tokens := memory.NewTokenStore(cfg.TableName("access_tokens"))
		c.Tokens = tokens
		c.Students = memory.NewStudentStore(cfg.TableName("students"))
		c.Transactions = memory.NewTransactionStore(cfg.TableName("transactions"))
		c.Validator = auth.NewStoreValidator(tokens)
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return fmt.Errorf("load AWS configuration: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWS.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
		}
	})

	c.Stores = repositories.EntityStores{
		Activities:   dynamo.NewRecordStore(dynamoClient, cfg.TableName("activities")),
		Purchasables: dynamo.NewRecordStore(dynamoClient, cfg.TableName("purchasables")),
		Rewards:      dynamo.NewRecordStore(dynamoClient, cfg.TableName("rewards")),
		Rockies:      dynamo.NewRecordStore(dynamoClient, cfg.TableName("rockies")),
	}
	tokens := dynamo.NewTokenStore(dynamoClient, cfg.TableName("access_tokens"))
	c.Tokens = tokens
	c.Students = dynamo.NewStudentStore(dynamoClient, cfg.TableName("students"))
	c.Transactions = dynamo.NewTransactionStore(dynamoClient, cfg.TableName("transactions"))

	if cfg.Auth.ValidateFunctionName != "" {
		lambdaClient := awslambda.NewFromConfig(awsCfg, func(o *awslambda.Options) {
			if cfg.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
			}
		})
		timeout := time.Duration(cfg.Auth.ValidateTimeoutSeconds) * time.Second
		c.Validator = auth.NewLambdaValidator(lambdaClient, cfg.Auth.ValidateFunctionName, c.Logger).WithTimeout(timeout)
	} else {
		// Without a validate function configured, check the token store
		// directly. This keeps single-process deployments working.
		c.Validator = auth.NewStoreValidator(tokens)
	}

	return nil
}

// RouterConfig bundles the handlers for the development server routes.
func (c *Container) RouterConfig() *handlers.RouterConfig {
	return &handlers.RouterConfig{
		Activities:   c.Activities,
		Purchasables: c.Purchasables,
		Rewards:      c.Rewards,
		Rockies:      c.Rockies,
		Auth:         c.Auth,
	}
}

// Close cleans up container resources. The AWS SDK clients hold no
// connections that need explicit shutdown; this exists so entry points can
// defer a single cleanup call.
func (c *Container) Close() error {
	return nil
}
