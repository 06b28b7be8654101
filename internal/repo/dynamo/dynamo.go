// Package dynamo stores page records in a DynamoDB table keyed by "page".
package dynamo

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/hamed0406/pageloadtime/internal/domain"
	"github.com/hamed0406/pageloadtime/internal/repo"
)

var _ repo.PageStore = (*Store)(nil)

// API is the subset of *dynamodb.Client the store calls.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

const keyAttr = "page"

type item struct {
	Page        string `dynamodbav:"page"`
	LoadingTime string `dynamodbav:"loading_time"`
}

type Store struct {
	api   API
	table string
	log   *zap.Logger
}

func New(api API, table string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{api: api, table: table, log: log}
}

// NewClient loads credentials and region from the standard AWS chain.
// A non-empty endpoint targets DynamoDB Local; without explicit credentials in
// the environment it signs with a dummy static key, which Local accepts.
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if endpoint != "" {
		if region == "" {
			opts = append(opts, awsconfig.WithRegion("us-east-1"))
		}
		if os.Getenv("AWS_ACCESS_KEY_ID") == "" {
			opts = append(opts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			))
		}
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (s *Store) Get(ctx context.Context, page string) (*domain.PageRecord, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: page},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, repo.ErrNotFound
	}
	var it item
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return &domain.PageRecord{Page: it.Page, LoadingTime: it.LoadingTime}, nil
}

func (s *Store) Put(ctx context.Context, rec *domain.PageRecord) error {
	av, err := attributevalue.MarshalMap(item{Page: rec.Page, LoadingTime: rec.LoadingTime})
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("dynamodb put item: %w", err)
	}
	s.log.Debug("dynamo_page_put", zap.String("table", s.table), zap.String("page", rec.Page))
	return nil
}

// CreateTable provisions the pages table with on-demand billing. Used by
// local setups and tests; production tables are owned by infrastructure.
func CreateTable(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(keyAttr), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(keyAttr), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}
