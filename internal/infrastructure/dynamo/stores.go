package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suittrip/backend/internal/domain"
)

// StoreRepo provides typed DynamoDB operations for the stores table.
type StoreRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewStoreRepo(client *dynamodb.Client, tableName string) *StoreRepo {
	return &StoreRepo{client: client, tableName: tableName}
}

func (r *StoreRepo) Put(ctx context.Context, s *domain.Store) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *StoreRepo) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("store_id", storeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("store not found: %w", domain.ErrNotFound)
	}
	var s domain.Store
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByEmail looks up a store through the email GSI.
func (r *StoreRepo) GetByEmail(ctx context.Context, email string) (*domain.Store, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("email-index"),
		KeyConditionExpression: aws.String("email = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("store not found: %w", domain.ErrNotFound)
	}
	var s domain.Store
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) Update(ctx context.Context, storeID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("store_id", storeID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *StoreRepo) SoftDelete(ctx context.Context, storeID string) error {
	now := time.Now().UTC()
	return r.Update(ctx, storeID, map[string]interface{}{
		"enable":     0,
		"deleted_at": now.Format(time.RFC3339Nano),
	})
}
