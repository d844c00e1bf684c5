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

// StorageRepo provides typed DynamoDB operations for the storages table.
type StorageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewStorageRepo(client *dynamodb.Client, tableName string) *StorageRepo {
	return &StorageRepo{client: client, tableName: tableName}
}

func (r *StorageRepo) Put(ctx context.Context, u *domain.StorageUnit) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal storage unit: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *StorageRepo) Get(ctx context.Context, storageID string) (*domain.StorageUnit, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("storage_id", storageID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("storage unit not found: %w", domain.ErrNotFound)
	}
	var u domain.StorageUnit
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByStore returns every storage unit registered to a store.
func (r *StorageRepo) ListByStore(ctx context.Context, storeID string) ([]domain.StorageUnit, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("store_id-index"),
		KeyConditionExpression: aws.String("store_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: storeID},
		},
	})
	if err != nil {
		return nil, err
	}
	units := make([]domain.StorageUnit, 0, len(out.Items))
	for _, item := range out.Items {
		var u domain.StorageUnit
		if err := attributevalue.UnmarshalMap(item, &u); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func (r *StorageRepo) Update(ctx context.Context, storageID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("storage_id", storageID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *StorageRepo) Delete(ctx context.Context, storageID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("storage_id", storageID),
	})
	return err
}
