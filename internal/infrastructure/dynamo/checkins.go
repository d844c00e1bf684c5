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

// CheckinRepo provides typed DynamoDB operations for the checkins table.
type CheckinRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCheckinRepo(client *dynamodb.Client, tableName string) *CheckinRepo {
	return &CheckinRepo{client: client, tableName: tableName}
}

func (r *CheckinRepo) Put(ctx context.Context, c *domain.Checkin) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal checkin: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *CheckinRepo) Get(ctx context.Context, checkinID string) (*domain.Checkin, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("checkin_id", checkinID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("checkin not found: %w", domain.ErrNotFound)
	}
	var c domain.Checkin
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByReservation returns the checkin for a reservation, if any.
func (r *CheckinRepo) GetByReservation(ctx context.Context, reservationID string) (*domain.Checkin, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("reservation_id-index"),
		KeyConditionExpression: aws.String("reservation_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: reservationID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("checkin not found: %w", domain.ErrNotFound)
	}
	var c domain.Checkin
	if err := attributevalue.UnmarshalMap(out.Items[0], &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByStore returns a store's checkins, optionally only those still in storage.
func (r *CheckinRepo) ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]domain.Checkin, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("store_id-index"),
		KeyConditionExpression: aws.String("store_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: storeID},
		},
	}
	if activeOnly {
		in.FilterExpression = aws.String("#s = :st")
		in.ExpressionAttributeNames = map[string]string{"#s": "status"}
		in.ExpressionAttributeValues[":st"] = &types.AttributeValueMemberS{Value: domain.CheckinInStorage}
	}
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	cs := make([]domain.Checkin, 0, len(out.Items))
	for _, item := range out.Items {
		var c domain.Checkin
		if err := attributevalue.UnmarshalMap(item, &c); err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, nil
}

func (r *CheckinRepo) Update(ctx context.Context, checkinID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("checkin_id", checkinID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
