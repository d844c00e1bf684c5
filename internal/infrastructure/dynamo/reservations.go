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

// ReservationRepo provides typed DynamoDB operations for the reservations table.
type ReservationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewReservationRepo(client *dynamodb.Client, tableName string) *ReservationRepo {
	return &ReservationRepo{client: client, tableName: tableName}
}

func (r *ReservationRepo) Put(ctx context.Context, rv *domain.Reservation) error {
	item, err := attributevalue.MarshalMap(rv)
	if err != nil {
		return fmt.Errorf("marshal reservation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ReservationRepo) Get(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("reservation_id", reservationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("reservation not found: %w", domain.ErrNotFound)
	}
	var rv domain.Reservation
	if err := attributevalue.UnmarshalMap(out.Item, &rv); err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListByStore returns a store's reservations newest first, optionally filtered
// by status. A nil status returns all.
func (r *ReservationRepo) ListByStore(ctx context.Context, storeID string, status *string) ([]domain.Reservation, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("store_id-created_at-index"),
		KeyConditionExpression: aws.String("store_id = :sid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: storeID},
		},
		ScanIndexForward: aws.Bool(false),
	}
	if status != nil {
		in.FilterExpression = aws.String("#s = :st")
		in.ExpressionAttributeNames = map[string]string{"#s": "status"}
		in.ExpressionAttributeValues[":st"] = &types.AttributeValueMemberS{Value: *status}
	}
	out, err := r.client.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	return unmarshalReservations(out.Items)
}

// ActiveByStorage returns confirmed or in-progress reservations for a storage
// unit. Used to resolve the current occupant of a unit.
func (r *ReservationRepo) ActiveByStorage(ctx context.Context, storageID string) ([]domain.Reservation, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("storage_id-index"),
		KeyConditionExpression: aws.String("storage_id = :id"),
		FilterExpression:       aws.String("#s IN (:c, :p)"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: storageID},
			":c":  &types.AttributeValueMemberS{Value: domain.ReservationConfirmed},
			":p":  &types.AttributeValueMemberS{Value: domain.ReservationInProgress},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalReservations(out.Items)
}

func (r *ReservationRepo) Update(ctx context.Context, reservationID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("reservation_id", reservationID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func unmarshalReservations(items []map[string]types.AttributeValue) ([]domain.Reservation, error) {
	rs := make([]domain.Reservation, 0, len(items))
	for _, item := range items {
		var rv domain.Reservation
		if err := attributevalue.UnmarshalMap(item, &rv); err != nil {
			return nil, err
		}
		rs = append(rs, rv)
	}
	return rs, nil
}
