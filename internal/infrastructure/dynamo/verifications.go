package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suittrip/backend/internal/domain"
)

// VerificationRepo manages email verification codes.
// PK: email, SK: created_at (unix nanos). Verified rows accumulate as audit
// history; only the newest row matters for verification, so reads query in
// descending created_at order with Limit 1.
type VerificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVerificationRepo(client *dynamodb.Client, tableName string) *VerificationRepo {
	return &VerificationRepo{client: client, tableName: tableName}
}

func (r *VerificationRepo) Put(ctx context.Context, v *domain.EmailVerification) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal verification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Latest returns the most recently created record for email, verified or not.
func (r *VerificationRepo) Latest(ctx context.Context, email string) (*domain.EmailVerification, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("email = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("verification not found: %w", domain.ErrNotFound)
	}
	var v domain.EmailVerification
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteUnverified removes every unverified row for email. Called before
// inserting a fresh code so at most one unverified record exists per email.
func (r *VerificationRepo) DeleteUnverified(ctx context.Context, email string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("email = :e"),
		FilterExpression:       aws.String("is_verified = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
		ProjectionExpression: aws.String("email, created_at"),
	})
	if err != nil {
		return err
	}
	for _, item := range out.Items {
		var v domain.EmailVerification
		if err := attributevalue.UnmarshalMap(item, &v); err != nil {
			return err
		}
		if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       strNumKey("email", v.Email, "created_at", v.CreatedAt),
		}); err != nil {
			return err
		}
	}
	return nil
}

// Update applies a partial update to the record identified by email+createdAt.
// Read-modify-write callers (attempt counting) accept the lost-update race
// documented in the verification service.
func (r *VerificationRepo) Update(ctx context.Context, email string, createdAt int64, updates map[string]interface{}) error {
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strNumKey("email", email, "created_at", createdAt),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// HasVerified reports whether any record for email has been verified.
// No Limit here: DynamoDB applies Limit before FilterExpression, so limiting
// would only ever examine the oldest row. An email holds a handful of rows
// at most, one query page covers them all.
func (r *VerificationRepo) HasVerified(ctx context.Context, email string) (bool, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("email = :e"),
		FilterExpression:       aws.String("is_verified = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: email},
			":t": &types.AttributeValueMemberBOOL{Value: true},
		},
		ProjectionExpression: aws.String("email"),
	})
	if err != nil {
		return false, err
	}
	return len(out.Items) > 0, nil
}
