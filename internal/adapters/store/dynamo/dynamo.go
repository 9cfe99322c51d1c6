// Package dynamo implements the record store over DynamoDB tables keyed by
// each collection's primary attribute. All calls run behind a circuit
// breaker; an open breaker or any SDK failure surfaces as
// domain.ErrStoreUnavailable so service code never sees AWS error types.
package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sony/gobreaker"

	"github.com/nextgen-care/clinic-service/internal/config"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type Store struct {
	client *dynamodb.Client
	cb     *gobreaker.CircuitBreaker
}

var _ ports.RecordStore = (*Store)(nil)

func New(client *dynamodb.Client) *Store {
	return &Store{
		client: client,
		cb:     config.NewCircuitBreaker("DynamoDB"),
	}
}

func (s *Store) Get(ctx context.Context, col ports.Collection, key string) (ports.Item, error) {
	out, err := s.cb.Execute(func() (any, error) {
		return s.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(col.Name),
			Key:       keyAttr(col, key),
		})
	})
	if err != nil {
		return nil, unavailable("get", col, err)
	}

	resp := out.(*dynamodb.GetItemOutput)
	if resp.Item == nil {
		return nil, fmt.Errorf("%s %q: %w", col.Name, key, domain.ErrNotFound)
	}

	var item ports.Item
	if err := attributevalue.UnmarshalMap(resp.Item, &item); err != nil {
		return nil, unavailable("decode", col, err)
	}
	return item, nil
}

func (s *Store) Put(ctx context.Context, col ports.Collection, item ports.Item) error {
	encoded, err := attributevalue.MarshalMap(item)
	if err != nil {
		return unavailable("encode", col, err)
	}

	_, err = s.cb.Execute(func() (any, error) {
		return s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(col.Name),
			Item:      encoded,
		})
	})
	if err != nil {
		return unavailable("put", col, err)
	}
	return nil
}

func (s *Store) ScanAll(ctx context.Context, col ports.Collection) ([]ports.Item, error) {
	var items []ports.Item

	input := &dynamodb.ScanInput{TableName: aws.String(col.Name)}
	for {
		out, err := s.cb.Execute(func() (any, error) {
			return s.client.Scan(ctx, input)
		})
		if err != nil {
			return nil, unavailable("scan", col, err)
		}

		resp := out.(*dynamodb.ScanOutput)
		var page []ports.Item
		if err := attributevalue.UnmarshalListOfMaps(resp.Items, &page); err != nil {
			return nil, unavailable("decode", col, err)
		}
		items = append(items, page...)

		if resp.LastEvaluatedKey == nil {
			return items, nil
		}
		input.ExclusiveStartKey = resp.LastEvaluatedKey
	}
}

func (s *Store) UpdateField(ctx context.Context, col ports.Collection, key, field string, value any) error {
	encoded, err := attributevalue.Marshal(value)
	if err != nil {
		return unavailable("encode", col, err)
	}

	found, err := s.conditionalWrite(func() error {
		_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:        aws.String(col.Name),
			Key:              keyAttr(col, key),
			UpdateExpression: aws.String("SET #f = :v"),
			// Without the condition, UpdateItem would upsert a phantom
			// record; the contract wants NotFound on an absent key.
			ConditionExpression: aws.String("attribute_exists(#k)"),
			ExpressionAttributeNames: map[string]string{
				"#f": field,
				"#k": col.KeyAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":v": encoded,
			},
		})
		return err
	})
	if err != nil {
		return unavailable("update", col, err)
	}
	if !found {
		return fmt.Errorf("%s %q: %w", col.Name, key, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, col ports.Collection, key string) error {
	found, err := s.conditionalWrite(func() error {
		_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:           aws.String(col.Name),
			Key:                 keyAttr(col, key),
			ConditionExpression: aws.String("attribute_exists(#k)"),
			ExpressionAttributeNames: map[string]string{
				"#k": col.KeyAttr,
			},
		})
		return err
	})
	if err != nil {
		return unavailable("delete", col, err)
	}
	if !found {
		return fmt.Errorf("%s %q: %w", col.Name, key, domain.ErrNotFound)
	}
	return nil
}

// conditionalWrite runs op behind the breaker. A conditional-check failure
// means the key was absent, which is a normal outcome; it is classified
// inside the closure so it never counts toward tripping the breaker, and is
// reported as found == false.
func (s *Store) conditionalWrite(op func() error) (found bool, err error) {
	out, err := s.cb.Execute(func() (any, error) {
		if err := op(); err != nil {
			var conditionFailed *types.ConditionalCheckFailedException
			if errors.As(err, &conditionFailed) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return out.(bool), nil
}

func keyAttr(col ports.Collection, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		col.KeyAttr: &types.AttributeValueMemberS{Value: key},
	}
}

func unavailable(op string, col ports.Collection, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrStoreUnavailable, op, col.Name, err)
}
