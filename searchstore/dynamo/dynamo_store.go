package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hupe1980/photosearch/model"
	"github.com/hupe1980/photosearch/searchstore"
)

// Client is the subset of the DynamoDB API the store uses.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store implements searchstore.Store on a DynamoDB table whose partition
// key is the document's objectKey attribute.
type Store struct {
	client Client
	table  string
}

// NewStore creates a new DynamoDB-backed document store.
func NewStore(client Client, table string) *Store {
	return &Store{
		client: client,
		table:  table,
	}
}

// Upsert writes doc with PutItem. PutItem replaces the full item for an
// existing key, which gives the required wholesale replace semantics and
// per-document atomicity.
func (s *Store) Upsert(ctx context.Context, doc model.PhotoDocument) error {
	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("marshal document %q: %w", doc.ObjectKey, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put document %q: %w", doc.ObjectKey, err)
	}
	return nil
}

// Search scans the table with an OR-chained contains() filter over the
// multi-valued field. A scan is acceptable here: the photo collection is
// the whole table and the filter is not key-addressable.
func (s *Store) Search(ctx context.Context, q searchstore.Query) ([]model.PhotoDocument, error) {
	if len(q.AnyOf) == 0 {
		return []model.PhotoDocument{}, nil
	}

	expr, err := buildFilter(q)
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}

	docs := []model.PhotoDocument{}

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", s.table, err)
		}

		var batch []model.PhotoDocument
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal scan page: %w", err)
		}
		docs = append(docs, batch...)
	}

	return docs, nil
}

// buildFilter translates the disjunctive query into a DynamoDB filter
// expression: contains(field, v1) OR contains(field, v2) OR ...
func buildFilter(q searchstore.Query) (expression.Expression, error) {
	cond := expression.Name(q.Field).Contains(q.AnyOf[0])
	for _, v := range q.AnyOf[1:] {
		cond = cond.Or(expression.Name(q.Field).Contains(v))
	}

	return expression.NewBuilder().WithFilter(cond).Build()
}
