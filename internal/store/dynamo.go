package store

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "time"

    "github.com/aws/aws-sdk-go-v2/aws"
    "github.com/aws/aws-sdk-go-v2/config"
    "github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
    "github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
    "github.com/aws/aws-sdk-go-v2/service/dynamodb"
    "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
    pkgconfig "github.com/warungkita/pos-service/pkg/config"
)

type bucketItem struct {
    Bucket    string    `dynamodbav:"bucket"`
    Revision  int64     `dynamodbav:"revision"`
    Payload   []byte    `dynamodbav:"payload"`
    UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// DynamoStore persists each bucket as one item keyed by bucket name. Saves
// are conditional on the revision this process last observed, so a second
// writer against the same table surfaces as ErrRevisionConflict instead of
// silently clobbering state.
type DynamoStore struct {
    client    *dynamodb.Client
    tableName string

    mu        sync.Mutex
    revisions map[string]int64
}

func NewDynamoDBClient(cfg *pkgconfig.Config) (*dynamodb.Client, error) {
    awsCfg, err := config.LoadDefaultConfig(context.TODO(),
        config.WithRegion(cfg.AWSRegion),
    )
    if err != nil {
        return nil, err
    }

    return dynamodb.NewFromConfig(awsCfg), nil
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
    return &DynamoStore{
        client:    client,
        tableName: tableName,
        revisions: make(map[string]int64),
    }
}

func (d *DynamoStore) Load(ctx context.Context, bucket string) ([]byte, error) {
    result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
        TableName: aws.String(d.tableName),
        Key: map[string]types.AttributeValue{
            "bucket": &types.AttributeValueMemberS{Value: bucket},
        },
        ConsistentRead: aws.Bool(true),
    })

    if err != nil {
        return nil, fmt.Errorf("failed to get bucket %s: %w", bucket, err)
    }

    if result.Item == nil {
        d.mu.Lock()
        d.revisions[bucket] = 0
        d.mu.Unlock()
        return nil, nil
    }

    var item bucketItem
    if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
        return nil, fmt.Errorf("failed to unmarshal bucket %s: %w", bucket, err)
    }

    d.mu.Lock()
    d.revisions[bucket] = item.Revision
    d.mu.Unlock()

    return item.Payload, nil
}

func (d *DynamoStore) Save(ctx context.Context, bucket string, data []byte) error {
    d.mu.Lock()
    lastSeen := d.revisions[bucket]
    d.mu.Unlock()

    next := lastSeen + 1

    update := expression.Set(
        expression.Name("payload"),
        expression.Value(data),
    ).Set(
        expression.Name("revision"),
        expression.Value(next),
    ).Set(
        expression.Name("updated_at"),
        expression.Value(time.Now()),
    )

    // Only write over the revision this process last read.
    condition := expression.AttributeNotExists(
        expression.Name("bucket"),
    ).Or(expression.Equal(
        expression.Name("revision"),
        expression.Value(lastSeen),
    ))

    expr, err := expression.NewBuilder().
        WithUpdate(update).
        WithCondition(condition).
        Build()
    if err != nil {
        return err
    }

    input := &dynamodb.UpdateItemInput{
        TableName: aws.String(d.tableName),
        Key: map[string]types.AttributeValue{
            "bucket": &types.AttributeValueMemberS{Value: bucket},
        },
        ExpressionAttributeNames:  expr.Names(),
        ExpressionAttributeValues: expr.Values(),
        UpdateExpression:          expr.Update(),
        ConditionExpression:       expr.Condition(),
    }

    if _, err := d.client.UpdateItem(ctx, input); err != nil {
        var ccf *types.ConditionalCheckFailedException
        if errors.As(err, &ccf) {
            return ErrRevisionConflict
        }
        return fmt.Errorf("failed to save bucket %s: %w", bucket, err)
    }

    d.mu.Lock()
    d.revisions[bucket] = next
    d.mu.Unlock()

    return nil
}
