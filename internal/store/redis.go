package store

import (
    "context"
    "fmt"
    "time"

    "github.com/go-redis/redis/v8"
    "go.uber.org/zap"
)

// RedisStore maps each bucket to one key under a namespace prefix.
type RedisStore struct {
    client *redis.Client
    prefix string
    logger *zap.Logger
}

func NewRedisStore(addr, prefix string, logger *zap.Logger) (*RedisStore, error) {
    client := redis.NewClient(&redis.Options{
        Addr:         addr,
        DialTimeout:  5 * time.Second,
        ReadTimeout:  3 * time.Second,
        WriteTimeout: 3 * time.Second,
    })

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    if err := client.Ping(ctx).Err(); err != nil {
        return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
    }

    logger.Info("Connected to redis state store",
        zap.String("addr", addr),
        zap.String("prefix", prefix))

    return &RedisStore{
        client: client,
        prefix: prefix,
        logger: logger,
    }, nil
}

func (r *RedisStore) key(bucket string) string {
    return r.prefix + ":" + bucket
}

func (r *RedisStore) Load(ctx context.Context, bucket string) ([]byte, error) {
    data, err := r.client.Get(ctx, r.key(bucket)).Bytes()
    if err == redis.Nil {
        return nil, nil
    }
    if err != nil {
        return nil, fmt.Errorf("failed to load bucket %s: %w", bucket, err)
    }
    return data, nil
}

func (r *RedisStore) Save(ctx context.Context, bucket string, data []byte) error {
    if err := r.client.Set(ctx, r.key(bucket), data, 0).Err(); err != nil {
        return fmt.Errorf("failed to save bucket %s: %w", bucket, err)
    }
    return nil
}

func (r *RedisStore) Close() error {
    return r.client.Close()
}
