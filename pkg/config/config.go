package config

import (
    "github.com/kelseyhightower/envconfig"
)

type Config struct {
    Port         string `envconfig:"PORT" default:"8080"`
    LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
    StoreDriver  string `envconfig:"STORE_DRIVER" default:"memory"` // memory | redis | dynamodb
    RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
    RedisPrefix  string `envconfig:"REDIS_PREFIX" default:"pos"`
    AWSRegion    string `envconfig:"AWS_REGION" default:"ap-northeast-2"`
    StateTable   string `envconfig:"STATE_TABLE_NAME" default:"pos-state"`
    KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""` // empty disables sale events
    SeedDemoData bool   `envconfig:"SEED_DEMO_DATA" default:"true"`
}

func Load() (*Config, error) {
    var cfg Config
    if err := envconfig.Process("", &cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
