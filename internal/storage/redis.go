package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cv-ai-go/internal/config"
	"cv-ai-go/internal/constants"
	"cv-ai-go/internal/tracing"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound is returned when a key is not found in Redis.
var ErrNotFound = redis.Nil

// 为Redis操作定义专用tracer
var redisTracer = otel.Tracer("cv-ai-go/storage/redis")

// Redis wraps the Redis client
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(redisOptions(cfg))

	// 添加OpenTelemetry钩子, 记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return NewRedisFromClient(client, cfg), nil
}

// NewRedisFromClient 使用已有客户端构造适配器，便于测试
func NewRedisFromClient(client *redis.Client, cfg *config.RedisConfig) *Redis {
	if cfg == nil {
		cfg = &config.RedisConfig{}
	}
	return &Redis{Client: client, config: cfg}
}

func redisOptions(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		MaxRetries: cfg.MaxRetries,
	}
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// JobVectorTTL 返回配置的JD向量缓存过期时间
func (r *Redis) JobVectorTTL() time.Duration {
	if r.config == nil || r.config.JobVectorTTLHours <= 0 {
		return constants.JobVectorCacheDuration
	}
	return time.Duration(r.config.JobVectorTTLHours) * time.Hour
}

// SetJobVector 将 JD 向量和模型版本存入 Redis HASH。
// jobKey 为 JD 文本的 MD5
func (r *Redis) SetJobVector(ctx context.Context, jobKey string, vector []float64, modelVersion string) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	cacheKey := fmt.Sprintf(constants.KeyJobDescriptionVector, jobKey)

	ctx, span := redisTracer.Start(ctx, "Redis.SetJobVector", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.redis.key", tracing.SafeRedisKey(cacheKey)),
		attribute.Int("vector.dimensions", len(vector)),
	)

	vectorJSON, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("序列化向量失败: %w", err)
	}

	// 使用 pipeline 原子化操作
	pipe := r.Client.TxPipeline()
	pipe.HSet(ctx, cacheKey, "vector", vectorJSON, "model_version", modelVersion)
	pipe.Expire(ctx, cacheKey, r.JobVectorTTL())

	if _, err = pipe.Exec(ctx); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		return fmt.Errorf("设置 JD 向量缓存失败: %w", err)
	}
	return nil
}

// GetJobVector 从 Redis HASH 中获取 JD 向量和模型版本。
// 缓存不存在时返回的错误满足 errors.Is(err, ErrNotFound)
func (r *Redis) GetJobVector(ctx context.Context, jobKey string) ([]float64, string, error) {
	if r.Client == nil {
		return nil, "", fmt.Errorf("redis client is not initialized")
	}

	cacheKey := fmt.Sprintf(constants.KeyJobDescriptionVector, jobKey)

	ctx, span := redisTracer.Start(ctx, "Redis.GetJobVector", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.redis.key", tracing.SafeRedisKey(cacheKey)),
	)

	// 使用 HMGet 一次性获取两个字段
	vals, err := r.Client.HMGet(ctx, cacheKey, "vector", "model_version").Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			tracing.RecordError(span, err, tracing.ErrorTypeRedis)
		}
		return nil, "", err
	}

	if len(vals) < 2 || vals[0] == nil {
		span.SetAttributes(attribute.Bool("db.redis.key_exists", false))
		return nil, "", fmt.Errorf("未找到JD向量缓存，key=%s: %w", jobKey, ErrNotFound)
	}
	span.SetAttributes(attribute.Bool("db.redis.key_exists", true))

	vectorJSON, ok := vals[0].(string)
	if !ok || vectorJSON == "" {
		return nil, "", fmt.Errorf("向量缓存格式错误")
	}
	var vector []float64
	if err := json.Unmarshal([]byte(vectorJSON), &vector); err != nil {
		return nil, "", fmt.Errorf("反序列化向量失败: %w", err)
	}

	if vals[1] == nil {
		return vector, "", fmt.Errorf("向量模型版本未找到")
	}
	modelVersion, ok := vals[1].(string)
	if !ok {
		return vector, "", fmt.Errorf("向量模型版本格式错误")
	}

	return vector, modelVersion, nil
}
