package storage

import (
	"context"
	"fmt"
	"log"

	"cv-ai-go/internal/config"
)

// Storage 存储管理器。服务本身无状态，只聚合可选的 Redis 缓存
type Storage struct {
	// 键值存储，未配置时为 nil
	Redis *Redis
}

// NewStorage 创建存储管理器。Redis 未配置或连接失败时不返回错误，只记录日志并禁用缓存
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	storage := &Storage{}

	if !cfg.RedisEnabled() {
		log.Printf("Redis未配置, 跳过初始化, JD向量缓存已禁用.")
		return storage, nil
	}

	log.Printf("初始化Redis at %s...", cfg.Redis.Address)
	redisAdapter, err := NewRedisAdapter(&cfg.Redis)
	if err != nil {
		log.Printf("警告: 初始化Redis失败, JD向量缓存已禁用: %v", err)
		return storage, nil
	}
	storage.Redis = redisAdapter

	return storage, nil
}

// Close 关闭所有存储连接
func (s *Storage) Close() {
	if s == nil {
		return
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.Printf("关闭Redis连接失败: %v", err)
		}
	}
}
