// Package limiter 基于令牌桶的路由限流
package limiter

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // 路由模板，例如 /api/notes/:id
	FillInterval time.Duration // 放入令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放入的令牌数
}

// RouteLimiter 按路由模板限流，同一模板下的所有请求共用一个令牌桶
type RouteLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
}

// NewRouteLimiter 创建路由限流器
func NewRouteLimiter() Face {
	return &RouteLimiter{buckets: make(map[string]*ratelimit.Bucket)}
}

// Key 返回匹配到的路由模板（去掉结尾斜杠），未匹配的请求返回空字符串
func (l *RouteLimiter) Key(c *gin.Context) string {
	key := c.FullPath()
	if len(key) > 1 {
		key = strings.TrimSuffix(key, "/")
	}
	return key
}

func (l *RouteLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket, ok := l.buckets[key]
	return bucket, ok
}

// AddBuckets 添加规则，已存在的 key 保持原有的令牌桶
func (l *RouteLimiter) AddBuckets(rules ...BucketRule) Face {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rule := range rules {
		if _, ok := l.buckets[rule.Key]; ok {
			continue
		}
		l.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
	}
	return l
}
