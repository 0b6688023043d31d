package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache redis 读穿缓存；nil *Cache 表示未启用，所有操作直接回源
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
}

func New(addr, pass string, db int) *Cache {
	return &Cache{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "account-service:",
	}
}

func (c *Cache) key(k string) string { return c.Prefix + k }

// genKey 每次失效自增；回源前后代数不一致时不回填
func (c *Cache) genKey(k string) string { return c.Prefix + k + ":gen" }

// setIfGen 代数未变才写入 KEYS[1]
var setIfGen = redis.NewScript(`
local g = redis.call('GET', KEYS[2]) or '0'
if g ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// generation 读取当前代数；redis 不可用时返回 false，本次不回填
func (c *Cache) generation(ctx context.Context, key string) (string, bool) {
	g, err := c.RDB.Get(ctx, c.genKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		return "", false
	}
	return g, true
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	// 先读缓存；redis 不可用时按未命中处理
	if b, err := c.RDB.Get(ctx, c.key(key)).Bytes(); err == nil {
		return b, nil
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		gen, ok := c.generation(ctx, key)
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if ok {
			_ = setIfGen.Run(ctx, c.RDB, []string{c.key(key), c.genKey(key)}, gen, b, ttl.Milliseconds()).Err()
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 先自增代数再删除缓存键：进行中的回源不会把旧结果写回，也不再被后来者共享
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	pipe := c.RDB.TxPipeline()
	for _, k := range keys {
		c.sf.Forget(k)
		pipe.Incr(ctx, c.genKey(k))
		full = append(full, c.key(k))
	}
	pipe.Del(ctx, full...)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}
