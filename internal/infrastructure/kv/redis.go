package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"talentboard/internal/config"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 256

// prependScript runs server-side so the read and the write of the index
// happen without any other command in between.
var prependScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
local list = {}
if cur then
  list = cjson.decode(cur)
end
table.insert(list, 1, ARGV[1])
redis.call('SET', KEYS[1], cjson.encode(list))
return #list
`)

type Redis struct {
	client    redis.UniversalClient
	namespace string
	logger    *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, namespace string, logger *log.Logger) (*Redis, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, opError("ping", "", err)
	}

	return NewRedisFromClient(client, namespace, logger), nil
}

func NewRedisFromClient(client redis.UniversalClient, namespace string, logger *log.Logger) *Redis {
	if logger == nil {
		logger = log.Default()
	}
	return &Redis{client: client, namespace: namespace, logger: logger}
}

func (r *Redis) k(key string) string {
	return r.namespace + key
}

func (r *Redis) fail(op, key string, err error) error {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[KV] redis error op=%s key=%s err=%v", op, key, err)
	}
	return opError(op, key, err)
}

func (r *Redis) Get(ctx context.Context, key string, out any) (bool, error) {
	b, err := r.client.Get(ctx, r.k(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, r.fail("get", key, err)
	}
	if err := decode("get", key, b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	b, err := encode("set", key, value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.k(key), b, 0).Err(); err != nil {
		return r.fail("set", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.k(key)).Err(); err != nil {
		return r.fail("delete", key, err)
	}
	return nil
}

func (r *Redis) GetMany(ctx context.Context, keys []string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.k(k)
	}

	vals, err := r.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, r.fail("get_many", "", err)
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		out[keys[i]] = json.RawMessage(s)
	}
	return out, nil
}

func (r *Redis) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	pattern := escapeGlob(r.k(prefix)) + "*"

	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.namespace))
	}
	if err := iter.Err(); err != nil {
		return nil, r.fail("list", prefix, err)
	}
	sort.Strings(keys)

	docs, err := r.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		// A key can expire or be deleted between SCAN and MGET.
		if v, ok := docs[k]; ok {
			out = append(out, Entry{Key: k, Value: v})
		}
	}
	return out, nil
}

func (r *Redis) SetIfAbsent(ctx context.Context, key string, value any) (bool, error) {
	b, err := encode("set_if_absent", key, value)
	if err != nil {
		return false, err
	}
	ok, err := r.client.SetNX(ctx, r.k(key), b, 0).Result()
	if err != nil {
		return false, r.fail("set_if_absent", key, err)
	}
	return ok, nil
}

func (r *Redis) Prepend(ctx context.Context, key string, item string) error {
	if err := prependScript.Run(ctx, r.client, []string{r.k(key)}, item).Err(); err != nil {
		return r.fail("prepend", key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return r.fail("ping", "", err)
	}
	r.warnedUnavailable.Store(false)
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func escapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

var _ Store = (*Redis)(nil)
