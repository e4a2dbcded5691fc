package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda as visões agregadas já computadas (stats, histórico, saldos
// detalhados). Toda mutação invalida as chaves em bloco, então uma leitura
// nunca serve dado anterior à última escrita; o TTL cobre apenas o caso de
// invalidação perdida.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Cache { return &Cache{R: r, TTL: ttl} }

const (
	KeyStats            = "freebets:stats"
	KeyHistory          = "freebets:stats:history"
	KeyBalances         = "freebets:stats:balances"
	KeyBalancesByPerson = "freebets:stats:balances_by_person"
)

// allKeys lista as chaves invalidadas em conjunto a cada mutação.
var allKeys = []string{KeyStats, KeyHistory, KeyBalances, KeyBalancesByPerson}

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) Set(ctx context.Context, key string, v any) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, key, b, c.TTL).Err()
}

// Invalidate remove todas as visões computadas. Chamado após cada mutação.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.R.Del(ctx, allKeys...).Err()
}
