package redisUtil

import (
	"context"
	"fmt"
	"time"

	"github.com/lgn-lvx3/pge-nrg-api/config/toml"

	"github.com/go-redis/redis/v8"
)

var Redis *RedisClient

// RedisClient extends the client and has its own functions
type RedisClient struct {
	*redis.Client
}

// Initialize the Redis client
func NewRedisClient() error {
	if Redis != nil {
		return nil
	}
	urls := toml.GetConfig().Redis.Urls
	if len(urls) == 0 {
		return fmt.Errorf("no redis urls configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     urls[0],
		Password: toml.GetConfig().Redis.Password,
		DB:       0,
		PoolSize: 10,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,

		IdleCheckFrequency: 60 * time.Second,
		IdleTimeout:        5 * time.Minute,
		MaxConnAge:         0 * time.Second,

		MaxRetries:      0,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return err
	}
	Redis = &RedisClient{client}
	return nil
}

func init() {
	if err := NewRedisClient(); err != nil {
		fmt.Println("failed to connect redis client:", err)
	}
}

func (redis *RedisClient) RSet(key string, value interface{}, ex int) error {
	return redis.Set(context.TODO(), key, value, time.Second*time.Duration(ex)).Err()
}

func (redis *RedisClient) RGet(key string) string {
	value, err := redis.Get(context.TODO(), key).Result()
	if err != nil {
		return ""
	}
	return value
}

// RSetNX sets the key only if it does not already exist. Returns true when
// this caller won the set, used for storage event dedupe.
func (redis *RedisClient) RSetNX(key string, value interface{}, ex int) bool {
	ok, err := redis.SetNX(context.TODO(), key, value, time.Second*time.Duration(ex)).Result()
	if err != nil {
		// treat redis trouble as "not seen before" so events are never dropped
		return true
	}
	return ok
}

func (redis *RedisClient) RDel(key string) {
	redis.Del(context.TODO(), key)
}

// Close the Redis client
func (redis *RedisClient) Close() {
	if redis.Client != nil {
		redis.Client.Close()
	}
}

// Get the Redis client; if the client is not initialized
// create the Redis client
func GetRedisClient() (*RedisClient, error) {
	if Redis == nil {
		err := NewRedisClient()
		if err != nil {
			return nil, err
		}
	}
	return Redis, nil
}
