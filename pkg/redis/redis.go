package redis

import (
	"strings"
	"time"

	"github.com/go-redis/redis"
)

type _client struct {
	cli *redis.Client
}

var clientMap = make(map[string]_client)

// Init 初始化并注册一个命名的 Redis 连接。
// host 支持逗号分隔的地址列表，当前只使用第一个地址。
func Init(dbName string, host string, password string) error {
	hostSlice := strings.Split(host, ",")
	client := redis.NewClient(&redis.Options{
		Addr:     hostSlice[0],
		Password: password,
		DB:       0,
	})
	if _, err := client.Ping().Result(); err != nil {
		return err
	}
	clientMap[dbName] = _client{cli: client}
	return nil
}

// Client 获取已注册的原始客户端，未注册时返回 nil.
func Client(db string) *redis.Client {
	return clientMap[db].cli
}

// Handler 封装常用的 Redis 操作.
type Handler struct {
	client            *redis.Client
	DefaultExpiration time.Duration
}

// NewRedisHandler 创建指定连接上的操作句柄.
func NewRedisHandler(db string) *Handler {
	return &Handler{
		client:            Client(db),
		DefaultExpiration: time.Hour * 24,
	}
}

// Set 写入键值，使用默认过期时间.
func (rh *Handler) Set(key string, value interface{}) error {
	return rh.client.Set(key, value, rh.DefaultExpiration).Err()
}

// Get 读取键值，不存在时返回空串.
func (rh *Handler) Get(key string) string {
	val, err := rh.client.Get(key).Result()
	if err != nil {
		return ""
	}
	return val
}

// Delete 删除键.
func (rh *Handler) Delete(key string) {
	rh.client.Del(key)
}

// Exist 判断键是否存在.
func (rh *Handler) Exist(key string) bool {
	count, err := rh.client.Exists(key).Result()
	if err != nil {
		return false
	}
	return count != 0
}

// AcquireLock 以 SETNX 语义获取分布式锁，用于串行化定时任务.
func (rh *Handler) AcquireLock(key string, value string, expiry time.Duration) (bool, error) {
	return rh.client.SetNX(key, value, expiry).Result()
}

// Pub 向频道发布消息.
func (rh *Handler) Pub(channel string, message string) error {
	return rh.client.Publish(channel, message).Err()
}

// Subscribe 订阅频道，调用方负责关闭返回的 PubSub.
func (rh *Handler) Subscribe(channel string) *redis.PubSub {
	return rh.client.Subscribe(channel)
}
