package queue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 默认队列名称
const DefaultQueue = constants.QueueDefault

// Client 队列客户端封装，未启用时所有入队操作返回 ErrDisabled
type Client struct {
	client *asynq.Client
}

// ErrDisabled 队列未启用
var ErrDisabled = errors.New("queue disabled")

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{}
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderPlaced 推送新订单邮件任务
func (c *Client) EnqueueOrderPlaced(payload OrderPlacedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	task, err := NewOrderPlacedTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, append([]asynq.Option{asynq.Queue(constants.QueueCritical)}, opts...)...)
	return err
}

// EnqueueOrderStatus 推送订单状态邮件任务
func (c *Client) EnqueueOrderStatus(payload OrderStatusPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	task, err := NewOrderStatusTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, append([]asynq.Option{asynq.Queue(DefaultQueue)}, opts...)...)
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 5
	queues := map[string]int{constants.QueueCritical: 3, DefaultQueue: 1}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
