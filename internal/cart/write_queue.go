package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/wallmasters/storefront/internal/logger"
)

// ErrQueueClosed 写队列已关闭
var ErrQueueClosed = errors.New("cart write queue closed")

type writeOp struct {
	value  []byte
	remove bool
}

type keyState struct {
	next     *writeOp
	inflight bool
	wake     chan struct{}
}

func (k *keyState) busy() bool {
	return k.next != nil || k.inflight
}

// WriteQueue 按存储键串行落盘，每个键一个后台协程。
// 同一键上尚未开始的写入会被更新的快照覆盖，因此只有最后一次变更一定会落盘。
type WriteQueue struct {
	store Store

	mu     sync.Mutex
	keys   map[string]*keyState
	busy   int
	idle   chan struct{}
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup

	// OnError 落盘失败回调，默认记录 cart_persist_failed 日志
	OnError func(key string, err error)
}

// NewWriteQueue 创建写队列
func NewWriteQueue(store Store) *WriteQueue {
	idle := make(chan struct{})
	close(idle)
	return &WriteQueue{
		store: store,
		keys:  make(map[string]*keyState),
		idle:  idle,
		done:  make(chan struct{}),
	}
}

// Set 提交键的最新值
func (q *WriteQueue) Set(key string, value []byte) error {
	return q.enqueue(key, &writeOp{value: append([]byte(nil), value...)})
}

// Remove 提交删除
func (q *WriteQueue) Remove(key string) error {
	return q.enqueue(key, &writeOp{remove: true})
}

func (q *WriteQueue) enqueue(key string, op *writeOp) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	ks, ok := q.keys[key]
	if !ok {
		ks = &keyState{wake: make(chan struct{}, 1)}
		q.keys[key] = ks
		q.wg.Add(1)
		go q.run(key, ks)
	}
	if !ks.busy() {
		q.acquire()
	}
	ks.next = op
	select {
	case ks.wake <- struct{}{}:
	default:
	}
	return nil
}

// acquire/release 维护忙碌键计数，归零时关闭 idle 通知 Flush。调用方需持有 q.mu。
func (q *WriteQueue) acquire() {
	if q.busy == 0 {
		q.idle = make(chan struct{})
	}
	q.busy++
}

func (q *WriteQueue) release() {
	q.busy--
	if q.busy == 0 {
		close(q.idle)
	}
}

func (q *WriteQueue) run(key string, ks *keyState) {
	defer q.wg.Done()
	for {
		select {
		case <-ks.wake:
		case <-q.done:
			return
		}
		for {
			q.mu.Lock()
			op := ks.next
			if op == nil {
				if ks.inflight {
					ks.inflight = false
					q.release()
				}
				q.mu.Unlock()
				break
			}
			ks.next = nil
			ks.inflight = true
			q.mu.Unlock()

			q.apply(key, op)
		}
	}
}

func (q *WriteQueue) apply(key string, op *writeOp) {
	ctx := context.Background()
	var err error
	if op.remove {
		err = q.store.Remove(ctx, key)
	} else {
		err = q.store.Set(ctx, key, op.value)
	}
	if err == nil {
		return
	}
	if q.OnError != nil {
		q.OnError(key, err)
		return
	}
	logger.Warnw("cart_persist_failed", "key", key, "remove", op.remove, "error", err)
}

// Flush 等待所有已提交的写入完成
func (q *WriteQueue) Flush(ctx context.Context) error {
	q.mu.Lock()
	idle := q.idle
	q.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close 落盘剩余写入并停止所有协程，之后的提交返回 ErrQueueClosed
func (q *WriteQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	err := q.Flush(ctx)
	close(q.done)
	q.wg.Wait()
	return err
}
