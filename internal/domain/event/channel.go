package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// 購読側のコールバック
type Callback func(e Event)

// Channelはプロセス内のpublish/subscribe。
// グローバル変数ではなく、composition rootで作って必要な所に渡す。
// テストでは独立したChannelを作れる。
type Channel struct {
	mu        sync.RWMutex
	callbacks []Callback
}

func NewChannel() *Channel {
	return &Channel{}
}

// Subscribeはコールバックを登録する（プロセス終了まで解除なし）。
func (c *Channel) Subscribe(cb Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callbacks = append(c.callbacks, cb)
}

// Emitはイベントを組み立てて、登録済みの全コールバックを同期的に呼ぶ。
// 配達はat-most-once：コールバック側の失敗はemit元へ伝播させない約束。
func (c *Channel) Emit(eventType Type, data interface{}) {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now(),
	}

	c.mu.RLock()
	callbacks := make([]Callback, len(c.callbacks))
	copy(callbacks, c.callbacks)
	c.mu.RUnlock()

	for _, cb := range callbacks {
		cb(e)
	}
}
