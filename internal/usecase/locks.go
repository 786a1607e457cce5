package usecase

import "sync"

// 倉庫ごとの排他ロック。
// load→mutate→saveの間に別のリクエストが同じ倉庫を書き換えると
// 更新が失われるので、倉庫idごとに直列化する。
type warehouseLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newWarehouseLocks() *warehouseLocks {
	return &warehouseLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *warehouseLocks) lock(warehouseID string) func() {
	l.mu.Lock()
	m, ok := l.locks[warehouseID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[warehouseID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
