package lock

import (
	"context"
	"sync"
	"time"
)

const pollInterval = 50 * time.Millisecond

var lockMap sync.Map

// WithDelay выполняет safeCode под именованной блокировкой. Занятый
// ключ опрашивается до истечения wait или отмены контекста, в этом
// случае возвращается success=false без ошибки.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-timeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(pollInterval):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
