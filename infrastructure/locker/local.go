package locker

import (
	"context"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// localLocker é um mutex por chave, válido apenas dentro do processo
type localLocker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewLocalLocker() Locker {
	return &localLocker{entries: make(map[string]*entry)}
}

func (l *localLocker) Obtain(ctx context.Context, key string) (Unlocker, error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return &localLock{locker: l, key: key, entry: e}, nil
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ErrNotObtained
	}
}

func (l *localLocker) unref(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

type localLock struct {
	locker *localLocker
	key    string
	entry  *entry
	once   sync.Once
}

func (lk *localLock) Release(context.Context) error {
	lk.once.Do(func() {
		<-lk.entry.ch
		lk.locker.unref(lk.key, lk.entry)
	})
	return nil
}
