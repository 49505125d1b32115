package locker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	guard := NewGuard(l)
	require.NoError(t, guard.Lock(ctx, StoreKey("Toko X")))
	require.NoError(t, guard.Lock(ctx, CustomerKey("s1", "Budi")))

	// enquanto o guard segura, outra tentativa expira
	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err := l.Obtain(waitCtx, StoreKey("toko x"))
	assert.ErrorIs(t, err, ErrNotObtained)

	cancelled, cancelNow := context.WithCancel(ctx)
	cancelNow()
	guard.Release(cancelled)

	lock, err := l.Obtain(ctx, StoreKey("toko x"))
	require.NoError(t, err)
	assert.NoError(t, lock.Release(ctx))
}
