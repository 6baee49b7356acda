package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// TestPool_KeyOrdering 测试同一键上的任务按提交顺序执行
func TestPool_KeyOrdering(t *testing.T) {
	pool, err := New(Config{Workers: 4, QueueSize: 1024})
	require.NoError(t, err)

	var mu sync.Mutex
	got := make(map[string][]int)
	keys := []string{"group", "peers", "channel"}

	for i := 0; i < 200; i++ {
		for _, key := range keys {
			i, key := i, key
			require.NoError(t, pool.Submit(key, func() {
				mu.Lock()
				got[key] = append(got[key], i)
				mu.Unlock()
			}))
		}
	}
	pool.Close()

	for _, key := range keys {
		require.Len(t, got[key], 200, key)
		for i, v := range got[key] {
			assert.Equal(t, i, v, "键 %s 顺序错乱", key)
		}
	}
}

// TestPool_SameKeySameWorker 测试键到 worker 的映射稳定
func TestPool_SameKeySameWorker(t *testing.T) {
	pool, err := New(DefaultConfig())
	require.NoError(t, err)
	defer pool.Close()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("k%d", i)
		assert.Equal(t, pool.index(key), pool.index(key))
		assert.Less(t, pool.index(key), pool.Workers())
	}
}

// TestPool_QueueFull 测试队列满时丢弃且不阻塞
func TestPool_QueueFull(t *testing.T) {
	var dropped atomic.Int32
	pool, err := New(Config{Workers: 1, QueueSize: 1}, WithDropHook(func(string) { dropped.Add(1) }))
	require.NoError(t, err)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit("k", func() {
		close(started)
		<-block
	}))
	<-started

	require.NoError(t, pool.Submit("k", func() {}))
	assert.ErrorIs(t, pool.Submit("k", func() {}), ErrQueueFull)
	assert.Equal(t, int32(1), dropped.Load())

	close(block)
	pool.Close()
}

// TestPool_SubmitWait 测试队列满时等待空位而不丢弃
func TestPool_SubmitWait(t *testing.T) {
	var dropped atomic.Int32
	pool, err := New(Config{Workers: 1, QueueSize: 1}, WithDropHook(func(string) { dropped.Add(1) }))
	require.NoError(t, err)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit("k", func() {
		close(started)
		<-block
	}))
	<-started
	require.NoError(t, pool.Submit("k", func() {}))

	ran := make(chan struct{})
	submitted := make(chan error, 1)
	go func() {
		submitted <- pool.SubmitWait("k", func() { close(ran) })
	}()

	select {
	case <-submitted:
		t.Fatal("队列满时 SubmitWait 不应返回")
	case <-time.After(30 * time.Millisecond):
	}

	close(block)
	require.NoError(t, <-submitted)
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("等待入队的任务未执行")
	}
	assert.Zero(t, dropped.Load())

	pool.Close()
	assert.ErrorIs(t, pool.SubmitWait("k", func() {}), ErrClosed)
}

// TestPool_Close 测试关闭后拒绝提交且排空已入队任务
func TestPool_Close(t *testing.T) {
	pool, err := New(Config{Workers: 2, QueueSize: 16})
	require.NoError(t, err)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit("k", func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		}))
	}
	pool.Close()
	pool.Close()

	assert.Equal(t, int32(10), ran.Load())
	assert.ErrorIs(t, pool.Submit("k", func() {}), ErrClosed)
}

// TestPool_PanicRecovered 测试任务 panic 不影响 worker
func TestPool_PanicRecovered(t *testing.T) {
	pool, err := New(Config{Workers: 1, QueueSize: 4})
	require.NoError(t, err)

	var ran atomic.Bool
	require.NoError(t, pool.Submit("k", func() { panic("boom") }))
	require.NoError(t, pool.Submit("k", func() { ran.Store(true) }))
	pool.Close()

	assert.True(t, ran.Load())
}

// TestConfig_Validate 测试配置验证
func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.ErrorIs(t, Config{Workers: 0, QueueSize: 1}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Workers: 1, QueueSize: 0}.Validate(), ErrInvalidConfig)

	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

// TestModule 测试 Fx 模块
func TestModule(t *testing.T) {
	var pool *Pool
	app := fxtest.New(t, Module(), fx.Populate(&pool))
	app.RequireStart()
	assert.Equal(t, DefaultConfig().Workers, pool.Workers())
	app.RequireStop()

	assert.ErrorIs(t, pool.Submit("k", func() {}), ErrClosed)
}
