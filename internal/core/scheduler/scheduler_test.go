package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 辅助
// ============================================================================

const waitTimeout = 2 * time.Second

func testConfig() Config {
	return Config{Period: time.Second, FirstDelay: 200 * time.Millisecond, MaxAttempts: 5}
}

func waitInt(t *testing.T, ch <-chan int, msg string) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatalf("超时等待: %s", msg)
		return 0
	}
}

func expectNone(t *testing.T, ch <-chan int, msg string) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("%s: 收到意外的值 %d", msg, v)
	case <-time.After(50 * time.Millisecond):
	}
}

// ============================================================================
// 有界重试测试
// ============================================================================

// TestScheduler_ProbeBound 测试探测不超过 MaxAttempts 次且 OnExhausted 恰好一次
func TestScheduler_ProbeBound(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	probes := make(chan int, 16)
	exhausted := make(chan int, 4)
	err := s.Start(testConfig(), Task{
		Probe:       func(attempt int) { probes <- attempt },
		OnExhausted: func(attempts int) { exhausted <- attempts },
	})
	require.NoError(t, err)
	assert.True(t, s.Running())

	mock.Add(200 * time.Millisecond)
	assert.Equal(t, 1, waitInt(t, probes, "首次探测"))

	for want := 2; want <= 5; want++ {
		mock.Add(time.Second)
		assert.Equal(t, want, waitInt(t, probes, "周期探测"))
	}

	mock.Add(time.Second)
	assert.Equal(t, 5, waitInt(t, exhausted, "调度结束"))

	mock.Add(10 * time.Second)
	expectNone(t, probes, "结束后不应再探测")
	expectNone(t, exhausted, "OnExhausted 只应调用一次")
	assert.False(t, s.Running())
	assert.Equal(t, 6, s.Attempts())
}

// TestScheduler_DoneStopsEarly 测试 Done 报告完成时提前终止
func TestScheduler_DoneStopsEarly(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	var done atomic.Bool
	probes := make(chan int, 16)
	exhausted := make(chan int, 4)
	require.NoError(t, s.Start(testConfig(), Task{
		Probe: func(attempt int) {
			if attempt == 2 {
				done.Store(true)
			}
			probes <- attempt
		},
		Done:        done.Load,
		OnExhausted: func(attempts int) { exhausted <- attempts },
	}))

	mock.Add(200 * time.Millisecond)
	waitInt(t, probes, "探测 1")
	mock.Add(time.Second)
	waitInt(t, probes, "探测 2")
	mock.Add(time.Second)

	assert.Equal(t, 2, waitInt(t, exhausted, "提前结束"))
	expectNone(t, probes, "完成后不应再探测")
}

// ============================================================================
// 取消测试
// ============================================================================

// TestScheduler_CancelInsideCallback 测试在 Probe 中调用 Cancel
func TestScheduler_CancelInsideCallback(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	probes := make(chan int, 16)
	exhausted := make(chan int, 4)
	require.NoError(t, s.Start(testConfig(), Task{
		Probe: func(attempt int) {
			s.Cancel()
			probes <- attempt
		},
		OnExhausted: func(attempts int) { exhausted <- attempts },
	}))

	mock.Add(200 * time.Millisecond)
	waitInt(t, probes, "探测 1")

	mock.Add(10 * time.Second)
	expectNone(t, probes, "Cancel 后不应再探测")
	expectNone(t, exhausted, "取消时不调用 OnExhausted")
	assert.False(t, s.Running())

	// 重复停止无副作用
	s.Cancel()
	s.Stop()
	s.Stop()
}

// TestScheduler_StopWaitsForInflightTick 测试 Stop 等待进行中的 tick 回调
func TestScheduler_StopWaitsForInflightTick(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	entered := make(chan int, 1)
	release := make(chan struct{})
	var after atomic.Int32
	require.NoError(t, s.Start(testConfig(), Task{
		Probe: func(attempt int) {
			entered <- attempt
			<-release
			after.Add(1)
		},
	}))

	mock.Add(200 * time.Millisecond)
	waitInt(t, entered, "探测 1")

	stopped := make(chan int, 1)
	go func() {
		s.Stop()
		stopped <- int(after.Load())
	}()
	expectNone(t, stopped, "Probe 未结束时 Stop 不应返回")

	close(release)
	assert.Equal(t, 1, waitInt(t, stopped, "Stop 返回"))

	mock.Add(10 * time.Second)
	expectNone(t, entered, "Stop 返回后不应再探测")
}

// TestScheduler_StopBeforeFirstTick 测试首次 tick 前取消
func TestScheduler_StopBeforeFirstTick(t *testing.T) {
	mock := clock.NewMock()
	s := New(mock)

	probes := make(chan int, 1)
	require.NoError(t, s.Start(testConfig(), Task{Probe: func(a int) { probes <- a }}))
	s.Stop()

	mock.Add(time.Minute)
	expectNone(t, probes, "取消后不应探测")
}

// ============================================================================
// 启动约束测试
// ============================================================================

// TestScheduler_StartErrors 测试重复启动与无效配置
func TestScheduler_StartErrors(t *testing.T) {
	s := New(clock.NewMock())

	err := s.Start(Config{Period: 0, MaxAttempts: 1}, Task{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	err = s.Start(Config{Period: time.Second, MaxAttempts: 0}, Task{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
	err = s.Start(Config{Period: time.Second, FirstDelay: -1, MaxAttempts: 1}, Task{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	require.NoError(t, s.Start(testConfig(), Task{}))
	assert.ErrorIs(t, s.Start(testConfig(), Task{}), ErrRunning)

	s.Stop()
	assert.NoError(t, s.Start(testConfig(), Task{}))
	s.Stop()
}

// TestScheduler_RealClock 测试真实时钟下的完整运行与重启
func TestScheduler_RealClock(t *testing.T) {
	s := New(nil)
	cfg := Config{Period: 5 * time.Millisecond, FirstDelay: time.Millisecond, MaxAttempts: 3}

	for round := 0; round < 2; round++ {
		var probes atomic.Int32
		exhausted := make(chan int, 1)
		require.NoError(t, s.Start(cfg, Task{
			Probe:       func(int) { probes.Add(1) },
			OnExhausted: func(attempts int) { exhausted <- attempts },
		}))

		assert.Equal(t, 3, waitInt(t, exhausted, "调度结束"))
		assert.Equal(t, int32(3), probes.Load())
	}
}

// TestDefaultConfig 测试默认配置
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Second, cfg.Period)
	assert.Equal(t, 200*time.Millisecond, cfg.FirstDelay)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}
