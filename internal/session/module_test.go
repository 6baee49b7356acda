package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-lobby/internal/core/dispatch"
	"github.com/dep2p/go-lobby/internal/core/eventbus"
	"github.com/dep2p/go-lobby/internal/overlay/memnet"
	"github.com/dep2p/go-lobby/pkg/interfaces"
	"github.com/dep2p/go-lobby/pkg/types"
)

// TestModule 测试 Fx 模块装配并在停止时关闭协调器
func TestModule(t *testing.T) {
	net := memnet.NewNetwork()
	node := net.NewNode("urn:a", "alice")

	var c *Coordinator
	var bus *eventbus.Bus
	app := fxtest.New(t,
		eventbus.Module(),
		dispatch.Module(),
		fx.Supply(testConfig()),
		fx.Provide(
			func() interfaces.Directory { return node },
			func() interfaces.ChannelService { return node },
		),
		Module(),
		fx.Populate(&c, &bus),
	)
	app.RequireStart()

	assert.Same(t, bus, c.Bus())
	require.NoError(t, c.Start(context.Background()))
	require.Eventually(t, c.IsReady, waitFor, 5*time.Millisecond)

	app.RequireStop()
	assert.Equal(t, types.SessionStopped, c.State())
	assert.False(t, node.Started())
}
