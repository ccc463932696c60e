package factory

import (
	"time"

	"github.com/Dima4663737373/MicroSlither.io/internal/dependencies/mocks"
	"github.com/Dima4663737373/MicroSlither.io/internal/model"
	"github.com/Dima4663737373/MicroSlither.io/internal/storage/memory"
	"github.com/Dima4663737373/MicroSlither.io/internal/testutil"
	memorytransport "github.com/Dima4663737373/MicroSlither.io/internal/transport/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// TestCluster holds a set of shards connected over an in-process network,
// all sharing a single mock clock
type TestCluster struct {
	Network   *memorytransport.Network
	MockClock *mocks.MockClock
}

// NewTestCluster creates an empty cluster for multi-shard tests
func NewTestCluster() *TestCluster {
	return &TestCluster{
		Network:   memorytransport.NewNetwork(),
		MockClock: mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
}

// AddShard creates a shard App attached to the cluster network
func (c *TestCluster) AddShard(id model.ShardID) *TestApp {
	logger := testutil.NopLogger()
	store := memory.New()
	tr := c.Network.NewTransport(id, logger)

	app := newWithDependencies(store, c.MockClock, tr, id, logger)
	c.Network.Register(id, app.Router)

	return &TestApp{
		App:       app,
		MockClock: c.MockClock,
	}
}

// NewTestApp creates a single-shard App configured for testing with mocked
// dependencies and an in-process transport
func NewTestApp() *TestApp {
	return NewTestCluster().AddShard("shard-local")
}
