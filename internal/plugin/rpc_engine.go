package plugin

import (
	"context"
	"net/rpc"

	hcplugin "github.com/hashicorp/go-plugin"

	"github.com/autoearnpro/autoearnpro/internal/engine"
)

// PluginMap is the map of plugins we can dispense.
var PluginMap = map[string]hcplugin.Plugin{
	"engine": &EngineHostPlugin{},
}

// EngineHostPlugin is the implementation of hcplugin.Plugin so we can
// serve and consume engines over RPC.
type EngineHostPlugin struct {
	Impl EnginePlugin
}

func (p *EngineHostPlugin) Server(*hcplugin.MuxBroker) (interface{}, error) {
	return &EngineRPCServer{Impl: p.Impl}, nil
}

func (p *EngineHostPlugin) Client(b *hcplugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &EngineRPCClient{client: c}, nil
}

// DescribeReply carries the engine identity across the wire.
type DescribeReply struct {
	Name     string
	Version  string
	Category string
}

// EngineRPCClient is an implementation of EnginePlugin that talks over RPC.
type EngineRPCClient struct {
	client *rpc.Client
}

func (c *EngineRPCClient) describe() DescribeReply {
	var reply DescribeReply
	_ = c.client.Call("Plugin.Describe", struct{}{}, &reply)
	return reply
}

func (c *EngineRPCClient) Name() string     { return c.describe().Name }
func (c *EngineRPCClient) Version() string  { return c.describe().Version }
func (c *EngineRPCClient) Type() PluginType { return PluginTypeEngine }
func (c *EngineRPCClient) Category() string { return c.describe().Category }

// Cycle dispatches a task to the remote engine. Cancellation does not
// cross the RPC boundary; the remote side runs the task to completion.
func (c *EngineRPCClient) Cycle(ctx context.Context, task engine.Task) (*engine.Report, error) {
	var report engine.Report
	if err := c.client.Call("Plugin.Cycle", task, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// EngineRPCServer is the RPC server that calls the local implementation.
type EngineRPCServer struct {
	Impl EnginePlugin
}

func (s *EngineRPCServer) Describe(_ struct{}, reply *DescribeReply) error {
	*reply = DescribeReply{
		Name:     s.Impl.Name(),
		Version:  s.Impl.Version(),
		Category: s.Impl.Category(),
	}
	return nil
}

func (s *EngineRPCServer) Cycle(task engine.Task, reply *engine.Report) error {
	report, err := s.Impl.Cycle(context.Background(), task)
	if err != nil {
		return err
	}
	*reply = *report
	return nil
}
