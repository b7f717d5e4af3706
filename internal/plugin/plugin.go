// Package plugin exposes the extension points for out-of-process engines
// and policy checks.
package plugin

import (
	"context"

	"github.com/hashicorp/go-plugin"

	"github.com/autoearnpro/autoearnpro/internal/engine"
	"github.com/autoearnpro/autoearnpro/internal/guard"
	"github.com/autoearnpro/autoearnpro/internal/mission"
)

// HandshakeConfig is used to handshake between host and plugin.
var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "AUTOEARNPRO_PLUGIN_MAGIC_COOKIE",
	MagicCookieValue: "autoearnpro-runtime",
}

// Plugin defines the handshake and capabilities.
type Plugin interface {
	Name() string
	Version() string
	Type() PluginType
}

type PluginType string

const (
	PluginTypeEngine  PluginType = "engine"
	PluginTypeGuard   PluginType = "guard"
	PluginTypeMission PluginType = "mission"
)

// EnginePlugin allows external earning engines to join the fleet.
type EnginePlugin interface {
	Plugin
	Category() string
	Cycle(ctx context.Context, task engine.Task) (*engine.Report, error)
}

// GuardPlugin allows external policy enforcement.
type GuardPlugin interface {
	Plugin
	Check(ctx context.Context, action string, context map[string]interface{}) (*guard.Violation, error)
}

// MissionPlugin allows external mission validation logic.
type MissionPlugin interface {
	Plugin
	Validate(ctx context.Context, spec mission.Spec) (mission.ValidationResult, error)
}
