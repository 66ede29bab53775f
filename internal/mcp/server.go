// Package mcp exposes the policy navigator as an MCP tool server so agent
// platforms can drive it.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/policynav/policynav/internal/navigator"
)

const serverInstructions = `Policy Navigator provides government regulation research tools.

Use search_policies for Federal Register term searches, check_policy_status
to determine whether a regulation or executive order is still in effect
(with related case law), analyze_compliance for business compliance
requirements, and the document tools (index_url, upload_document,
search_indexed) to build and query a local document collection.`

// Config contains server configuration.
type Config struct {
	Navigator *navigator.Navigator
	Logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "policy-navigator",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Navigator)

	return server
}
