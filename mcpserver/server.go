// Package mcpserver exposes the NeutronPay client and the lending
// collaborator as MCP tools for an AI-agent runtime.
package mcpserver

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/neutronpay/neutronpay-mcp-go"
	"github.com/neutronpay/neutronpay-mcp-go/lending"
)

// Server wraps an MCP server with the NeutronPay tool catalog.
type Server struct {
	mcpServer *mcpserver.MCPServer
	np        *neutronpay.Client
	lending   *lending.Client
	logger    zerolog.Logger
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger attaches a logger to the server.
func WithLogger(l zerolog.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// New creates the MCP server and registers the full tool catalog. The
// lending client may be nil, in which case the lending tools are not
// registered.
func New(name, version string, np *neutronpay.Client, lend *lending.Client, opts ...ServerOption) *Server {
	s := &Server{
		mcpServer: mcpserver.NewMCPServer(name, version),
		np:        np,
		lending:   lend,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(toolGetAccount, s.handleGetAccount)
	s.mcpServer.AddTool(toolGetBalances, s.handleGetBalances)
	s.mcpServer.AddTool(toolVerifyCredentials, s.handleVerifyCredentials)
	s.mcpServer.AddTool(toolGetRate, s.handleGetRate)
	s.mcpServer.AddTool(toolListFiatInstitutions, s.handleListFiatInstitutions)
	s.mcpServer.AddTool(toolGetOnchainAddress, s.handleGetOnchainAddress)
	s.mcpServer.AddTool(toolGetStablecoinAddress, s.handleGetStablecoinAddress)
	s.mcpServer.AddTool(toolListTransactions, s.handleListTransactions)
	s.mcpServer.AddTool(toolGetTransaction, s.handleGetTransaction)
	s.mcpServer.AddTool(toolCreateTransaction, s.handleCreateTransaction)
	s.mcpServer.AddTool(toolConfirmTransaction, s.handleConfirmTransaction)
	s.mcpServer.AddTool(toolCreateLightningInvoice, s.handleCreateLightningInvoice)
	s.mcpServer.AddTool(toolListWebhooks, s.handleListWebhooks)
	s.mcpServer.AddTool(toolCreateWebhook, s.handleCreateWebhook)
	s.mcpServer.AddTool(toolDeleteWebhook, s.handleDeleteWebhook)

	if s.lending == nil {
		return
	}
	s.mcpServer.AddTool(toolGetLoanQuote, s.handleGetLoanQuote)
	s.mcpServer.AddTool(toolCreateLoanDeposit, s.handleCreateLoanDeposit)
	s.mcpServer.AddTool(toolConfirmLoanCollateral, s.handleConfirmLoanCollateral)
	s.mcpServer.AddTool(toolDisburseLoan, s.handleDisburseLoan)
	s.mcpServer.AddTool(toolRepayLoan, s.handleRepayLoan)
	s.mcpServer.AddTool(toolCheckLoanLiquidation, s.handleCheckLoanLiquidation)
	s.mcpServer.AddTool(toolSettleLoan, s.handleSettleLoan)
}

// ServeStdio serves the MCP protocol over stdin/stdout. Logging must go to
// stderr in this mode or it corrupts the transport.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}

// Handler returns the streamable-HTTP MCP handler, for mounting on an HTTP
// router.
func (s *Server) Handler() http.Handler {
	return mcpserver.NewStreamableHTTPServer(s.mcpServer)
}

// MCPServer returns the underlying MCP server (for advanced usage).
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}
