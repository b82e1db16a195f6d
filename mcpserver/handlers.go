package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/neutronpay/neutronpay-mcp-go"
)

// Handlers narrow the untyped tool arguments into typed requests at the
// boundary, call the core client, and convert every failure into a tool
// error result. Callers never observe a crashed session.

func strArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func numArg(args map[string]interface{}, key string) (float64, bool) {
	v, ok := args[key].(float64)
	return v, ok
}

func objArg(args map[string]interface{}, key string) map[string]interface{} {
	v, _ := args[key].(map[string]interface{})
	return v
}

func strSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// jsonResult serializes a success payload as pretty-printed JSON text.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errResult converts any error into a structured tool failure.
func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) handleGetAccount(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := s.np.GetAccount(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(account)
}

func (s *Server) handleGetBalances(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	balances, err := s.np.GetBalances(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(balances)
}

func (s *Server) handleVerifyCredentials(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID, err := s.np.VerifyCredentials(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(map[string]string{"accountId": accountID, "status": "authenticated"})
}

func (s *Server) handleGetRate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	rate, err := s.np.GetRate(ctx, strArg(args, "sourceCcy"), strArg(args, "destCcy"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(rate)
}

func (s *Server) handleListFiatInstitutions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	institutions, err := s.np.ListFiatInstitutions(ctx, strArg(args, "countryCode"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(institutions)
}

func (s *Server) handleGetOnchainAddress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	address, err := s.np.GetOnchainAddress(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(address)
}

func (s *Server) handleGetStablecoinAddress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	address, err := s.np.GetStablecoinAddress(ctx, strArg(args, "network"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(address)
}

func (s *Server) handleListTransactions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	opts := neutronpay.ListTransactionsOptions{Status: strArg(args, "status")}
	if limit, ok := numArg(args, "limit"); ok {
		opts.Limit = int(limit)
	}
	if offset, ok := numArg(args, "offset"); ok {
		opts.Offset = int(offset)
	}
	txns, err := s.np.ListTransactions(ctx, opts)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(txns)
}

func (s *Server) handleGetTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	txn, err := s.np.GetTransaction(ctx, strArg(args, "txnId"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(txn)
}

// intentFromArgs narrows the tool arguments into a TransactionIntent. Unset
// amounts stay nil so they are omitted from the wire body.
func intentFromArgs(args map[string]interface{}) neutronpay.TransactionIntent {
	intent := neutronpay.TransactionIntent{
		SourceCcy:       strArg(args, "sourceCcy"),
		SourceMethod:    strArg(args, "sourceMethod"),
		DestCcy:         strArg(args, "destCcy"),
		DestMethod:      strArg(args, "destMethod"),
		PaymentRequest:  strArg(args, "paymentRequest"),
		Lnurl:           strArg(args, "lnurl"),
		Address:         strArg(args, "address"),
		BankAcctNum:     strArg(args, "bankAcctNum"),
		InstitutionCode: strArg(args, "institutionCode"),
		RecipientName:   strArg(args, "recipientName"),
		CountryCode:     strArg(args, "countryCode"),
		KycType:         strArg(args, "kycType"),
		ExtRefID:        strArg(args, "extRefId"),
	}
	if amount, ok := numArg(args, "sourceAmount"); ok {
		intent.SourceAmount = &amount
	}
	if amount, ok := numArg(args, "destAmount"); ok {
		intent.DestAmount = &amount
	}
	return intent
}

func (s *Server) handleCreateTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intent := intentFromArgs(req.GetArguments())
	txn, err := s.np.CreateTransaction(ctx, intent)
	if err != nil {
		return errResult(err)
	}
	s.logger.Info().Str("txnId", txn.TxnID).Msg("transaction quoted")
	return jsonResult(txn)
}

func (s *Server) handleConfirmTransaction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	txn, err := s.np.ConfirmTransaction(ctx, strArg(args, "txnId"))
	if err != nil {
		return errResult(err)
	}
	s.logger.Info().Str("txnId", txn.TxnID).Str("status", txn.Status).Msg("transaction confirmed")
	return jsonResult(txn)
}

func (s *Server) handleCreateLightningInvoice(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	amountSats, ok := numArg(args, "amountSats")
	if !ok || amountSats <= 0 {
		return errResult(neutronpay.ErrInvoiceAmountRequired)
	}
	invoice, err := s.np.CreateLightningInvoice(ctx, int64(amountSats), strArg(args, "extRefId"))
	if err != nil {
		return errResult(err)
	}
	s.logger.Info().Str("txnId", invoice.TxnID).Int64("amountSats", invoice.AmountSats).Msg("lightning invoice created")
	return jsonResult(invoice)
}

func (s *Server) handleListWebhooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	webhooks, err := s.np.ListWebhooks(ctx)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(webhooks)
}

func (s *Server) handleCreateWebhook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	webhook, err := s.np.CreateWebhook(ctx, strArg(args, "url"), strSliceArg(args, "eventTypes"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(webhook)
}

func (s *Server) handleDeleteWebhook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if err := s.np.DeleteWebhook(ctx, strArg(args, "webhookId")); err != nil {
		return errResult(err)
	}
	return jsonResult(map[string]string{"status": "deleted"})
}

func (s *Server) handleGetLoanQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	quote, err := s.lending.QuoteLoan(ctx, objArg(req.GetArguments(), "terms"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(quote)
}

func (s *Server) handleCreateLoanDeposit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deposit, err := s.lending.CreateDeposit(ctx, objArg(req.GetArguments(), "request"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(deposit)
}

func (s *Server) handleConfirmLoanCollateral(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.lending.ConfirmCollateral(ctx, strArg(req.GetArguments(), "loanId"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(result)
}

func (s *Server) handleDisburseLoan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.lending.Disburse(ctx, strArg(req.GetArguments(), "loanId"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(result)
}

func (s *Server) handleRepayLoan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	result, err := s.lending.Repay(ctx, strArg(args, "loanId"), objArg(args, "payment"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(result)
}

func (s *Server) handleCheckLoanLiquidation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.lending.CheckLiquidation(ctx, strArg(req.GetArguments(), "loanId"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(result)
}

func (s *Server) handleSettleLoan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.lending.Settle(ctx, strArg(req.GetArguments(), "loanId"))
	if err != nil {
		return errResult(err)
	}
	return jsonResult(result)
}
