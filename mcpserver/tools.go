package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the NeutronPay MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var toolGetAccount = mcp.NewTool("get_account",
	mcp.WithDescription("Get the NeutronPay account profile for the configured API credentials."),
)

var toolGetBalances = mcp.NewTool("get_balances",
	mcp.WithDescription("Get the account's balances across all supported currencies (BTC, USDT, fiat)."),
)

var toolVerifyCredentials = mcp.NewTool("verify_credentials",
	mcp.WithDescription(
		"Verify the configured API credentials by forcing a fresh authentication handshake. "+
			"Returns the account ID on success. Use this to diagnose authentication problems."),
)

var toolGetRate = mcp.NewTool("get_rate",
	mcp.WithDescription("Get the current exchange rate for a currency pair, e.g. BTC to VND."),
	mcp.WithString("sourceCcy",
		mcp.Required(),
		mcp.Description("Source currency code (e.g. 'BTC', 'USDT')")),
	mcp.WithString("destCcy",
		mcp.Required(),
		mcp.Description("Destination currency code (e.g. 'VND', 'USD')")),
)

var toolListFiatInstitutions = mcp.NewTool("list_fiat_institutions",
	mcp.WithDescription(
		"List the banks and fiat institutions available for payouts in a country. "+
			"Use the returned institution codes when creating fiat payout transactions."),
	mcp.WithString("countryCode",
		mcp.Required(),
		mcp.Description("ISO country code (e.g. 'VN')")),
)

var toolGetOnchainAddress = mcp.NewTool("get_onchain_address",
	mcp.WithDescription("Get the account's on-chain Bitcoin deposit address."),
)

var toolGetStablecoinAddress = mcp.NewTool("get_stablecoin_address",
	mcp.WithDescription("Get the account's stablecoin deposit address."),
	mcp.WithString("network",
		mcp.Description("Optional network filter (e.g. 'tron', 'ethereum')")),
)

var toolListTransactions = mcp.NewTool("list_transactions",
	mcp.WithDescription("List the account's transaction history, most recent first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of transactions to return")),
	mcp.WithNumber("offset",
		mcp.Description("Number of transactions to skip")),
	mcp.WithString("status",
		mcp.Description("Filter by transaction status"),
		mcp.Enum("quoted", "completed", "failed", "expired")),
)

var toolGetTransaction = mcp.NewTool("get_transaction",
	mcp.WithDescription("Get a single transaction by its ID."),
	mcp.WithString("txnId",
		mcp.Required(),
		mcp.Description("Transaction ID")),
)

var toolCreateTransaction = mcp.NewTool("create_transaction",
	mcp.WithDescription(
		"Create (quote) a payment transaction. Supports Lightning invoice and LNURL payments, "+
			"on-chain Bitcoin and stablecoin sends, fiat bank payouts, and internal currency swaps. "+
			"Set the amount on EXACTLY ONE side; the other side is computed by the quote. "+
			"The returned transaction is only quoted; call confirm_transaction to execute it."),
	mcp.WithString("sourceCcy",
		mcp.Required(),
		mcp.Description("Source currency code (e.g. 'BTC')")),
	mcp.WithString("sourceMethod",
		mcp.Required(),
		mcp.Description("Source payment method (e.g. 'neutronpay', 'lightning', 'onchain')")),
	mcp.WithNumber("sourceAmount",
		mcp.Description("Amount on the source side. Leave unset when destAmount is given.")),
	mcp.WithString("destCcy",
		mcp.Required(),
		mcp.Description("Destination currency code (e.g. 'VND', 'USDT')")),
	mcp.WithString("destMethod",
		mcp.Required(),
		mcp.Description("Destination payment method (e.g. 'lightning', 'onchain', 'vnd-instant')")),
	mcp.WithNumber("destAmount",
		mcp.Description("Amount on the destination side. Leave unset when sourceAmount is given.")),
	mcp.WithString("paymentRequest",
		mcp.Description("BOLT11 Lightning invoice to pay (for Lightning payments)")),
	mcp.WithString("lnurl",
		mcp.Description("LNURL or Lightning address to pay (for LNURL payments)")),
	mcp.WithString("address",
		mcp.Description("On-chain Bitcoin or stablecoin destination address")),
	mcp.WithString("bankAcctNum",
		mcp.Description("Recipient bank account number (for fiat payouts)")),
	mcp.WithString("institutionCode",
		mcp.Description("Recipient bank institution code from list_fiat_institutions")),
	mcp.WithString("recipientName",
		mcp.Description("Recipient's legal full name (required for fiat payouts)")),
	mcp.WithString("countryCode",
		mcp.Description("Recipient's ISO country code (e.g. 'VN')")),
	mcp.WithString("kycType",
		mcp.Description("Recipient type for KYC"),
		mcp.Enum("individual", "business")),
	mcp.WithString("extRefId",
		mcp.Description("Optional external reference ID for correlation")),
)

var toolConfirmTransaction = mcp.NewTool("confirm_transaction",
	mcp.WithDescription(
		"Confirm and execute a previously quoted transaction. "+
			"Quotes expire, so confirm promptly after create_transaction."),
	mcp.WithString("txnId",
		mcp.Required(),
		mcp.Description("Transaction ID returned by create_transaction")),
)

var toolCreateLightningInvoice = mcp.NewTool("create_lightning_invoice",
	mcp.WithDescription(
		"Create a Lightning invoice to receive bitcoin into the NeutronPay account. "+
			"Creates and confirms the receive in one step and returns the BOLT11 invoice "+
			"string plus a QR page URL."),
	mcp.WithNumber("amountSats",
		mcp.Required(),
		mcp.Description("Amount to receive, in satoshis")),
	mcp.WithString("extRefId",
		mcp.Description("Optional external reference ID; generated when omitted")),
)

var toolListWebhooks = mcp.NewTool("list_webhooks",
	mcp.WithDescription("List the account's registered webhook subscriptions."),
)

var toolCreateWebhook = mcp.NewTool("create_webhook",
	mcp.WithDescription("Register a webhook URL to receive transaction lifecycle events."),
	mcp.WithString("url",
		mcp.Required(),
		mcp.Description("HTTPS endpoint to deliver events to")),
	mcp.WithArray("eventTypes",
		mcp.Description("Event types to subscribe to; all events when omitted"),
		mcp.Items(map[string]interface{}{"type": "string"})),
)

var toolDeleteWebhook = mcp.NewTool("delete_webhook",
	mcp.WithDescription("Delete a webhook subscription."),
	mcp.WithString("webhookId",
		mcp.Required(),
		mcp.Description("Webhook ID from list_webhooks")),
)

// Lending tools. The lending service is a separate collaborator; these tools
// pass terms through and relay its responses unchanged.

var toolGetLoanQuote = mcp.NewTool("get_loan_quote",
	mcp.WithDescription(
		"Get a quote for a bitcoin-collateralized loan: required collateral, "+
			"LTV, interest and repayment schedule."),
	mcp.WithObject("terms",
		mcp.Required(),
		mcp.Description("Loan terms, e.g. {\"principalUsd\": 1000, \"termMonths\": 6}")),
)

var toolCreateLoanDeposit = mcp.NewTool("create_loan_deposit",
	mcp.WithDescription(
		"Create the multisig collateral deposit for a quoted loan. "+
			"Returns the deposit address the collateral must be sent to."),
	mcp.WithObject("request",
		mcp.Required(),
		mcp.Description("Deposit request including the quote ID")),
)

var toolConfirmLoanCollateral = mcp.NewTool("confirm_loan_collateral",
	mcp.WithDescription("Confirm that the loan's collateral deposit has been funded on-chain."),
	mcp.WithString("loanId",
		mcp.Required(),
		mcp.Description("Loan ID")),
)

var toolDisburseLoan = mcp.NewTool("disburse_loan",
	mcp.WithDescription("Disburse a collateralized loan after the collateral is confirmed."),
	mcp.WithString("loanId",
		mcp.Required(),
		mcp.Description("Loan ID")),
)

var toolRepayLoan = mcp.NewTool("repay_loan",
	mcp.WithDescription("Record a repayment against an active loan."),
	mcp.WithString("loanId",
		mcp.Required(),
		mcp.Description("Loan ID")),
	mcp.WithObject("payment",
		mcp.Description("Repayment details, e.g. {\"amountUsd\": 250}")),
)

var toolCheckLoanLiquidation = mcp.NewTool("check_loan_liquidation",
	mcp.WithDescription("Check a loan's collateral health and liquidation status."),
	mcp.WithString("loanId",
		mcp.Required(),
		mcp.Description("Loan ID")),
)

var toolSettleLoan = mcp.NewTool("settle_loan",
	mcp.WithDescription("Settle a matured or liquidated loan and release remaining collateral."),
	mcp.WithString("loanId",
		mcp.Required(),
		mcp.Description("Loan ID")),
)
