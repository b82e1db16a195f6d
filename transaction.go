package neutronpay

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

const transactionPath = "/api/v2/transaction"

// SatsToBTC converts a whole satoshi amount to BTC.
func SatsToBTC(sats int64) float64 {
	return float64(sats) / SatsPerBTC
}

// BTCToSats converts a BTC amount to satoshis, rounding to the nearest whole
// satoshi. Round-trips exactly with SatsToBTC for any whole-sat amount.
func BTCToSats(btc float64) int64 {
	return int64(math.Round(btc * SatsPerBTC))
}

// CreateTransaction normalizes the intent and POSTs it, returning the
// remote-assigned quoted transaction. The quote is not executed until
// ConfirmTransaction.
func (c *Client) CreateTransaction(ctx context.Context, intent TransactionIntent) (*Transaction, error) {
	body := BuildTransactionRequest(intent)
	var txn Transaction
	if err := c.Do(ctx, http.MethodPost, transactionPath, body, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ConfirmTransaction executes a previously quoted transaction. Idempotency
// and terminal-state transitions are remote-owned; confirming an
// already-confirmed transaction surfaces whatever the remote reports.
func (c *Client) ConfirmTransaction(ctx context.Context, txnID string) (*Transaction, error) {
	var txn Transaction
	path := fmt.Sprintf("%s/%s/confirm", transactionPath, txnID)
	if err := c.Do(ctx, http.MethodPut, path, nil, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransaction fetches a single transaction by ID.
func (c *Client) GetTransaction(ctx context.Context, txnID string) (*Transaction, error) {
	var txn Transaction
	if err := c.Do(ctx, http.MethodGet, transactionPath+"/"+txnID, nil, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactionsOptions filter the transaction listing. Zero values are
// omitted from the query.
type ListTransactionsOptions struct {
	Limit  int
	Offset int
	Status string
}

// ListTransactions returns the account's transaction history as the remote
// reports it.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) (map[string]interface{}, error) {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	path := transactionPath
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out map[string]interface{}
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLightningInvoice creates a Lightning receive for the given satoshi
// amount and confirms it in the same call. A receive has no ambiguity to
// quote against, so the two-phase flow collapses into one. The confirmed
// transaction's invoice string and QR page come back on its source leg.
//
// When extRefID is empty a UUID is generated so the receive stays
// correlatable with webhook events.
func (c *Client) CreateLightningInvoice(ctx context.Context, amountSats int64, extRefID string) (*LightningInvoice, error) {
	if amountSats <= 0 {
		return nil, ErrInvoiceAmountRequired
	}
	if extRefID == "" {
		extRefID = uuid.NewString()
	}

	amountBTC := SatsToBTC(amountSats)
	intent := TransactionIntent{
		SourceCcy:    "BTC",
		SourceMethod: MethodLightning,
		DestCcy:      "BTC",
		DestMethod:   MethodNeutronpay,
		DestAmount:   &amountBTC,
		ExtRefID:     extRefID,
	}

	quoted, err := c.CreateTransaction(ctx, intent)
	if err != nil {
		return nil, err
	}
	confirmed, err := c.ConfirmTransaction(ctx, quoted.TxnID)
	if err != nil {
		return nil, err
	}

	return &LightningInvoice{
		TxnID:          confirmed.TxnID,
		ExtRefID:       extRefID,
		AmountSats:     BTCToSats(amountBTC),
		AmountBTC:      amountBTC,
		PaymentRequest: confirmed.SourceReq.ReqDetails.PaymentRequest,
		QRURL:          confirmed.SourceReq.ReqDetails.QRURL,
	}, nil
}
