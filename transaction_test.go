package neutronpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestSatoshiRoundTrip(t *testing.T) {
	cases := []int64{1, 5000, 10000, 123456789, 100_000_000, 2_100_000_000_000_000}
	for _, sats := range cases {
		btc := SatsToBTC(sats)
		if got := BTCToSats(btc); got != sats {
			t.Errorf("round trip %d sats -> %v BTC -> %d sats", sats, btc, got)
		}
	}
	if got := SatsToBTC(10000); got != 0.0001 {
		t.Errorf("SatsToBTC(10000) = %v, want 0.0001", got)
	}
}

func TestCreateTransactionPostsCanonicalBody(t *testing.T) {
	var captured TransactionRequest
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != transactionPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		json.NewEncoder(w).Encode(Transaction{TxnID: "txn-1", Status: StatusQuoted})
	})

	c := newTestClient(server)
	txn, err := c.CreateTransaction(context.Background(), TransactionIntent{
		SourceCcy: "BTC", SourceMethod: MethodNeutronpay, SourceAmount: floatPtr(0.01),
		DestCcy: "VND", DestMethod: "vnd-instant",
		BankAcctNum: "0123456789", InstitutionCode: "970422",
		RecipientName: "Nguyen Van A", CountryCode: "VN",
	})
	if err != nil {
		t.Fatal(err)
	}
	if txn.TxnID != "txn-1" || txn.Status != StatusQuoted {
		t.Errorf("transaction = %+v", txn)
	}
	if captured.DestReq.ReqDetails.BankAcctNum != "0123456789" {
		t.Error("bank details not forwarded")
	}
	if captured.SourceOfFunds == nil {
		t.Error("sourceOfFunds not forwarded")
	}
}

func TestConfirmTransactionPutsConfirmSubresource(t *testing.T) {
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		if want := transactionPath + "/txn-9/confirm"; r.URL.Path != want {
			t.Errorf("path = %s, want %s", r.URL.Path, want)
		}
		json.NewEncoder(w).Encode(Transaction{TxnID: "txn-9", Status: StatusCompleted})
	})

	c := newTestClient(server)
	txn, err := c.ConfirmTransaction(context.Background(), "txn-9")
	if err != nil {
		t.Fatal(err)
	}
	if txn.Status != StatusCompleted {
		t.Errorf("status = %s", txn.Status)
	}
}

func TestCreateLightningInvoice(t *testing.T) {
	var calls []string
	var createBody TransactionRequest
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == transactionPath:
			if err := json.NewDecoder(r.Body).Decode(&createBody); err != nil {
				t.Fatal(err)
			}
			json.NewEncoder(w).Encode(Transaction{TxnID: "txn-ln", Status: StatusQuoted})
		case r.Method == http.MethodPut && r.URL.Path == transactionPath+"/txn-ln/confirm":
			json.NewEncoder(w).Encode(Transaction{
				TxnID:  "txn-ln",
				Status: StatusCompleted,
				SourceReq: TransactionLeg{
					Ccy:    "BTC",
					Method: MethodLightning,
					ReqDetails: ReqDetails{
						PaymentRequest: "lnbc50u1pinvoice",
						QRURL:          "https://pay.neutron.me/qr/txn-ln",
					},
				},
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	c := newTestClient(server)
	invoice, err := c.CreateLightningInvoice(context.Background(), 5000, "ref-1")
	if err != nil {
		t.Fatal(err)
	}

	// Create then confirm, atomically, in that order.
	want := []string{
		"POST " + transactionPath,
		"PUT " + transactionPath + "/txn-ln/confirm",
	}
	if len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", calls, want)
	}

	// The quote side: lightning source with no amount, neutronpay dest
	// carrying the BTC amount.
	if createBody.SourceReq.Method != MethodLightning || createBody.SourceReq.AmtRequested != nil {
		t.Errorf("sourceReq = %+v", createBody.SourceReq)
	}
	if createBody.DestReq.Method != MethodNeutronpay {
		t.Errorf("destReq method = %s", createBody.DestReq.Method)
	}
	if createBody.DestReq.AmtRequested == nil || *createBody.DestReq.AmtRequested != 0.00005 {
		t.Errorf("destReq amount = %v, want 0.00005", createBody.DestReq.AmtRequested)
	}
	if createBody.ExtRefID != "ref-1" {
		t.Errorf("extRefId = %q", createBody.ExtRefID)
	}

	if invoice.AmountSats != 5000 {
		t.Errorf("amountSats = %d, want 5000", invoice.AmountSats)
	}
	if invoice.PaymentRequest != "lnbc50u1pinvoice" {
		t.Errorf("paymentRequest = %q", invoice.PaymentRequest)
	}
	if invoice.QRURL != "https://pay.neutron.me/qr/txn-ln" {
		t.Errorf("qrUrl = %q", invoice.QRURL)
	}
	if invoice.TxnID != "txn-ln" {
		t.Errorf("txnId = %q", invoice.TxnID)
	}
}

func TestCreateLightningInvoiceGeneratesExtRefID(t *testing.T) {
	var createBody TransactionRequest
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&createBody)
			json.NewEncoder(w).Encode(Transaction{TxnID: "txn-ln", Status: StatusQuoted})
			return
		}
		json.NewEncoder(w).Encode(Transaction{TxnID: "txn-ln", Status: StatusCompleted})
	})

	c := newTestClient(server)
	invoice, err := c.CreateLightningInvoice(context.Background(), 1000, "")
	if err != nil {
		t.Fatal(err)
	}
	if createBody.ExtRefID == "" {
		t.Error("extRefId must be generated when omitted")
	}
	if invoice.ExtRefID != createBody.ExtRefID {
		t.Error("result must echo the generated extRefId")
	}
}

func TestCreateLightningInvoiceRequiresAmount(t *testing.T) {
	c := NewClient(Credentials{APIKey: "k", APISecret: "s", BaseURL: "http://127.0.0.1:0"})
	for _, sats := range []int64{0, -5} {
		if _, err := c.CreateLightningInvoice(context.Background(), sats, ""); !errors.Is(err, ErrInvoiceAmountRequired) {
			t.Errorf("sats=%d: expected ErrInvoiceAmountRequired, got %v", sats, err)
		}
	}
}

func TestCreateLightningInvoiceSurfacesConfirmFailure(t *testing.T) {
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(Transaction{TxnID: "txn-ln", Status: StatusQuoted})
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "quote expired"})
	})

	c := newTestClient(server)
	_, err := c.CreateLightningInvoice(context.Background(), 1000, "")
	if err == nil || !strings.Contains(err.Error(), "quote expired") {
		t.Errorf("expected confirm failure to surface, got %v", err)
	}
}

func TestListTransactionsQuery(t *testing.T) {
	server := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "5" || q.Get("status") != StatusCompleted {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"transactions": []interface{}{}})
	})

	c := newTestClient(server)
	if _, err := c.ListTransactions(context.Background(), ListTransactionsOptions{Limit: 5, Status: StatusCompleted}); err != nil {
		t.Fatal(err)
	}
}
