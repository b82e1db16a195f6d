// Package neutronpay provides a typed client for the NeutronPay payment
// platform REST API: signature-based session bootstrap, an authenticated
// request dispatcher, and the quote/confirm transaction protocol.
package neutronpay

// DefaultBaseURL is the production NeutronPay API endpoint.
const DefaultBaseURL = "https://api.neutron.me"

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

// Credentials holds the API key pair and base URL supplied once at startup.
// Immutable for the process lifetime.
type Credentials struct {
	// APIKey is the NeutronPay API key identifier.
	APIKey string

	// APISecret is the HMAC secret paired with APIKey.
	APISecret string

	// BaseURL is the API base URL. Empty means DefaultBaseURL.
	BaseURL string
}

// Session is the cached result of a token-signature handshake.
// All authenticated requests share one Session per process.
type Session struct {
	// AccountID is the NeutronPay account the credentials resolve to.
	AccountID string `json:"accountId"`

	// AccessToken is the bearer token for subsequent API calls.
	AccessToken string `json:"accessToken"`

	// ExpiresAt is the token expiry as epoch milliseconds.
	ExpiresAt int64 `json:"expiredAt"`
}

// Payment methods accepted by the transaction endpoints.
const (
	MethodLightning  = "lightning"
	MethodOnchain    = "onchain"
	MethodNeutronpay = "neutronpay"
)

// Transaction lifecycle states. Creation always yields StatusQuoted;
// confirmation is the transition out of it. Terminal states are remote-owned.
const (
	StatusQuoted    = "quoted"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusExpired   = "expired"
)

// TransactionIntent is the caller-facing shape of a payment instruction.
// Exactly which detail fields matter depends on the destination rail: a
// Lightning pay uses PaymentRequest, an LNURL pay uses Lnurl, an on-chain or
// stablecoin send uses Address, and a fiat payout uses BankAcctNum plus
// InstitutionCode and the recipient identity fields.
//
// At most one of SourceAmount/DestAmount should be set; the remote side
// quotes the other. Setting both is not rejected locally and its behavior is
// whatever the remote API decides.
type TransactionIntent struct {
	SourceCcy    string
	SourceMethod string
	SourceAmount *float64

	DestCcy    string
	DestMethod string
	DestAmount *float64

	// Rail-specific destination details, copied verbatim when present.
	PaymentRequest  string
	Lnurl           string
	Address         string
	BankAcctNum     string
	InstitutionCode string

	// Recipient identity for regulated fiat payouts. Presence of either
	// RecipientName or CountryCode triggers a KYC block; KycType defaults
	// to "individual" when empty.
	RecipientName string
	CountryCode   string
	KycType       string

	// ExtRefID is an optional caller-side correlation token.
	ExtRefID string
}

// ReqDetails carries rail-specific request details on either side of a
// transaction. On responses the remote fills in fields the client never
// sends, such as the invoice string and QR page for a Lightning receive.
type ReqDetails struct {
	PaymentRequest  string `json:"paymentRequest,omitempty"`
	Lnurl           string `json:"lnurl,omitempty"`
	Address         string `json:"address,omitempty"`
	BankAcctNum     string `json:"bankAcctNum,omitempty"`
	InstitutionCode string `json:"institutionCode,omitempty"`
	QRURL           string `json:"qrUrl,omitempty"`
}

// KYCDetails identifies the recipient of a regulated payout.
type KYCDetails struct {
	LegalFullName string `json:"legalFullName,omitempty"`
	CountryCode   string `json:"countryCode,omitempty"`
}

// KYC is the recipient identity block attached to a destination request.
type KYC struct {
	// Type is "individual" or "business".
	Type    string     `json:"type"`
	Details KYCDetails `json:"details"`
}

// SourceOfFunds declares the origin of funds for a fiat payout. The values
// are a fixed representative set; the remote schema supports richer
// enumerations that this client does not model.
type SourceOfFunds struct {
	Purpose      int `json:"purpose"`
	Source       int `json:"source"`
	Relationship int `json:"relationship"`
}

// TransactionSide is one leg of a canonical transaction request.
// AmtRequested is a pointer so an unset amount is omitted from the wire body
// entirely; the remote API treats an explicit amount differently from an
// absent key.
type TransactionSide struct {
	Ccy          string     `json:"ccy"`
	Method       string     `json:"method"`
	AmtRequested *float64   `json:"amtRequested,omitempty"`
	ReqDetails   ReqDetails `json:"reqDetails"`
	KYC          *KYC       `json:"kyc,omitempty"`
}

// TransactionRequest is the canonical transaction-creation body produced by
// BuildTransactionRequest and POSTed to the transaction endpoint.
type TransactionRequest struct {
	ExtRefID      string          `json:"extRefId,omitempty"`
	SourceReq     TransactionSide `json:"sourceReq"`
	DestReq       TransactionSide `json:"destReq"`
	SourceOfFunds *SourceOfFunds  `json:"sourceOfFunds,omitempty"`
}

// TransactionLeg is one leg of a remote-owned transaction as it comes back
// from the API.
type TransactionLeg struct {
	Ccy        string     `json:"ccy"`
	Method     string     `json:"method"`
	Amt        float64    `json:"amt,omitempty"`
	ReqDetails ReqDetails `json:"reqDetails"`
}

// Transaction is the remote-owned transaction record. Creation yields a
// quoted transaction; confirmation is keyed by TxnID.
type Transaction struct {
	TxnID     string         `json:"txnId"`
	Status    string         `json:"status,omitempty"`
	ExtRefID  string         `json:"extRefId,omitempty"`
	Rate      float64        `json:"rate,omitempty"`
	SourceReq TransactionLeg `json:"sourceReq"`
	DestReq   TransactionLeg `json:"destReq"`
}

// LightningInvoice is the result of the create-and-confirm receive shortcut.
type LightningInvoice struct {
	TxnID          string  `json:"txnId"`
	ExtRefID       string  `json:"extRefId,omitempty"`
	AmountSats     int64   `json:"amountSats"`
	AmountBTC      float64 `json:"amountBtc"`
	PaymentRequest string  `json:"paymentRequest"`
	QRURL          string  `json:"qrUrl,omitempty"`
}

// Webhook is a registered event subscription.
type Webhook struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	EventTypes []string `json:"eventTypes,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
}
