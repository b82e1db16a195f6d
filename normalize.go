package neutronpay

// fixedSourceOfFunds is the representative declaration attached to fiat
// payouts. The remote schema supports richer enumerations; this client pins
// one set.
var fixedSourceOfFunds = SourceOfFunds{Purpose: 1, Source: 5, Relationship: 3}

// BuildTransactionRequest maps a TransactionIntent onto the canonical
// transaction-creation body. It is a pure structural assembly: detail fields
// are copied verbatim when present, the KYC and source-of-funds blocks are
// derived from which fields the intent carries, and an unset amount stays an
// absent key on the wire. Currency/method compatibility and the
// single-sided-amount rule are enforced remotely, not here.
func BuildTransactionRequest(intent TransactionIntent) TransactionRequest {
	details := ReqDetails{
		PaymentRequest:  intent.PaymentRequest,
		Lnurl:           intent.Lnurl,
		Address:         intent.Address,
		BankAcctNum:     intent.BankAcctNum,
		InstitutionCode: intent.InstitutionCode,
	}

	var kyc *KYC
	if intent.RecipientName != "" || intent.CountryCode != "" {
		kycType := intent.KycType
		if kycType == "" {
			kycType = "individual"
		}
		kyc = &KYC{
			Type: kycType,
			Details: KYCDetails{
				LegalFullName: intent.RecipientName,
				CountryCode:   intent.CountryCode,
			},
		}
	}

	// A bank account number is the signal for a fiat payout, which must
	// carry a source-of-funds declaration.
	var sourceOfFunds *SourceOfFunds
	if intent.BankAcctNum != "" {
		sof := fixedSourceOfFunds
		sourceOfFunds = &sof
	}

	return TransactionRequest{
		ExtRefID: intent.ExtRefID,
		SourceReq: TransactionSide{
			Ccy:          intent.SourceCcy,
			Method:       intent.SourceMethod,
			AmtRequested: intent.SourceAmount,
		},
		DestReq: TransactionSide{
			Ccy:          intent.DestCcy,
			Method:       intent.DestMethod,
			AmtRequested: intent.DestAmount,
			ReqDetails:   details,
			KYC:          kyc,
		},
		SourceOfFunds: sourceOfFunds,
	}
}
