package services

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
)

// PayUService builds hosted-checkout requests for PayU and verifies the
// signed parameters PayU posts back. The gateway owns the card entry page;
// this side only ever sees signed form fields.
type PayUService struct {
	Key     string
	Salt    string
	BaseURL string
}

func NewPayUService(key, salt, baseURL string) *PayUService {
	return &PayUService{Key: key, Salt: salt, BaseURL: baseURL}
}

// NewTxnID mints a fresh transaction id. Every payment attempt gets its own
// id so a retried payment never collides with an earlier attempt at the
// gateway.
func (p *PayUService) NewTxnID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RequestHash signs the outbound payment request. The pipe layout, including
// the run of empty UDF slots, is fixed by the gateway.
func (p *PayUService) RequestHash(txnID, amount, productInfo, firstName, email string) string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s|||||||||||%s",
		p.Key, txnID, amount, productInfo, firstName, email, p.Salt)
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// CallbackParams are the fields PayU posts back that participate in the
// response signature.
type CallbackParams struct {
	Status      string
	Email       string
	FirstName   string
	ProductInfo string
	Amount      string
	TxnID       string
	Hash        string
}

// VerifyCallback recomputes the response hash and compares it to the posted
// one. The response layout reverses the request: salt first, key last.
// Comparison is case-insensitive since gateways differ on hex casing.
func (p *PayUService) VerifyCallback(cb CallbackParams) bool {
	if cb.Hash == "" {
		return false
	}
	payload := fmt.Sprintf("%s|%s|||||||||||%s|%s|%s|%s|%s|%s",
		p.Salt, cb.Status, cb.Email, cb.FirstName, cb.ProductInfo, cb.Amount, cb.TxnID, p.Key)
	sum := sha512.Sum512([]byte(payload))
	return strings.EqualFold(hex.EncodeToString(sum[:]), cb.Hash)
}

// PaymentFormParams carries everything the hosted-checkout form needs.
type PaymentFormParams struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
	SuccessURL  string
	FailureURL  string
}

var paymentFormTmpl = template.Must(template.New("payu").Parse(`<html>
<body onload="document.forms['payuForm'].submit()">
<form action="{{.Action}}" method="post" name="payuForm">
<input type="hidden" name="key" value="{{.Key}}"/>
<input type="hidden" name="txnid" value="{{.TxnID}}"/>
<input type="hidden" name="amount" value="{{.Amount}}"/>
<input type="hidden" name="productinfo" value="{{.ProductInfo}}"/>
<input type="hidden" name="firstname" value="{{.FirstName}}"/>
<input type="hidden" name="email" value="{{.Email}}"/>
<input type="hidden" name="phone" value="{{.Phone}}"/>
<input type="hidden" name="surl" value="{{.SuccessURL}}"/>
<input type="hidden" name="furl" value="{{.FailureURL}}"/>
<input type="hidden" name="hash" value="{{.Hash}}"/>
<noscript><input type="submit" value="Continue to payment"/></noscript>
</form>
</body>
</html>`))

// PaymentForm renders a self-submitting HTML form that hands the browser to
// the gateway. The hash is computed here so the key and salt never leave the
// server except inside the signed request.
func (p *PayUService) PaymentForm(fp PaymentFormParams) (string, error) {
	data := struct {
		PaymentFormParams
		Action string
		Key    string
		Hash   string
	}{
		PaymentFormParams: fp,
		Action:            p.BaseURL,
		Key:               p.Key,
		Hash:              p.RequestHash(fp.TxnID, fp.Amount, fp.ProductInfo, fp.FirstName, fp.Email),
	}

	var b strings.Builder
	if err := paymentFormTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
