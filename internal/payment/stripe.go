package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// metadata経由でOrder IDを往復させる。このキーを失うと照合不能になる
const metadataOrderIDKey = "order_id"

// Stripeのイベントtype
const (
	eventTypeCheckoutCompleted = "checkout.session.completed"
	eventTypePaymentFailed     = "checkout.session.async_payment_failed"
	eventTypeCheckoutExpired   = "checkout.session.expired"
)

type StripeGateway struct {
	sessions   *session.Client
	successURL string
	cancelURL  string
	currency   string
}

func NewStripeGateway(apiKey string, timeout time.Duration, successURL, cancelURL, currency string) *StripeGateway {
	backends := stripe.NewBackends(&http.Client{Timeout: timeout})
	return &StripeGateway{
		sessions:   &session.Client{B: backends.API, Key: apiKey},
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   currency,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(it.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(g.currency),
				UnitAmount: stripe.Int64(it.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
			},
		})
	}

	orderID := strconv.FormatInt(req.OrderID, 10)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(orderID),
		LineItems:         lineItems,
	}
	params.Context = ctx
	params.AddMetadata(metadataOrderIDKey, orderID)

	//同じOrderのリトライは同じセッションを返させる
	params.SetIdempotencyKey("order-" + orderID)

	sess, err := g.sessions.New(params)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) {
			return Session{}, &GatewayError{Code: string(sErr.Code), Message: sErr.Msg, Err: err}
		}
		return Session{}, &GatewayError{Message: "provider unreachable", Err: err}
	}

	return Session{ID: sess.ID, URL: sess.URL}, nil
}

type StripeWebhookVerifier struct {
	secret string
}

// secretは構築時に注入する（ambientなグローバルからは読まない）
func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: secret}
}

func (v *StripeWebhookVerifier) Verify(payload []byte, sigHeader string) (VerifiedEvent, error) {
	//ConstructEventは署名（HMAC-SHA256 + タイムスタンプ許容幅）を検証してからparseする
	event, err := webhook.ConstructEvent(payload, sigHeader, v.secret)
	if err != nil {
		if isSignatureError(err) {
			return VerifiedEvent{}, fmt.Errorf("%w: %v", ErrBadSignature, err)
		}
		return VerifiedEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	ve := VerifiedEvent{
		ID:   event.ID,
		Type: string(event.Type),
		Kind: kindOf(string(event.Type)),
	}
	if ve.ID == "" {
		return VerifiedEvent{}, fmt.Errorf("%w: missing event id", ErrMalformedPayload)
	}

	if ve.Kind == EventUnknown {
		return ve, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return VerifiedEvent{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	orderID, err := orderIDOf(cs)
	if err != nil {
		//相関の欠落は連携バグ。回復不能として弾く
		return VerifiedEvent{}, err
	}
	ve.OrderID = orderID

	return ve, nil
}

func isSignatureError(err error) bool {
	return errors.Is(err, webhook.ErrNotSigned) ||
		errors.Is(err, webhook.ErrInvalidHeader) ||
		errors.Is(err, webhook.ErrNoValidSignature) ||
		errors.Is(err, webhook.ErrTooOld)
}

func kindOf(eventType string) EventKind {
	switch eventType {
	case eventTypeCheckoutCompleted:
		return EventCheckoutCompleted
	case eventTypePaymentFailed:
		return EventPaymentFailed
	case eventTypeCheckoutExpired:
		return EventCheckoutExpired
	default:
		return EventUnknown
	}
}

// metadata優先、無ければclient_reference_id
func orderIDOf(cs stripe.CheckoutSession) (int64, error) {
	raw := cs.Metadata[metadataOrderIDKey]
	if raw == "" {
		raw = cs.ClientReferenceID
	}
	if raw == "" {
		return 0, fmt.Errorf("%w: missing order correlation metadata", ErrMalformedPayload)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad order id %q", ErrMalformedPayload, raw)
	}
	return id, nil
}
