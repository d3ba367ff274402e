package payment

import (
	"context"
	"errors"
	"fmt"
)

// Gateway/Webhookで使うエラー
var (
	//署名検証に失敗。payloadは一切信用しない（ログにも出さない）
	ErrBadSignature = errors.New("webhook signature verification failed")

	//署名は正しいがenvelopeとして解釈できない
	ErrMalformedPayload = errors.New("webhook payload malformed")
)

// プロバイダ呼び出しの失敗。呼び出し側がリトライを判断する。
type GatewayError struct {
	Code    string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment gateway: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("payment gateway: %s", e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type LineItem struct {
	Name       string
	UnitAmount int64 //最小通貨単位のスナップショット価格
	Quantity   int64
}

type SessionRequest struct {
	OrderID int64
	Items   []LineItem
}

type Session struct {
	ID  string
	URL string
}

// 外部決済プロバイダのhosted checkoutセッションを作る。
// 同じOrderに対するリトライはプロバイダ側のidempotency keyで同一セッションに畳む。
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}

// 既知イベントの閉じたバリアント。未知の型はEventUnknownに落とす
type EventKind int

const (
	EventUnknown EventKind = iota
	EventCheckoutCompleted
	EventPaymentFailed
	EventCheckoutExpired
)

// 署名検証を通過したイベント。OrderIDはmetadataから復元した相関キー
//（EventUnknownのときは0）。
type VerifiedEvent struct {
	ID      string
	Kind    EventKind
	Type    string //プロバイダの生のtype（ログ用）
	OrderID int64
}

// 生のリクエストボディと署名ヘッダからVerifiedEventを作る。
// 署名→parseの順で、どちらかが失敗したらそこで打ち切る（fail closed）。
type WebhookVerifier interface {
	Verify(payload []byte, sigHeader string) (VerifiedEvent, error)
}
