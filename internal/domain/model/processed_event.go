package model

import "time"

// 決済プロバイダのイベントIDをそのまま主キーにする。
// 同じIDのINSERTは一意制約で弾かれるので、再配送は二重処理にならない。
type ProcessedEvent struct {
	EventID     string    `gorm:"primaryKey;type:varchar(255)" json:"event_id"`
	EventType   string    `gorm:"type:varchar(100);not null" json:"event_type"`
	OrderID     *int64    `gorm:"index" json:"order_id,omitempty"`
	Outcome     string    `gorm:"type:varchar(30);not null" json:"outcome"`
	ProcessedAt time.Time `gorm:"not null;autoCreateTime" json:"processed_at"`
}
