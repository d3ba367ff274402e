package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	//現在statusが期待集合に入っていない（終端からの遷移など）
	ErrInvalidTransition = errors.New("invalid status transition")

	//同じイベントIDが既に記録済み（再配送・同時配送）
	ErrDuplicateEvent = errors.New("event already processed")
)
