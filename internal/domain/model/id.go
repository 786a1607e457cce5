package model

import "github.com/google/uuid"

// NewIDはエンティティ用の一意なIDを作る。
func NewID() string {
	return uuid.NewString()
}
