package model

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// 名前の最大文字数
const maxNameLength = 64

// ValidationErrorは「どのフィールドが」「どんな値で」「何を期待していたか」を持つ。
type ValidationError struct {
	Path     string
	Value    interface{}
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("expected %s for path %s, got %v instead", e.Expected, e.Path, e.Value)
}

func newValidationError(path string, value interface{}, expected string) error {
	return &ValidationError{Path: path, Value: value, Expected: expected}
}

// ValidateSizeは各辺が正の有限数であることを確認する。
func ValidateSize(size Size) error {
	if !isValidDimension(size.Width) {
		return newValidationError("size.width", size.Width, "valid dimension")
	}
	if !isValidDimension(size.Height) {
		return newValidationError("size.height", size.Height, "valid dimension")
	}
	if !isValidDimension(size.Length) {
		return newValidationError("size.length", size.Length, "valid dimension")
	}
	return nil
}

func isValidDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// ValidateNameは空白を除いて1〜64文字であることを確認する。
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxNameLength {
		return newValidationError("name", name, "non-empty string up to 64 chars")
	}
	return nil
}

// ValidateQuantityは正の整数であることを確認する。
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return newValidationError("quantity", quantity, "positive integer")
	}
	return nil
}

// ValidateDateはゼロ値でない日時であることを確認する。
func ValidateDate(date time.Time) error {
	if date.IsZero() {
		return newValidationError("date", date, "valid date")
	}
	return nil
}
