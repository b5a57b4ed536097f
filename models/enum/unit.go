package enum

import (
	"errors"
	"fmt"
)

// Unit 表示商品的計量單位
type Unit string

const (
	UnitArea   Unit = "m2" // 面積（平方公尺）
	UnitWeight Unit = "kg" // 重量（公斤）
)

var ErrUnknownUnit = errors.New("unknown unit")

// Valid reports whether u is one of the two recognized tags.
func (u Unit) Valid() bool {
	return u == UnitArea || u == UnitWeight
}

func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}
