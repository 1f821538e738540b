package utils

import (
	"fmt"
	"github.com/google/uuid"
	"strconv"
)

func P[T any](v T) *T {
	return &v
}

// ParseID 解析路径中的数据库 ID
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return uint(id), nil
}

// ParseUUID 解析路径中子项的 ID ，不区分大小写
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid %q: %w", s, err)
	}
	return id, nil
}
