package wire

import "errors"

var (
	// ErrMalformed 报文格式错误
	ErrMalformed = errors.New("wire: malformed envelope")

	// ErrUnknownType 未知报文类型
	ErrUnknownType = errors.New("wire: unknown envelope type")
)
