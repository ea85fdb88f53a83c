package Byte_String

import (
	"errors"

	"Byte_String/alloc"
)

// ErrOutOfMemory 分配失败
var ErrOutOfMemory = alloc.ErrOutOfMemory

// ErrIndexOutOfRange 下标越界
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrReleased 字符串已释放
var ErrReleased = errors.New("byte string released")
