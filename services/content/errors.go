package content

import "errors"

var (
	ErrModuleNotFound  = errors.New("module not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrIndexOutOfRange = errors.New("module index out of range")
)
