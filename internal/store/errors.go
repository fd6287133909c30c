package store

import (
	"errors"
	"fmt"

	"innovation-hub/internal/model"
)

var (
	ErrNotFound = errors.New("store: record not found")
	ErrConflict = errors.New("store: record already exists")
	ErrInvalid  = errors.New("store: invalid record")
)

// WriteError 写操作失败，Err 为根因。存储状态保持调用前的样子
type WriteError struct {
	Op  string
	ID  string
	Err error
}

func (e *WriteError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Fail 构造写错误；err 已经是 *WriteError 时原样返回
func Fail(op, id string, err error) error {
	if err == nil {
		return nil
	}
	var we *WriteError
	if errors.As(err, &we) {
		return err
	}
	return &WriteError{Op: op, ID: id, Err: err}
}

// AlreadyInEvent 违反每个事件只能加入一个团队的约束
func AlreadyInEvent() error {
	return fmt.Errorf("%w: %w", ErrConflict, model.ErrTeamPerEvent)
}

// Invalid 将校验错误归入 ErrInvalid，同时保留原始原因
func Invalid(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, cause)
}
