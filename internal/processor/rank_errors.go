package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrInvalidJob      = errors.New("岗位信息无效")
	ErrEmbeddingFailed = errors.New("文本向量化失败")
	ErrModelLoadFailed = errors.New("加载向量模型失败")
)

// RankError 包含详细错误信息的自定义错误
type RankError struct {
	CandidateID string
	Op          string
	BaseErr     error
	Detail      string
}

func (e *RankError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 候选人:%s): %s", e.BaseErr, e.Op, e.CandidateID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 候选人:%s)", e.BaseErr, e.Op, e.CandidateID)
}

func (e *RankError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *RankError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewInvalidJobError(detail string) error {
	return &RankError{
		Op:      "validate",
		BaseErr: ErrInvalidJob,
		Detail:  detail,
	}
}

func NewEmbeddingError(candidateID, detail string) error {
	return &RankError{
		CandidateID: candidateID,
		Op:          "embed",
		BaseErr:     ErrEmbeddingFailed,
		Detail:      detail,
	}
}

func NewModelLoadError(detail string) error {
	return &RankError{
		Op:      "load_model",
		BaseErr: ErrModelLoadFailed,
		Detail:  detail,
	}
}
