package paramexp

import "errors"

// ═══════════════════════════════════════════════════════════════════════════
// 语法错误
// ═══════════════════════════════════════════════════════════════════════════

// 四类终止性语法错误。展开遇到任一错误立即中止，不返回部分结果。
// 使用 errors.Is 判别，错误消息携带出错的引用或记号。
var (
	// ErrUnterminatedBrace "${" 已打开但输入结束前未出现匹配的 "}"。
	ErrUnterminatedBrace = errors.New(`"{" was never closed`)

	// ErrBadSubstitution 单段切片的 offset 记号既非字母数字也非整数。
	ErrBadSubstitution = errors.New("bad substitution")

	// ErrOperandExpected 两段切片的 length 记号非空、非纯字母，却不是合法整数。
	ErrOperandExpected = errors.New("operand expected")

	// ErrNegativeLength 切片 length 解析为负整数。
	ErrNegativeLength = errors.New("substring expression < 0")
)
