package paramexp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ═══════════════════════════════════════════════════════════════════════════
// 字符分类与整数解析
// ═══════════════════════════════════════════════════════════════════════════

func isNameRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			return false
		}
	}

	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !unicode.IsLetter(ch) {
			return false
		}
	}

	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if !unicode.IsDigit(ch) {
			return false
		}
	}

	return true
}

// parseInt 解析十进制整数；超出 int 范围的字面量饱和到边界而非报错。
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(s, "-") {
			return math.MinInt, true
		}

		return math.MaxInt, true
	}

	return 0, false
}

func isInt(s string) bool {
	_, ok := parseInt(s)

	return ok
}

// ═══════════════════════════════════════════════════════════════════════════
// 字符级切片（按 rune 计数，越界收敛到边界）
// ═══════════════════════════════════════════════════════════════════════════

// sliceFrom 返回 val 从 offset 到末尾的字符。负 offset 从末尾倒数。
func sliceFrom(val string, offset int) string {
	runes := []rune(val)
	if offset < 0 {
		offset += len(runes)
		if offset < 0 {
			offset = 0
		}
	}
	if offset > len(runes) {
		offset = len(runes)
	}

	return string(runes[offset:])
}

// sliceFirst 返回 val 的前 length 个字符，length 不小于 0。
func sliceFirst(val string, length int) string {
	runes := []rune(val)
	if length > len(runes) {
		length = len(runes)
	}

	return string(runes[:length])
}

// sliceRange 返回 val 从 offset 开始的 length 个字符，两者均不小于 0。
func sliceRange(val string, offset, length int) string {
	runes := []rune(val)
	if offset > len(runes) {
		offset = len(runes)
	}
	end := len(runes)
	if length < end-offset {
		end = offset + length
	}

	return string(runes[offset:end])
}

// ═══════════════════════════════════════════════════════════════════════════
// Shell Parameter Expansion 状态机
// ═══════════════════════════════════════════════════════════════════════════

// expander 单趟前向扫描器。
//
// input 上只有一个游标，不回溯；buffr 暂存尚未解析的变量名与修饰符文本，
// result 只追加、不改写。两个缓冲区都只在单次 Expand 调用内存活。
type expander struct {
	input  []rune
	pos    int
	store  Store
	buffr  strings.Builder
	result strings.Builder
}

func (e *expander) peek() (rune, bool) {
	if e.pos >= len(e.input) {
		return 0, false
	}

	return e.input[e.pos], true
}

func (e *expander) next() (rune, bool) {
	ch, ok := e.peek()
	if ok {
		e.pos++
	}

	return ch, ok
}

// run 消费整个输入：字面字符直接追加，"$" 进入变量引用扫描。
func (e *expander) run() (string, error) {
	for {
		ch, ok := e.next()
		if !ok {
			return e.result.String(), nil
		}
		if ch != '$' {
			e.result.WriteRune(ch)

			continue
		}
		if err := e.scanVarRef(); err != nil {
			return "", err
		}
	}
}

// scanVarRef 处理紧跟在 "$" 之后的内容。
//
// 输入在 "$" 处结束时，"$" 按字面量保留。
func (e *expander) scanVarRef() error {
	ch, ok := e.peek()
	if !ok {
		e.result.WriteByte('$')

		return nil
	}
	if ch == '{' {
		e.pos++

		return e.scanBraced()
	}

	// 简单形式 $NAME：收集变量名字符，遇到首个非名字字符停止
	for {
		ch, ok = e.peek()
		if !ok || !isNameRune(ch) {
			break
		}
		e.buffr.WriteRune(ch)
		e.pos++
	}

	return e.resolveBuffer()
}

// scanBraced 处理 "${" 之后的内容：原样收集到首个 "}" 为止。
//
// 大括号体内不限制字符集，修饰符语法需要 ":"、"-"、"+"、"=" 与数字。
func (e *expander) scanBraced() error {
	for {
		ch, ok := e.next()
		if !ok {
			ref := e.buffr.String()
			e.buffr.Reset()

			return fmt.Errorf("paramexp: %s: %w", ref, ErrUnterminatedBrace)
		}
		if ch == '}' {
			return e.resolveBuffer()
		}
		e.buffr.WriteRune(ch)
	}
}

// resolveBuffer 解析并清空暂存缓冲区，是所有修饰符分支的唯一出口。
//
// 按首个 ":" 切分变量名与修饰符；无 ":" 时做普通查值。
func (e *expander) resolveBuffer() error {
	text := e.buffr.String()
	e.buffr.Reset()
	if text == "" {
		return nil
	}

	name, modifier, found := strings.Cut(text, ":")
	if !found {
		e.result.WriteString(e.store.Get(text, ""))

		return nil
	}
	name = strings.TrimSpace(name)
	modifier = strings.TrimSpace(modifier)

	switch {
	case strings.HasPrefix(modifier, "+"): // 替代值：存在即取 word（word 不二次展开）
		if e.store.Contains(name) {
			e.result.WriteString(modifier[1:])
		}

		return nil
	case strings.HasPrefix(modifier, "-"): // 默认值：缺失时取 word，不写入存储
		e.result.WriteString(e.store.Get(name, modifier[1:]))

		return nil
	case strings.HasPrefix(modifier, "="): // 赋值默认：缺失时取 word 并写入存储
		word := modifier[1:]
		e.result.WriteString(e.store.Get(name, word))
		if !e.store.Contains(name) {
			e.store.Set(name, word)
		}

		return nil
	default:
		return e.resolveSlice(name, modifier)
	}
}

// resolveSlice 解析切片修饰符 offset 或 offset:length。
func (e *expander) resolveSlice(name, modifier string) error {
	offset, length, twoPart := strings.Cut(modifier, ":")
	if !twoPart {
		// 单段形式 ${NAME:offset}
		if !isAlnum(offset) && !isInt(offset) {
			return fmt.Errorf("paramexp: %w", ErrBadSubstitution)
		}
		n, ok := parseInt(offset)
		if !ok {
			// 纯字母的 offset 视为缺省，整值输出
			e.result.WriteString(e.store.Get(name, ""))

			return nil
		}
		e.result.WriteString(sliceFrom(e.store.Get(name, ""), n))

		return nil
	}

	// 两段形式 ${NAME:offset:length}
	offset = strings.TrimSpace(offset)
	length = strings.TrimSpace(length)

	// 空或纯字母的 length 使整个引用不产生输出
	if length == "" || isAlpha(length) {
		return nil
	}
	n, ok := parseInt(length)
	if !ok {
		return fmt.Errorf("paramexp: syntax error: %w (error token is %q)", ErrOperandExpected, length)
	}
	if n < 0 {
		return fmt.Errorf("paramexp: %d: %w", n, ErrNegativeLength)
	}

	val := e.store.Get(name, "")
	if !isDigits(offset) {
		e.result.WriteString(sliceFirst(val, n))

		return nil
	}
	off, _ := parseInt(offset)
	e.result.WriteString(sliceRange(val, off, n))

	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 公共入口
// ═══════════════════════════════════════════════════════════════════════════

// Expand 对输入字符串执行 Unix Shell 风格的参数展开。
//
// 入口约定：输入不以 "$" 开头时原样返回，不做任何解析。
// 否则运行展开状态机直至输入耗尽，返回拼装的结果。
//
// 缺失变量、空引用、结尾的裸 "$" 等异常宽松处理（替换为空串或保留字面量）；
// 仅四类语法错误（见 [ErrUnterminatedBrace] 等）中止展开并返回 error。
func Expand(input string, opts ...Option) (string, error) {
	if !strings.HasPrefix(input, "$") {
		return input, nil
	}

	options := &options{store: OSEnv()}
	for _, opt := range opts {
		opt(options)
	}

	e := &expander{input: []rune(input), store: options.store}

	return e.run()
}
