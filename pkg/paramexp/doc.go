// Package paramexp 提供 Unix Shell 风格的参数（变量）展开。
//
// 该包扫描输入中的 $NAME 与 ${NAME...} 引用，从变量存储中取值替换，
// 支持 Shell 的修饰符家族（默认值、替代值、赋值默认、子串切片）。
// 不执行命令、不处理引号与通配符，强调可读性与可预测性。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语法
//
//   - $NAME / ${NAME} - 变量替换，缺失时展开为空串
//   - ${NAME:-word} - 默认值（不写入存储）
//   - ${NAME:=word} - 赋值默认（缺失时写入存储）
//   - ${NAME:+word} - 替代值（已设置时取 word）
//   - ${NAME:offset} / ${NAME:offset:length} - 子串切片
//
// # 语义说明
//
//  1. 入口约定：输入不以 "$" 开头时原样返回，不做任何解析
//  2. 单趟前向扫描，已替换的结果不会被二次展开
//  3. 变量名由字母、数字与下划线组成，其他字符终止变量名
//  4. ":=" 的赋值写入注入的存储，后续展开可见
//
// # 快速开始
//
// 对进程环境变量做展开（默认存储）：
//
//	result, err := paramexp.Expand("${HOME:-/root}/app")
//
// 注入内存存储做确定性测试：
//
//	store := paramexp.MapStore{"FOO": "bar"}
//	result, err := paramexp.Expand("$FOO", paramexp.WithStore(store))
//
// 语法错误（未闭合的大括号、非法切片参数）通过哨兵错误区分，
// 详见 [ErrUnterminatedBrace]、[ErrBadSubstitution]、
// [ErrOperandExpected] 与 [ErrNegativeLength]。
package paramexp
