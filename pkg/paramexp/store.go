package paramexp

import (
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量存储
// ═══════════════════════════════════════════════════════════════════════════

// Store 变量存储接口。
//
// 展开器只通过该接口与外部交互：查值、判存在、写入（":=" 赋值）。
// 并发调用方需要自行对同一存储做同步，展开器本身不加锁。
type Store interface {
	// Get 返回 name 对应的值，缺失时返回 fallback。
	Get(name, fallback string) string
	// Contains 报告 name 是否存在于存储中（空值也算存在）。
	Contains(name string) bool
	// Set 写入 name 对应的值。
	Set(name, value string)
}

// MapStore 内存变量存储，适合测试与确定性展开。
type MapStore map[string]string

// Get 返回 name 对应的值，缺失时返回 fallback。
func (m MapStore) Get(name, fallback string) string {
	if val, ok := m[name]; ok {
		return val
	}

	return fallback
}

// Contains 报告 name 是否存在。
func (m MapStore) Contains(name string) bool {
	_, ok := m[name]

	return ok
}

// Set 写入 name 对应的值。
func (m MapStore) Set(name, value string) {
	m[name] = value
}

// EnvironSnapshot 生成当前环境变量快照。
//
// 该快照仅用于后续展开，":=" 的赋值只会写入这份数据，不影响真实环境。
func EnvironSnapshot() MapStore {
	vars := make(MapStore)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			vars[parts[0]] = parts[1]
		}
	}

	return vars
}

// osStore 直接读写进程环境变量表。
type osStore struct{}

// OSEnv 返回直接读写进程环境变量的存储。
//
// 这是 [Expand] 的默认存储：":=" 的赋值会通过 os.Setenv 持久化，
// 同进程内的后续展开可以观察到。
func OSEnv() Store {
	return osStore{}
}

func (osStore) Get(name, fallback string) string {
	if val, ok := os.LookupEnv(name); ok {
		return val
	}

	return fallback
}

func (osStore) Contains(name string) bool {
	_, ok := os.LookupEnv(name)

	return ok
}

func (osStore) Set(name, value string) {
	_ = os.Setenv(name, value)
}
