package paramexp

// options 展开选项。
type options struct {
	store Store
}

// Option 展开选项函数。
type Option func(*options)

// WithStore 指定变量存储。
//
// 默认使用进程环境变量（见 [OSEnv]）。
// 测试场景建议注入 [MapStore] 以获得确定性结果：
//
//	paramexp.Expand("${FOO:-bar}", paramexp.WithStore(paramexp.MapStore{}))
func WithStore(store Store) Option {
	return func(o *options) {
		o.store = store
	}
}
