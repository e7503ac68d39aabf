package processor

import "log"

// JDOption 定义了 JDProcessor 的配置选项函数类型。
type JDOption func(*JDProcessor)

// WithJobVectorCache 设置 JD 向量缓存, 不设置时每次都重新计算。
func WithJobVectorCache(cache JobVectorCache) JDOption {
	return func(p *JDProcessor) {
		p.cache = cache
	}
}

// WithJDProcessorLogger 设置 JDProcessor 使用的日志记录器。
func WithJDProcessorLogger(logger *log.Logger) JDOption {
	return func(p *JDProcessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}
