package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：用户可恢复的错误（输入被拒绝、无可加载数据、请求被新的上传覆盖）
// - 5xxx：系统错误（导出失败等，需要用户重试）
const (
	OK            = 0
	InvalidImage  = 4001
	NothingToLoad = 4004
	Superseded    = 4009
	RateLimited   = 4029
	SystemError   = 5000
)
