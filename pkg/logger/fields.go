package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldCategoryID 分类 ID 字段
	FieldCategoryID = "categoryId"

	// FieldSessionToken 编辑会话令牌字段
	FieldSessionToken = "sessionToken"

	// FieldQuery 搜索词字段
	FieldQuery = "query"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"
)
