package code

// 公共状态码定义
var (
	Success               = NewSuccess(200, "success")
	ErrorInvalidParams    = NewError(10001, "invalid request parameters")
	ErrorNotFound         = NewError(10002, "record not found")
	ErrorDBQuery          = NewError(10003, "database operation failed")
	ErrorTooManyRequests  = NewError(10004, "too many requests")
	ErrorSessionNotFound  = NewError(10005, "edit session not found")
	ErrorInvalidThemeMode = NewError(10006, "invalid theme mode")
	ErrorServerInternal   = NewError(10007, "internal server error")
	ErrorNotFoundAPI      = NewError(10008, "api route not found")
)
