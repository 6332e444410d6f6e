package errors

// ========== 错误码常量定义 ==========

// CodeSuccess 成功码
const (
	CodeSuccess = 200
)

// HTTP层错误码 (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

// 账本业务错误码
const (
	CodeValidation       = 400 // 金额/参数校验失败，未发起任何远程写
	CodeProviderDeclined = 402 // 支付服务商拒绝，原样上报，不重试
	CodeRemoteWrite      = 500 // 存储写入被拒绝，不假定任何部分状态已提交
	CodeTransactionAbort = 500 // 批量/事务未能提交，整个操作视为未发生
)
