package dto

// Response 统一响应信封，HTTP 状态码恒为 200，业务结果由 Code 表示
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
