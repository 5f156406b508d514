package api

import (
	"pressroom/internal/common"
)

// Response is what handlers return; the dispatcher owns header merging and
// serialization.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       any
}

func Success(code int, data any) *Response {
	return &Response{StatusCode: code, Body: common.SuccessEnvelope(data)}
}

func Error(code int, message string) *Response {
	return &Response{StatusCode: code, Body: common.ErrorEnvelope(message)}
}

// ErrorFrom maps a domain error onto a status and a leak-safe message.
func ErrorFrom(err error) *Response {
	return Error(common.HTTPStatusFromError(err), common.PublicMessage(err))
}
