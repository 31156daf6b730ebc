package httpez

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sns-api/internal/domain"
	resp "sns-api/internal/transport/http/response"
)

// EZ RouterGroup 的轻封装，配合 Action 做一行注册
type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

/* ================== API 错误 ================== */

// APIError 带业务码的错误，handler 返回后统一走 Resp 包装
type APIError struct {
	Code int
	Msg  string
	Err  error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *APIError) Unwrap() error { return e.Err }

func BadRequest(msg string) *APIError   { return &APIError{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) *APIError { return &APIError{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) *APIError    { return &APIError{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) *APIError     { return &APIError{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) *APIError {
	return &APIError{Code: resp.CodeServerError, Msg: msg, Err: err}
}

/* ================== Action 注册 ================== */

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON body 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定
)

type Action[In any, Out any] struct {
	Method  string
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *In) (Out, error)
}

// RegisterAction 挂载一个 Action。绑定失败回 400，
// handler 错误统一翻译，成功包 resp.OK。
func RegisterAction[In any, Out any](e EZ, a Action[In, Out]) {
	e.g.Handle(a.Method, a.Path, func(c *gin.Context) {
		var in In
		switch a.Binder {
		case BindJSON:
			if err := c.ShouldBindJSON(&in); err != nil {
				c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
				return
			}
		case BindQuery:
			if err := c.ShouldBindQuery(&in); err != nil {
				c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
				return
			}
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	})
}

func writeError(c *gin.Context, err error) {
	var ae *APIError
	if errors.As(err, &ae) {
		c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Msg))
		return
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, ""))
		return
	}
	c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
}
