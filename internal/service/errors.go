package service

import "errors"

// ValidationError 业务入参校验失败，transport 映射为 400
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// ErrInvalidCredentials 查无此人和密码错误共用一条文案，防止撞库枚举
var ErrInvalidCredentials = errors.New("Invalid credentials. Please check your email and password and try again.")

// ErrUnknownField 单字段更新时传了封闭集合之外的字段名
var ErrUnknownField = errors.New("Invalid field. Use 'first_name', 'last_name', 'email', or 'password'.")
