package domain

import "errors"

// 仓储层统一的业务错误，transport 层负责映射到 HTTP 状态
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrDuplicateGroup    = errors.New("group with same admin, name and description already exists")
	ErrDuplicateCustomer = errors.New("customer with same email and group already exists")
)
