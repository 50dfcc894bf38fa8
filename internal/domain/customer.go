package domain

import (
	"context"
	"time"
)

type Customer struct {
	ID        uint    `gorm:"primaryKey" json:"customer_id"`
	GroupID   uint    `gorm:"not null;uniqueIndex:idx_customers_email_group" json:"group_id"`
	FirstName string  `gorm:"size:80;not null" json:"first_name"`
	LastName  string  `gorm:"size:80;not null" json:"last_name"`
	Email     string  `gorm:"size:120;not null;uniqueIndex:idx_customers_email_group" json:"email"`
	Country   *string `gorm:"size:120" json:"country"`
	City      *string `gorm:"size:120" json:"city"`
	Birthday  *Date   `gorm:"type:date" json:"birthday"`
}

func (Customer) TableName() string { return "customers" }

// CustomerWithAge 列表/详情按需附带派生的 age 字段
type CustomerWithAge struct {
	Customer
	Age *int `json:"age"`
}

func (c Customer) WithAge(now time.Time) CustomerWithAge {
	out := CustomerWithAge{Customer: c}
	if c.Birthday != nil {
		age := c.Birthday.AgeOn(now)
		out.Age = &age
	}
	return out
}

// 客户列表允许的排序键 → 列名
var CustomerSortColumns = map[string]string{
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"country":    "country",
	"city":       "city",
	"birthday":   "birthday",
}

type CustomerRepository interface {
	// Create (email, group_id) 查重 + 写入同一事务；重复返回 ErrDuplicateCustomer
	Create(ctx context.Context, c *Customer) error
	// CreateBatch 全量成功或全量失败；任何一条与库里撞 (email, group_id) 返回 ErrDuplicateCustomer
	CreateBatch(ctx context.Context, cs []Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	// Update 整体替换各列；换邮箱撞同组其它客户返回 ErrDuplicateCustomer
	Update(ctx context.Context, c *Customer) (*Customer, error)
	// ListByGroup sortColumn 必须已经过白名单校验
	ListByGroup(ctx context.Context, groupID uint, sortColumn string, descending bool) ([]Customer, error)
	// Delete 不存在返回 ErrCustomerNotFound
	Delete(ctx context.Context, id uint) error
}
