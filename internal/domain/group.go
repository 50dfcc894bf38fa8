package domain

import "context"

type Group struct {
	ID          uint   `gorm:"primaryKey" json:"group_id"`
	AdminID     uint   `gorm:"not null;uniqueIndex:idx_groups_fingerprint" json:"group_admin_id"`
	Name        string `gorm:"size:120;not null;uniqueIndex:idx_groups_fingerprint" json:"group_name"`
	Description string `gorm:"size:300;not null;uniqueIndex:idx_groups_fingerprint" json:"group_description"`

	// 创建日期与时刻分两列存，created_at 排序时用时刻打破同日并列
	CreatedOn   Date      `gorm:"column:created_at;type:date;not null" json:"created_at"`
	CreatedTime TimeOfDay `gorm:"column:created_at_time;type:time;not null" json:"-"`

	Customers []Customer `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Group) TableName() string { return "groups" }

// 分组列表允许的排序键 → 列名
var GroupSortColumns = map[string]string{
	"group_name":        "name",
	"group_description": "description",
	"created_at":        "created_at",
}

type GroupRepository interface {
	// Create 指纹 (admin_id, name, description) 查重 + 写入同一事务；重复返回 ErrDuplicateGroup
	Create(ctx context.Context, g *Group) error
	FindByID(ctx context.Context, id uint) (*Group, error)
	// Update 整体替换 name+description；不存在返回 ErrGroupNotFound
	Update(ctx context.Context, id uint, name, description string) (*Group, error)
	// ListByAdmin sortColumn 必须已经过白名单校验
	ListByAdmin(ctx context.Context, adminID uint, sortColumn string, descending bool) ([]Group, error)
	// Delete 级联删除客户；不存在返回 ErrGroupNotFound
	Delete(ctx context.Context, id uint) error
}
