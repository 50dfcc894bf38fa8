package domain

import "context"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"user_id"`
	FirstName string `gorm:"size:80;not null" json:"first_name"`
	LastName  string `gorm:"size:80;not null" json:"last_name"`
	Email     string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:120;not null" json:"-"` // bcrypt hash

	// 删除用户级联删除其管理的分组
	Groups []Group `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }

// UserField 可单独更新的用户列（封闭集合，拒绝其它字段名）
type UserField string

const (
	UserFieldFirstName UserField = "first_name"
	UserFieldLastName  UserField = "last_name"
	UserFieldEmail     UserField = "email"
	UserFieldPassword  UserField = "password"
)

func ParseUserField(s string) (UserField, bool) {
	switch UserField(s) {
	case UserFieldFirstName, UserFieldLastName, UserFieldEmail, UserFieldPassword:
		return UserField(s), true
	}
	return "", false
}

// Apply 对应字段的类型化 setter
func (f UserField) Apply(u *User, value string) {
	switch f {
	case UserFieldFirstName:
		u.FirstName = value
	case UserFieldLastName:
		u.LastName = value
	case UserFieldEmail:
		u.Email = value
	case UserFieldPassword:
		u.Password = value
	}
}

type UserRepository interface {
	// Create 预查重 + 写入在同一事务里；邮箱冲突返回 ErrEmailTaken
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int64, error)
	// UpdateField 单列更新；改邮箱时查重，冲突返回 ErrEmailTaken
	UpdateField(ctx context.Context, id uint, field UserField, value string) (*User, error)
	// Delete 级联删除分组与客户；不存在返回 ErrUserNotFound
	Delete(ctx context.Context, id uint) error
}
