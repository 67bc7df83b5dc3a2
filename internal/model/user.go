package model

type UserRole string

const (
	Learner UserRole = "user"
	Admin   UserRole = "admin"
)

// User 由认证服务维护，这里只读取展示字段
// swagger:model User
type User struct {
	UUIDBase
	Username string   `gorm:"size:100;not null" json:"username"`
	Email    string   `gorm:"size:100;uniqueIndex" json:"email"`
	Role     UserRole `gorm:"size:20;default:'user';index" json:"role"`
}

func (User) TableName() string {
	return "users"
}
