package model

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	Model
	FullName     *string `gorm:"type:varchar(100)" json:"full_name"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role         Role    `gorm:"type:varchar(10);default:'user';not null" json:"role"`
	PasswordHash string  `gorm:"type:varchar(255)" json:"-"` // 仅 local 身份提供方使用
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) GetID() string {
	if u == nil {
		return ""
	}
	return u.ID
}

func (u *User) GetRole() string {
	if u == nil {
		return ""
	}
	return string(u.Role)
}

// DisplayName 优先使用全名，否则取邮箱 @ 之前的部分
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if name := Deref(u.FullName); name != "" {
		return name
	}
	return EmailLocalPart(u.Email)
}

func EmailLocalPart(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}

// ProfilePatch 用户资料的部分更新，角色不在其中：角色只能由创建时决定
type ProfilePatch struct {
	FullName *string `json:"full_name"`
}

func (p ProfilePatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = nullable(p.FullName)
	}
}
