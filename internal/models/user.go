package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleSales Role = "sales"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSales
}

// User is the stored record. PasswordHash never leaves the process: it is
// excluded from JSON here and absent from PublicUser entirely.
type User struct {
	ID            int64      `db:"id" json:"id"`
	FullName      string     `db:"full_name" json:"fullName"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone"`
	Company       *string    `db:"company" json:"company"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	Role          Role       `db:"role" json:"role"`
	IsActive      bool       `db:"is_active" json:"isActive"`
	AgreedToTerms bool       `db:"agreed_to_terms" json:"agreedToTerms"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt   *time.Time `db:"last_login_at" json:"-"`
	LastLoginIP   *string    `db:"last_login_ip" json:"-"`
}

// LastLogin is the nested shape clients see for the most recent login.
type LastLogin struct {
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ipAddress"`
}

// PublicUser is the client-facing projection of User. It has no password
// field at the type level, so a credential can never be serialized from it.
type PublicUser struct {
	ID            int64      `json:"id"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Company       *string    `json:"company"`
	Role          Role       `json:"role"`
	IsActive      bool       `json:"isActive"`
	AgreedToTerms bool       `json:"agreedToTerms"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastLogin     *LastLogin `json:"lastLogin"`
}

// Public builds the client-facing view of u.
func (u *User) Public() *PublicUser {
	p := &PublicUser{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Phone:         u.Phone,
		Company:       u.Company,
		Role:          u.Role,
		IsActive:      u.IsActive,
		AgreedToTerms: u.AgreedToTerms,
		CreatedAt:     u.CreatedAt,
	}
	if u.LastLoginAt != nil {
		ll := &LastLogin{Timestamp: *u.LastLoginAt}
		if u.LastLoginIP != nil {
			ll.IPAddress = *u.LastLoginIP
		}
		p.LastLogin = ll
	}
	return p
}
