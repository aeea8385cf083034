package models

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleStandard UserRole = "standard"
)

// User - upstream /Data/all içindeki kullanıcı kaydı. Şifre hash'i upstream'den
// gelir, bu servis kullanıcı yazmaz; sadece login doğrulaması yapar.
type User struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
}
