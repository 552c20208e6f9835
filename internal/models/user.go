// internal/models/user.go
package models

type User struct {
	ID               string `json:"user_id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registration_date"`
	LastLogin        string `json:"last_login"`
}

func (u *User) Fields() FieldMap {
	return FieldMap{
		"user_id":           u.ID,
		"username":          u.Username,
		"email":             u.Email,
		"registration_date": u.RegistrationDate,
		"last_login":        u.LastLogin,
	}
}

func UserFromFields(f FieldMap) *User {
	return &User{
		ID:               f["user_id"],
		Username:         f["username"],
		Email:            f["email"],
		RegistrationDate: f["registration_date"],
		LastLogin:        f["last_login"],
	}
}

// UserWithOrders is the detail view: the user plus their order-id history,
// newest first.
type UserWithOrders struct {
	User     *User    `json:"user"`
	OrderIDs []string `json:"order_ids"`
}
