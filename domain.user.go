package main

const (
	RoleReader = "reader"
	RoleAdmin  = "admin"
)

// User represents a user entity.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserInput is the payload accepted on user creation and update.
type UserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// User builds the user entity described by the payload. The role
// falls back to RoleReader when the payload does not carry one.
func (in *UserInput) User(id int) User {
	role := RoleReader
	if in.Role != nil && len(*in.Role) != 0 {
		role = *in.Role
	}
	return User{
		ID:    id,
		Name:  *in.Name,
		Email: *in.Email,
		Role:  role,
	}
}
