package auth

import "surveyhub/internal/domain"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=20,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	RoleName string `json:"roleName,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GrantRoleRequest struct {
	RoleName string `json:"roleName" binding:"required"`
}

type UserPublic struct {
	ID       int64    `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.RoleNames(),
	}
}

// TokenPair is the session material handed back to the transport adapter. The
// values go into cookies, never into JSON bodies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterResult struct {
	User   *domain.User
	Tokens TokenPair
}

type LoginResult struct {
	User   *domain.User
	Tokens TokenPair
}

type RefreshResult struct {
	Tokens TokenPair
}
