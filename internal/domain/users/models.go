package users

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	RoleID       int64  `json:"role_id"`
	EmployeeID   *int64 `json:"employee_id"`
	PasswordHash string `json:"-"`
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
