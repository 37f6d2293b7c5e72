package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message    string  `json:"message"`
	Token      string  `json:"token"`
	ExpiresIn  int     `json:"expiresIn"`
	ID         int     `json:"id"`
	Name       *string `json:"name"`
	Username   string  `json:"username"`
	Role       int     `json:"role"`
	SatkerID   *int    `json:"satker_id"`
	SatkerName *string `json:"satker_name"`
}

type UserCreateRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name"`
	Role     *int    `json:"role"`
	SatkerID *int    `json:"satker_id"`
	Status   *int    `json:"status"`
}

type UserUpdateRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	Role     *int    `json:"role"`
	SatkerID *int    `json:"satker_id"`
	Status   *int    `json:"status"`
}

// UserItem: payload user untuk listing/detail (tanpa kolom sensitif).
type UserItem struct {
	ID         int     `json:"id"`
	Username   string  `json:"username"`
	Name       *string `json:"name"`
	Role       int     `json:"role"`
	Status     int     `json:"status"`
	SatkerID   *int    `json:"satker_id"`
	SatkerName *string `json:"satker_name"`
}
