package api

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileRequest is the body of POST /api/auth/register and PUT /api/users/profile
type ProfileRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register, login and profile update
type AuthResponse struct {
	Message *string  `json:"message,omitempty"`
	Token   *string  `json:"token,omitempty"`
	User    *UserDTO `json:"user,omitempty"`
}

// UserDTO is the identity embedded in auth responses
type UserDTO struct {
	ID      *string `json:"id,omitempty"`
	MongoID *string `json:"_id,omitempty"`
	Name    *string `json:"name,omitempty"`
	Surname *string `json:"surname,omitempty"`
	Email   *string `json:"email,omitempty"`
}

// CurrentUserDTO is returned by GET /api/auth/me. The backend has been seen
// sending the identifier both as "_id" and as "id".
type CurrentUserDTO struct {
	ID          *string `json:"id,omitempty"`
	MongoID     *string `json:"_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	Email       *string `json:"email,omitempty"`
	LikedMovies []int   `json:"likedMovies,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
	Version     *int    `json:"__v,omitempty"`
}

// MovieDTO is one movie record. Every field may be absent.
type MovieDTO struct {
	ID          *int     `json:"id,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Year        *int     `json:"year,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Actors      []string `json:"actors,omitempty"`
	Category    *string  `json:"category,omitempty"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// ErrorDTO is the error body some endpoints return with a non-2xx status
type ErrorDTO struct {
	Code       *string           `json:"code,omitempty"`
	Message    *string           `json:"message,omitempty"`
	ErrorItems map[string]string `json:"errorItems,omitempty"`
}
