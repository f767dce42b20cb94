package model

type User struct {
	ID             int    `json:"id" bson:"id"`
	Username       string `json:"username" bson:"username"`
	Email          string `json:"email" bson:"email"`
	HashedPassword string `json:"hashed_password" bson:"hashed_password"`
}

type UserCreate struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// UserResponse is what signup returns: the stored record minus the hash.
type UserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
