package dto

import "time"

type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

type SignInInput struct {
	Email    string
	Password string
}

type UserOutput struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}

type IdentityOutput struct {
	UserID      string
	Email       string
	FullName    string
	DisplayName string
	SignedInAt  time.Time
}
