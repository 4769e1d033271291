package domain

import (
	"errors"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login success"
	MessageSuccessGetProfile       = "success get profile"
	MessageSuccessSubscribe        = "subscribed to author successfully"
	MessageSuccessUnsubscribe      = "unsubscribed from author successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetProfile       = "failed to get profile"
	MessageFailedSubscribe        = "failed to subscribe to author"
	MessageFailedUnsubscribe      = "failed to unsubscribe from author"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrCredentialsInvalid    = errors.New("wrong email or password")
	ErrSelfFollow            = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed     = errors.New("already subscribed to this author")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,max=150,username"`
		Email     string `json:"email" validate:"required,email,max=254"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	SubscriptionResponse struct {
		UserResponse
		Recipes      []ShortRecipeResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}
)
