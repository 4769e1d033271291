package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	// Mailer is the slice of internal/utils/mailing the service needs.
	Mailer interface {
		SendWelcome(toEmail string, firstName string) error
	}

	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetProfile(ctx context.Context, targetID string, viewerID string) (domain.UserResponse, error)
		Subscribe(ctx context.Context, followerID, targetID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, followerID, targetID string) error
		GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.SubscriptionResponse, int64, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         Mailer
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer Mailer) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	} else if !IsNotFound(err) {
		return domain.UserResponse{}, err
	}
	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameAlreadyExists
	} else if !IsNotFound(err) {
		return domain.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := entities.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	if err := s.mailer.SendWelcome(user.Email, user.FirstName); err != nil {
		log.Printf("failed to send welcome mail to %s: %v", user.Email, err)
	}

	return toUserResponse(&user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if IsNotFound(err) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.LoginResponse{
		Token: token,
		User:  toUserResponse(user, false),
	}, nil
}

func (s *userService) GetProfile(ctx context.Context, targetID string, viewerID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		if IsNotFound(err) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != targetID {
		viewerUUID, err := uuid.Parse(viewerID)
		if err != nil {
			return domain.UserResponse{}, domain.ErrParseUUID
		}
		isSubscribed, err = s.userRepository.IsFollowing(ctx, viewerUUID, user.ID)
		if err != nil {
			return domain.UserResponse{}, err
		}
	}

	return toUserResponse(user, isSubscribed), nil
}

func (s *userService) Subscribe(ctx context.Context, followerID, targetID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	if followerID == targetID {
		return domain.SubscriptionResponse{}, domain.ErrSelfFollow
	}

	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}

	target, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		if IsNotFound(err) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	following, err := s.userRepository.IsFollowing(ctx, followerUUID, target.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if following {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	if err := s.userRepository.CreateFollow(ctx, followerUUID, target.ID); err != nil {
		// A concurrent subscribe may land first; the unique index decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.toSubscriptionResponse(ctx, target, recipesLimit)
}

// Unsubscribe is idempotent: removing an absent subscription succeeds.
func (s *userService) Unsubscribe(ctx context.Context, followerID, targetID string) error {
	followerUUID, err := uuid.Parse(followerID)
	if err != nil {
		return domain.ErrParseUUID
	}
	targetUUID, err := uuid.Parse(targetID)
	if err != nil {
		return domain.ErrParseUUID
	}

	_, err = s.userRepository.DeleteFollow(ctx, followerUUID, targetUUID)
	return err
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, recipesLimit, page, limit int) ([]domain.SubscriptionResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	authors, count, err := s.userRepository.GetFollowedAuthors(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	subscriptions := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		res, err := s.toSubscriptionResponse(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subscriptions = append(subscriptions, res)
	}

	return subscriptions, count, nil
}

func (s *userService) toSubscriptionResponse(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.userRepository.GetRecipesByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	count, err := s.userRepository.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	short := make([]domain.ShortRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		short = append(short, domain.ShortRecipeResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			ImageURL:    recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserResponse: toUserResponse(author, true),
		Recipes:      short,
		RecipesCount: count,
	}, nil
}

func toUserResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
