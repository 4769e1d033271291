package user

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/pkg/jwt"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type followPair struct {
	follower  uuid.UUID
	following uuid.UUID
}

type fakeUserRepository struct {
	users   map[uuid.UUID]*entities.User
	follows map[followPair]bool
	recipes map[uuid.UUID][]*entities.Recipe
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:   make(map[uuid.UUID]*entities.User),
		follows: make(map[followPair]bool),
		recipes: make(map[uuid.UUID][]*entities.Recipe),
	}
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) CreateFollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	p := followPair{followerID, followingID}
	if f.follows[p] {
		return gorm.ErrDuplicatedKey
	}
	f.follows[p] = true
	return nil
}

func (f *fakeUserRepository) DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (int64, error) {
	p := followPair{followerID, followingID}
	if f.follows[p] {
		delete(f.follows, p)
		return 1, nil
	}
	return 0, nil
}

func (f *fakeUserRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return f.follows[followPair{followerID, followingID}], nil
}

func (f *fakeUserRepository) GetFollowedAuthors(ctx context.Context, followerID uuid.UUID, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	for p := range f.follows {
		if p.follower == followerID {
			authors = append(authors, f.users[p.following])
		}
	}
	return authors, int64(len(authors)), nil
}

func (f *fakeUserRepository) GetRecipesByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*entities.Recipe, error) {
	recipes := f.recipes[authorID]
	if limit > 0 && limit < len(recipes) {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (f *fakeUserRepository) CountRecipesByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	return int64(len(f.recipes[authorID])), nil
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) SendWelcome(toEmail string, firstName string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func newUserTestService() (UserService, *fakeUserRepository, *fakeMailer) {
	repo := newFakeUserRepository()
	mailer := &fakeMailer{}
	return NewUserService(repo, jwt.NewJWTService(), mailer), repo, mailer
}

func seedUser(repo *fakeUserRepository, username, email string) *entities.User {
	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     domain.RoleUser,
	}
	repo.users[user.ID] = user
	return user
}

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Username:  "chef_ivan",
		Email:     "ivan@example.com",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Password:  "s3cret-pass",
	}
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	service, _, mailer := newUserTestService()

	res, err := service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.Username != "chef_ivan" || res.Email != "ivan@example.com" {
		t.Fatalf("unexpected register response: %+v", res)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ivan@example.com" {
		t.Fatalf("welcome mail not sent: %v", mailer.sent)
	}

	login, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "ivan@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" {
		t.Fatalf("expected a signed token")
	}
	if login.User.ID != res.ID {
		t.Fatalf("login returned a different user: %s vs %s", login.User.ID, res.ID)
	}
}

func TestRegisterSucceedsWhenMailFails(t *testing.T) {
	service, _, mailer := newUserTestService()
	mailer.fail = true

	if _, err := service.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("register must not fail on mail delivery: %v", err)
	}
}

func TestRegisterRejectsTakenEmailAndUsername(t *testing.T) {
	service, repo, _ := newUserTestService()
	seedUser(repo, "chef_ivan", "ivan@example.com")

	req := registerRequest()
	req.Username = "someone_else"
	if _, err := service.Register(context.Background(), req); !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	req = registerRequest()
	req.Email = "other@example.com"
	if _, err := service.Register(context.Background(), req); !errors.Is(err, domain.ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	service, _, _ := newUserTestService()
	if _, err := service.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "ivan@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}

	// Unknown email maps to the same error as a wrong password.
	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	if !errors.Is(err, domain.ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid for unknown email, got %v", err)
	}
}

func TestSubscribeRejectsSelfAndDuplicate(t *testing.T) {
	service, repo, _ := newUserTestService()
	follower := seedUser(repo, "follower", "follower@example.com")
	author := seedUser(repo, "author", "author@example.com")

	if _, err := service.Subscribe(context.Background(), follower.ID.String(), follower.ID.String(), 0); !errors.Is(err, domain.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}

	if _, err := service.Subscribe(context.Background(), follower.ID.String(), author.ID.String(), 0); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if _, err := service.Subscribe(context.Background(), follower.ID.String(), author.ID.String(), 0); !errors.Is(err, domain.ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	service, repo, _ := newUserTestService()
	follower := seedUser(repo, "follower", "follower@example.com")

	if _, err := service.Subscribe(context.Background(), follower.ID.String(), uuid.NewString(), 0); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	service, repo, _ := newUserTestService()
	follower := seedUser(repo, "follower", "follower@example.com")
	author := seedUser(repo, "author", "author@example.com")

	if _, err := service.Subscribe(context.Background(), follower.ID.String(), author.ID.String(), 0); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := service.Unsubscribe(context.Background(), follower.ID.String(), author.ID.String()); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	// Removing an absent subscription is a no-op, not an error.
	if err := service.Unsubscribe(context.Background(), follower.ID.String(), author.ID.String()); err != nil {
		t.Fatalf("repeat unsubscribe: %v", err)
	}
}

func TestSubscriptionRecipesLimit(t *testing.T) {
	service, repo, _ := newUserTestService()
	follower := seedUser(repo, "follower", "follower@example.com")
	author := seedUser(repo, "author", "author@example.com")

	for i := 0; i < 5; i++ {
		repo.recipes[author.ID] = append(repo.recipes[author.ID], &entities.Recipe{
			ID:          uuid.New(),
			AuthorID:    author.ID,
			Name:        "Рецепт",
			CookingTime: 10,
		})
	}

	res, err := service.Subscribe(context.Background(), follower.ID.String(), author.ID.String(), 2)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if len(res.Recipes) != 2 {
		t.Fatalf("expected 2 preview recipes, got %d", len(res.Recipes))
	}
	if res.RecipesCount != 5 {
		t.Fatalf("expected total count 5, got %d", res.RecipesCount)
	}
	if !res.IsSubscribed {
		t.Fatalf("subscription response must report is_subscribed")
	}

	subs, count, err := service.GetSubscriptions(context.Background(), follower.ID.String(), 0, 1, 10)
	if err != nil {
		t.Fatalf("get subscriptions: %v", err)
	}
	if count != 1 || len(subs) != 1 {
		t.Fatalf("expected one subscription, got count=%d len=%d", count, len(subs))
	}
	if len(subs[0].Recipes) != 5 {
		t.Fatalf("limit 0 must return all recipes, got %d", len(subs[0].Recipes))
	}
}

func TestGetProfileSubscriptionFlag(t *testing.T) {
	service, repo, _ := newUserTestService()
	viewer := seedUser(repo, "viewer", "viewer@example.com")
	author := seedUser(repo, "author", "author@example.com")
	repo.follows[followPair{viewer.ID, author.ID}] = true

	res, err := service.GetProfile(context.Background(), author.ID.String(), viewer.ID.String())
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !res.IsSubscribed {
		t.Fatalf("viewer follows author, flag must be true")
	}

	// Own profile never reports a self subscription.
	own, err := service.GetProfile(context.Background(), viewer.ID.String(), viewer.ID.String())
	if err != nil {
		t.Fatalf("own profile: %v", err)
	}
	if own.IsSubscribed {
		t.Fatalf("own profile must not be subscribed to itself")
	}
}
