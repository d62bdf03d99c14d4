package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/credentials"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services"
	"github.com/dmitriy-lar/SocialNetworkAPI/internal/services/servicestest"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "admin-key"

type fixture struct {
	store      *servicestest.Store
	creds      *credentials.Service
	auth       *services.AuthService
	users      *services.UserService
	categories *services.CategoryService
	posts      *services.PostService
	likes      *services.LikeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := servicestest.NewStore()
	creds := credentials.New("test-secret")
	return &fixture{
		store:      st,
		creds:      creds,
		auth:       services.NewAuthService(st.Users(), creds),
		users:      services.NewUserService(st.Users(), creds, time.Hour, testAdminKey),
		categories: services.NewCategoryService(st.Categories()),
		posts:      services.NewPostService(st.Posts(), st.Categories()),
		likes:      services.NewLikeService(st.Likes(), st.Posts()),
	}
}

func (f *fixture) user(t *testing.T, email string) types.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), email, "pw")
	require.NoError(t, err)
	return user
}

func (f *fixture) admin(t *testing.T, email string) types.User {
	t.Helper()
	user, err := f.users.SeedAdmin(context.Background(), email, "pw")
	require.NoError(t, err)
	return user
}

func (f *fixture) category(t *testing.T, title string) types.Category {
	t.Helper()
	category, err := f.categories.Create(context.Background(), title, f.admin(t, title+"-admin@x.com"))
	require.NoError(t, err)
	return category
}

func (f *fixture) post(t *testing.T, owner types.User, categoryID int) types.Post {
	t.Helper()
	post, err := f.posts.Create(context.Background(), types.PostInput{
		Title:      "Title",
		Content:    "Content",
		CategoryID: categoryID,
	}, owner)
	require.NoError(t, err)
	return post
}
