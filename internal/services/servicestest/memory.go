// Package servicestest provides in-memory repositories for exercising
// services and handlers without a database.
package servicestest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitriy-lar/SocialNetworkAPI/internal/store"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

// Store keeps every table in memory behind one mutex and mirrors the
// constraints of the SQL schema: unique emails and titles, foreign keys,
// cascading deletes and one like row per post.
type Store struct {
	mu         sync.Mutex
	users      map[int]types.User
	categories map[int]types.Category
	posts      map[int]types.Post
	likes      map[int]types.Like // keyed by post id
	seq        map[string]int

	// Err, when set, is returned by every repository call.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int]types.User),
		categories: make(map[int]types.Category),
		posts:      make(map[int]types.Post),
		likes:      make(map[int]types.Like),
		seq:        make(map[string]int),
	}
}

func (s *Store) Users() *Users           { return &Users{s} }
func (s *Store) Categories() *Categories { return &Categories{s} }
func (s *Store) Posts() *Posts           { return &Posts{s} }
func (s *Store) Likes() *Likes           { return &Likes{s} }

// id mimics a per-table serial column.
func (s *Store) id(table string) int {
	s.seq[table]++
	return s.seq[table]
}

// Users implements services.UserRepository.
type Users struct{ s *Store }

func (r *Users) GetByID(_ context.Context, id int) (types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.User{}, r.s.Err
	}
	user, ok := r.s.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.User{}, r.s.Err
	}
	for _, user := range r.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *Users) List(_ context.Context) ([]types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	users := make([]types.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *Users) Create(_ context.Context, user types.User) (types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.User{}, r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = r.s.id("users")
	r.s.users[user.ID] = user
	return user, nil
}

func (r *Users) SetAdmin(_ context.Context, id int, isAdmin bool) (types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.User{}, r.s.Err
	}
	user, ok := r.s.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	user.IsAdmin = isAdmin
	r.s.users[id] = user
	return user, nil
}

// Categories implements services.CategoryRepository.
type Categories struct{ s *Store }

func (r *Categories) List(_ context.Context) ([]types.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	categories := make([]types.Category, 0, len(r.s.categories))
	for _, category := range r.s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *Categories) Get(_ context.Context, id int) (types.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Category{}, r.s.Err
	}
	category, ok := r.s.categories[id]
	if !ok {
		return types.Category{}, store.ErrNotFound
	}
	return category, nil
}

func (r *Categories) GetByTitle(_ context.Context, title string) (types.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Category{}, r.s.Err
	}
	for _, category := range r.s.categories {
		if category.Title == title {
			return category, nil
		}
	}
	return types.Category{}, store.ErrNotFound
}

func (r *Categories) Create(_ context.Context, category types.Category) (types.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Category{}, r.s.Err
	}
	if r.s.titleTaken(category.Title, 0) {
		return types.Category{}, store.ErrConflict
	}
	category.ID = r.s.id("categories")
	r.s.categories[category.ID] = category
	return category, nil
}

func (r *Categories) Update(_ context.Context, category types.Category) (types.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Category{}, r.s.Err
	}
	if _, ok := r.s.categories[category.ID]; !ok {
		return types.Category{}, store.ErrNotFound
	}
	if r.s.titleTaken(category.Title, category.ID) {
		return types.Category{}, store.ErrConflict
	}
	r.s.categories[category.ID] = category
	return category, nil
}

func (r *Categories) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.categories, id)
	for postID, post := range r.s.posts {
		if post.CategoryID == id {
			delete(r.s.posts, postID)
			delete(r.s.likes, postID)
		}
	}
	return nil
}

func (s *Store) titleTaken(title string, exceptID int) bool {
	for id, category := range s.categories {
		if id != exceptID && category.Title == title {
			return true
		}
	}
	return false
}

// Posts implements services.PostRepository.
type Posts struct{ s *Store }

func (r *Posts) List(_ context.Context) ([]types.Post, error) {
	return r.filter(func(types.Post) bool { return true })
}

func (r *Posts) ListByUser(_ context.Context, userID int) ([]types.Post, error) {
	return r.filter(func(p types.Post) bool { return p.UserID == userID })
}

func (r *Posts) filter(keep func(types.Post) bool) ([]types.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	posts := make([]types.Post, 0)
	for _, post := range r.s.posts {
		if keep(post) {
			posts = append(posts, r.s.withLikes(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (r *Posts) Get(_ context.Context, id int) (types.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Post{}, r.s.Err
	}
	post, ok := r.s.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return r.s.withLikes(post), nil
}

func (r *Posts) Create(_ context.Context, post types.Post) (types.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Post{}, r.s.Err
	}
	if _, ok := r.s.categories[post.CategoryID]; !ok {
		return types.Post{}, store.ErrReferenceMissing
	}
	if _, ok := r.s.users[post.UserID]; !ok {
		return types.Post{}, store.ErrReferenceMissing
	}
	post.ID = r.s.id("posts")
	post.TimeCreated = time.Now().UTC()
	post.TimeUpdated = nil
	post.LikesCount = 0
	r.s.posts[post.ID] = post
	return post, nil
}

func (r *Posts) Update(_ context.Context, post types.Post) (types.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return types.Post{}, r.s.Err
	}
	existing, ok := r.s.posts[post.ID]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	if _, ok := r.s.categories[post.CategoryID]; !ok {
		return types.Post{}, store.ErrReferenceMissing
	}
	now := time.Now().UTC()
	existing.Title = post.Title
	existing.Content = post.Content
	existing.CategoryID = post.CategoryID
	existing.TimeUpdated = &now
	r.s.posts[post.ID] = existing
	return r.s.withLikes(existing), nil
}

func (r *Posts) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.posts, id)
	delete(r.s.likes, id)
	return nil
}

func (s *Store) withLikes(post types.Post) types.Post {
	post.LikesCount = 0
	if like, ok := s.likes[post.ID]; ok && like.Liked {
		post.LikesCount = 1
	}
	return post
}

// Likes implements services.LikeRepository.
type Likes struct{ s *Store }

func (r *Likes) Toggle(_ context.Context, postID, userID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	if _, ok := r.s.posts[postID]; !ok {
		return false, store.ErrReferenceMissing
	}
	like, ok := r.s.likes[postID]
	if !ok {
		like = types.Like{ID: r.s.id("likes"), PostID: postID, UserID: userID, Liked: true}
	} else {
		like.Liked = !like.Liked
	}
	r.s.likes[postID] = like
	return like.Liked, nil
}

// Like returns the stored like row for a post.
func (r *Likes) Like(postID int) (types.Like, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	like, ok := r.s.likes[postID]
	return like, ok
}
