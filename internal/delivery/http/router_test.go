package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yael201062/rest-api2/internal/app_errors"
	"github.com/yael201062/rest-api2/internal/models"
	"github.com/yael201062/rest-api2/internal/service"
	"github.com/yael201062/rest-api2/internal/service/auth"
	"github.com/yael201062/rest-api2/internal/service/comment"
	"github.com/yael201062/rest-api2/internal/service/post"
	"github.com/yael201062/rest-api2/pkg/logger"
)

// --- in-memory repositories ---

type memUserRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (m *memUserRepo) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return nil, app_errors.ErrEmailExists
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = &user
	m.byID[user.ID] = &user
	return &user, nil
}

func (m *memUserRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserRepo) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, app_errors.ErrUserNotFound
	}
	return user, nil
}

type memTokenRepo struct {
	tokens map[uuid.UUID][]string
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[uuid.UUID][]string)}
}

func (m *memTokenRepo) Append(ctx context.Context, userID uuid.UUID, token string) error {
	m.tokens[userID] = append(m.tokens[userID], token)
	return nil
}

func (m *memTokenRepo) Consume(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	list := m.tokens[userID]
	for i, t := range list {
		if t == token {
			m.tokens[userID] = append(list[:i:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memTokenRepo) PurgeUser(ctx context.Context, userID uuid.UUID) error {
	m.tokens[userID] = nil
	return nil
}

type memPostRepo struct {
	posts map[uuid.UUID]*models.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[uuid.UUID]*models.Post)}
}

func (m *memPostRepo) NewPost(ctx context.Context, p *models.Post) (uuid.UUID, error) {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	stored := *p
	m.posts[p.ID] = &stored
	return p.ID, nil
}

func (m *memPostRepo) PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, app_errors.ErrPostNotFound
	}
	return p, nil
}

func (m *memPostRepo) ListPosts(ctx context.Context, owner *uuid.UUID) ([]models.Post, error) {
	out := make([]models.Post, 0)
	for _, p := range m.posts {
		if owner == nil || p.Owner == *owner {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPostRepo) UpdatePost(ctx context.Context, p *models.Post) error {
	if _, ok := m.posts[p.ID]; !ok {
		return app_errors.ErrPostNotFound
	}
	stored := *p
	m.posts[p.ID] = &stored
	return nil
}

func (m *memPostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.posts[id]; !ok {
		return app_errors.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

type memCommentRepo struct {
	comments map[uuid.UUID]*models.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: make(map[uuid.UUID]*models.Comment)}
}

func (m *memCommentRepo) NewComment(ctx context.Context, c *models.Comment) (uuid.UUID, error) {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	stored := *c
	m.comments[c.ID] = &stored
	return c.ID, nil
}

func (m *memCommentRepo) CommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, app_errors.ErrCommentNotFound
	}
	return c, nil
}

func (m *memCommentRepo) ListComments(ctx context.Context, owner, postID *uuid.UUID) ([]models.Comment, error) {
	out := make([]models.Comment, 0)
	for _, c := range m.comments {
		if owner != nil && c.Owner != *owner {
			continue
		}
		if postID != nil && c.PostID != *postID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCommentRepo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.comments[id]; !ok {
		return app_errors.ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

// --- harness ---

func newTestApp(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("prod")
	manager := auth.NewJWTManager(secret, time.Hour, 7*24*time.Hour)

	u := service.Collection{
		AuthService:    auth.NewAuthService(log, manager, newMemUserRepo(), newMemTokenRepo()),
		PostService:    post.NewPostService(log, newMemPostRepo()),
		CommentService: comment.NewCommentService(log, newMemCommentRepo()),
	}
	return InitRoutes(log, u)
}

func doJSON(r *gin.Engine, method, path, accessToken string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type tokenPairBody struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ID           string `json:"_id"`
}

func decodePair(t *testing.T, w *httptest.ResponseRecorder) tokenPairBody {
	t.Helper()
	var pair tokenPairBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	return pair
}

// --- scenarios ---

func TestAuthFlow_EndToEnd(t *testing.T) {
	r := newTestApp(t, "test-secret")
	creds := gin.H{"email": "a@b.com", "password": "secret1"}

	// register
	w := doJSON(r, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate registration
	w = doJSON(r, http.MethodPost, "/auth/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// login
	w = doJSON(r, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)
	pair := decodePair(t, w)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEmpty(t, pair.ID)

	// protected endpoint with the access token
	w = doJSON(r, http.MethodPost, "/posts", pair.AccessToken, gin.H{
		"title":   "Test Post",
		"content": "Test Content",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), pair.ID)

	// protected endpoint without a token
	w = doJSON(r, http.MethodPost, "/posts", "", gin.H{
		"title":   "Test Post",
		"content": "Test Content",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// refresh rotates the pair
	w = doJSON(r, http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	rotated := decodePair(t, w)
	require.NotEmpty(t, rotated.RefreshToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// the original refresh token is consumed
	w = doJSON(r, http.MethodPost, "/auth/refresh", "", gin.H{"refreshToken": pair.RefreshToken})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthFlow_WeakPassword(t *testing.T) {
	r := newTestApp(t, "test-secret")

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@b.com", "password": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthFlow_LoginFailuresIdentical(t *testing.T) {
	r := newTestApp(t, "test-secret")

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{"email": "a@b.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)

	wrongPassword := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "a@b.com", "password": "wrong-password"})
	unknownEmail := doJSON(r, http.MethodPost, "/auth/login", "", gin.H{"email": "nobody@b.com", "password": "secret1"})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestAuthFlow_LogoutConsumesToken(t *testing.T) {
	r := newTestApp(t, "test-secret")
	creds := gin.H{"email": "a@b.com", "password": "secret1"}

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/auth/register", "", creds).Code)
	pair := decodePair(t, doJSON(r, http.MethodPost, "/auth/login", "", creds))

	w := doJSON(r, http.MethodPost, "/auth/logout", "", gin.H{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/auth/logout", "", gin.H{"refreshToken": pair.RefreshToken})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthFlow_NoSecretIsServerFault(t *testing.T) {
	r := newTestApp(t, "")
	creds := gin.H{"email": "a@b.com", "password": "secret1"}

	// registration works without a signing secret, token minting does not
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/auth/register", "", creds).Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(r, http.MethodPost, "/auth/login", "", creds).Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(r, http.MethodPost, "/posts", "whatever", gin.H{
		"title":   "t",
		"content": "c",
	}).Code)
}

func TestPostFlow_OwnerScoping(t *testing.T) {
	r := newTestApp(t, "test-secret")

	alice := gin.H{"email": "alice@b.com", "password": "secret1"}
	bob := gin.H{"email": "bob@b.com", "password": "secret1"}
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/auth/register", "", alice).Code)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/auth/register", "", bob).Code)

	alicePair := decodePair(t, doJSON(r, http.MethodPost, "/auth/login", "", alice))
	bobPair := decodePair(t, doJSON(r, http.MethodPost, "/auth/login", "", bob))

	w := doJSON(r, http.MethodPost, "/posts", alicePair.AccessToken, gin.H{
		"title":   "Alice's Post",
		"content": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// anyone can read
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/posts/"+created.ID, "", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/posts?owner="+alicePair.ID, "", nil).Code)

	// only the owner can mutate
	assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodDelete, "/posts/"+created.ID, bobPair.AccessToken, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/posts/"+created.ID, alicePair.AccessToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/posts/"+created.ID, "", nil).Code)
}

func TestCommentFlow(t *testing.T) {
	r := newTestApp(t, "test-secret")
	creds := gin.H{"email": "a@b.com", "password": "secret1"}

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/auth/register", "", creds).Code)
	pair := decodePair(t, doJSON(r, http.MethodPost, "/auth/login", "", creds))

	w := doJSON(r, http.MethodPost, "/posts", pair.AccessToken, gin.H{"title": "t", "content": "c"})
	require.Equal(t, http.StatusCreated, w.Code)
	var createdPost struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createdPost))

	w = doJSON(r, http.MethodPost, "/comments", pair.AccessToken, gin.H{
		"comment": "nice post",
		"postId":  createdPost.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/comments?post="+createdPost.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice post")

	// comment creation requires auth
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodPost, "/comments", "", gin.H{
		"comment": "anon",
		"postId":  createdPost.ID,
	}).Code)
}
