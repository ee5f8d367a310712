package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"artshare/internal/domain"
	"artshare/internal/storage"
)

// pngBytes is a minimal payload http.DetectContentType sniffs as image/png.
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Comment{}))

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	return New(Deps{Log: zap.NewNop(), DB: db, Store: store})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, r *gin.Engine, email, nickname string) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email": email, "password": "pw123456", "nickname": nickname,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]any)
	return uint(user["id"].(float64))
}

func createPost(t *testing.T, r *gin.Engine, title, description string, authorID uint, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", title)
	_ = mw.WriteField("description", description)
	if authorID != 0 {
		_ = mw.WriteField("authorId", fmt.Sprint(authorID))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "pic.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterExcludesPasswordHash(t *testing.T) {
	r := newTestEngine(t)
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email": "a@x.com", "password": "secret", "nickname": "Al",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	user := decode(t, w)["user"].(map[string]any)
	assert.NotZero(t, user["id"])
	assert.NotEmpty(t, user["created_at"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestEngine(t)
	registerUser(t, r, "a@x.com", "Al")

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email": "a@x.com", "password": "different", "nickname": "Bob",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	r := newTestEngine(t)
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r := newTestEngine(t)
	id := registerUser(t, r, "a@x.com", "Al")

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "pw123456"})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.EqualValues(t, id, user["id"])

	wrong := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "a@x.com", "password": "nope"})
	unknown := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{"email": "who@x.com", "password": "pw123456"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	// unknown email must be indistinguishable from a wrong password
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestLogout(t *testing.T) {
	r := newTestEngine(t)
	w := doJSON(t, r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateAndGetProfile(t *testing.T) {
	r := newTestEngine(t)
	id := registerUser(t, r, "a@x.com", "Al")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/auth/users/%d", id), gin.H{
		"nickname": "  Alice ", "signature": "painter",
	})
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Alice", user["nickname"])
	assert.Equal(t, "painter", user["signature"])

	blank := doJSON(t, r, http.MethodPut, fmt.Sprintf("/auth/users/%d", id), gin.H{"nickname": "   "})
	assert.Equal(t, http.StatusBadRequest, blank.Code)

	missing := doJSON(t, r, http.MethodPut, "/auth/users/9999", gin.H{"nickname": "X"})
	assert.Equal(t, http.StatusNotFound, missing.Code)

	got := doJSON(t, r, http.MethodGet, fmt.Sprintf("/auth/users/%d", id), nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "Alice", decode(t, got)["user"].(map[string]any)["nickname"])

	gone := doJSON(t, r, http.MethodGet, "/auth/users/9999", nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestCreatePostWithImage(t *testing.T) {
	r := newTestEngine(t)
	id := registerUser(t, r, "a@x.com", "Al")

	w := createPost(t, r, "sunset", "oil on canvas", id, pngBytes)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := decode(t, w)
	assert.Equal(t, "Al", post["author_nickname"])
	ref, ok := post["image_url"].(string)
	require.True(t, ok)
	assert.Contains(t, ref, "/uploads/")

	// stored image is retrievable by its reference
	img := doJSON(t, r, http.MethodGet, ref, nil)
	assert.Equal(t, http.StatusOK, img.Code)
	assert.Equal(t, pngBytes, img.Body.Bytes())
}

func TestCreatePostRejectsNonImage(t *testing.T) {
	r := newTestEngine(t)
	id := registerUser(t, r, "a@x.com", "Al")

	w := createPost(t, r, "sunset", "", id, []byte("just some text, not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no partial post without its image
	list := doJSON(t, r, http.MethodGet, "/posts", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.Empty(t, decodeList(t, list))
}

func TestCreatePostValidation(t *testing.T) {
	r := newTestEngine(t)
	id := registerUser(t, r, "a@x.com", "Al")

	assert.Equal(t, http.StatusBadRequest, createPost(t, r, "", "desc", id, nil).Code)
	assert.Equal(t, http.StatusBadRequest, createPost(t, r, "title", "", 0, nil).Code)
}

func TestListPostsSearchAndAuthor(t *testing.T) {
	r := newTestEngine(t)
	al := registerUser(t, r, "a@x.com", "Al")
	bo := registerUser(t, r, "b@x.com", "Bo")

	require.Equal(t, http.StatusCreated, createPost(t, r, "My CAT painting", "", al, nil).Code)
	require.Equal(t, http.StatusCreated, createPost(t, r, "Dog sketch", "with a cat cameo", bo, nil).Code)
	require.Equal(t, http.StatusCreated, createPost(t, r, "Landscape", "", al, nil).Code)

	all := decodeList(t, doJSON(t, r, http.MethodGet, "/posts", nil))
	require.Len(t, all, 3)
	assert.Equal(t, "Landscape", all[0]["title"]) // newest first

	cats := decodeList(t, doJSON(t, r, http.MethodGet, "/posts?search=cat", nil))
	require.Len(t, cats, 2)

	alOnly := decodeList(t, doJSON(t, r, http.MethodGet, fmt.Sprintf("/posts?authorId=%d", al), nil))
	require.Len(t, alOnly, 2)

	both := decodeList(t, doJSON(t, r, http.MethodGet, fmt.Sprintf("/posts?search=cat&authorId=%d", al), nil))
	require.Len(t, both, 1)
	assert.Equal(t, "My CAT painting", both[0]["title"])
}

func TestGetPost(t *testing.T) {
	r := newTestEngine(t)
	id := registerUser(t, r, "a@x.com", "Al")
	created := decode(t, createPost(t, r, "sunset", "", id, nil))
	postID := uint(created["id"].(float64))

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["comment_count"])

	gone := doJSON(t, r, http.MethodGet, "/posts/9999", nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestDeletePostOwnership(t *testing.T) {
	r := newTestEngine(t)
	owner := registerUser(t, r, "a@x.com", "Al")
	other := registerUser(t, r, "b@x.com", "Bo")
	created := decode(t, createPost(t, r, "sunset", "", owner, nil))
	postID := uint(created["id"].(float64))

	noUser := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil)
	assert.Equal(t, http.StatusBadRequest, noUser.Code)

	forbidden := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d?userId=%d", postID, other), nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	// still retrievable after the forbidden attempt
	still := doJSON(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil)
	assert.Equal(t, http.StatusOK, still.Code)

	// requester id may come from the body instead of the query
	ok := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), gin.H{"userId": owner})
	assert.Equal(t, http.StatusOK, ok.Code)

	gone := doJSON(t, r, http.MethodGet, fmt.Sprintf("/posts/%d", postID), nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)

	again := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/posts/%d?userId=%d", postID, owner), nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestCommentFlow(t *testing.T) {
	r := newTestEngine(t)
	al := registerUser(t, r, "a@x.com", "Al")
	bo := registerUser(t, r, "b@x.com", "Bo")
	created := decode(t, createPost(t, r, "sunset", "", al, nil))
	postID := uint(created["id"].(float64))

	// empty list is 200 with [], not an error
	empty := doJSON(t, r, http.MethodGet, fmt.Sprintf("/comments/post/%d", postID), nil)
	require.Equal(t, http.StatusOK, empty.Code)
	assert.Equal(t, "[]", empty.Body.String())

	// commenting on a missing post is a caller error
	missing := doJSON(t, r, http.MethodPost, "/comments", gin.H{"workId": 9999, "userId": al, "content": "hi"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	first := doJSON(t, r, http.MethodPost, "/comments", gin.H{"workId": postID, "userId": al, "content": "first"})
	require.Equal(t, http.StatusCreated, first.Code)
	second := doJSON(t, r, http.MethodPost, "/comments", gin.H{"workId": postID, "userId": bo, "content": "second"})
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "Bo", decode(t, second)["author_nickname"])

	list := decodeList(t, doJSON(t, r, http.MethodGet, fmt.Sprintf("/comments/post/%d", postID), nil))
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0]["content"]) // oldest first

	firstID := uint(decode(t, first)["id"].(float64))
	forbidden := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d", firstID), gin.H{"userId": bo})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	ok := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d", firstID), gin.H{"userId": al})
	assert.Equal(t, http.StatusOK, ok.Code)

	again := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/comments/%d", firstID), gin.H{"userId": al})
	assert.Equal(t, http.StatusNotFound, again.Code)
}
