// Package client provides Go bindings for the artshare REST API plus a
// file-persisted Session for remembering the logged-in user between runs.
// There is no server-side session: callers pass their own user id on
// every owner-checked operation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is any non-2xx response.
type APIError struct {
	Status  int
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Signature *string   `json:"signature"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImageURL       *string   `json:"image_url"`
	AuthorID       uint      `json:"author_id"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorNickname string    `json:"author_nickname"`
	CommentCount   int64     `json:"comment_count"`
}

type Comment struct {
	ID             uint      `json:"id"`
	WorkID         uint      `json:"work_id"`
	UserID         uint      `json:"user_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorNickname string    `json:"author_nickname"`
}

type userEnvelope struct {
	User *User `json:"user"`
}

func (c *Client) Register(ctx context.Context, email, password, nickname string) (*User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]any{
		"email": email, "password": password, "nickname": nickname,
	}, &out)
	return out.User, err
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]any{
		"email": email, "password": password,
	}, &out)
	return out.User, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, id uint, nickname string, signature *string) (*User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodPut, "/auth/users/"+itoa(id), map[string]any{
		"nickname": nickname, "signature": signature,
	}, &out)
	return out.User, err
}

func (c *Client) GetUser(ctx context.Context, id uint) (*User, error) {
	var out userEnvelope
	err := c.do(ctx, http.MethodGet, "/auth/users/"+itoa(id), nil, &out)
	return out.User, err
}

// CreatePostInput mirrors the multipart form of POST /posts. Image is
// optional; when set, Filename names the part and Image supplies the bytes.
type CreatePostInput struct {
	Title       string
	Description string
	AuthorID    uint
	Image       io.Reader
	Filename    string
	// ImageURL passes an already-stored reference instead of bytes.
	ImageURL string
}

func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*Post, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("title", in.Title)
	_ = mw.WriteField("description", in.Description)
	_ = mw.WriteField("authorId", itoa(in.AuthorID))
	if in.Image != nil {
		fw, err := mw.CreateFormFile("image", in.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(fw, in.Image); err != nil {
			return nil, err
		}
	} else if in.ImageURL != "" {
		_ = mw.WriteField("image_url", in.ImageURL)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/posts", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out Post
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPosts(ctx context.Context, search string, authorID uint) ([]Post, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if authorID != 0 {
		q.Set("authorId", itoa(authorID))
	}
	path := "/posts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []Post
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) GetPost(ctx context.Context, id uint) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id, userID uint) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+itoa(id)+"?userId="+itoa(userID), nil, nil)
}

func (c *Client) CreateComment(ctx context.Context, workID, userID uint, content string) (*Comment, error) {
	var out Comment
	err := c.do(ctx, http.MethodPost, "/comments", map[string]any{
		"workId": workID, "userId": userID, "content": content,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListComments(ctx context.Context, workID uint) ([]Comment, error) {
	var out []Comment
	err := c.do(ctx, http.MethodGet, "/comments/post/"+itoa(workID), nil, &out)
	return out, err
}

func (c *Client) DeleteComment(ctx context.Context, id, userID uint) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+itoa(id), map[string]any{
		"userId": userID,
	}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		ae := &APIError{Status: res.StatusCode}
		_ = json.NewDecoder(res.Body).Decode(ae)
		return ae
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }
