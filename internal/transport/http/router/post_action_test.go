package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sns-api/internal/core/auth"
	"sns-api/internal/domain"
	"sns-api/internal/service"
	resp "sns-api/internal/transport/http/response"
)

// memPostRepo map 实现，够路由层测试用
type memPostRepo struct {
	posts map[string]*domain.Post
}

func newMemPostRepo() *memPostRepo { return &memPostRepo{posts: map[string]*domain.Post{}} }

func (m *memPostRepo) Create(_ context.Context, p *domain.Post) error {
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPostRepo) Update(_ context.Context, id, content string, updatedAt time.Time) error {
	if p, ok := m.posts[id]; ok {
		p.Content = content
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (m *memPostRepo) Delete(_ context.Context, id string) error {
	delete(m.posts, id)
	return nil
}

func (m *memPostRepo) Paginate(_ context.Context, limit, offset int) ([]domain.Post, error) {
	var all []domain.Post
	for _, p := range m.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memPostRepo) PaginateByUserID(_ context.Context, userID string, limit, offset int) ([]domain.Post, error) {
	all, _ := m.Paginate(context.Background(), len(m.posts), 0)
	var mine []domain.Post
	for _, p := range all {
		if p.UserID == userID {
			mine = append(mine, p)
		}
	}
	if offset >= len(mine) {
		return nil, nil
	}
	mine = mine[offset:]
	if limit < len(mine) {
		mine = mine[:limit]
	}
	return mine, nil
}

type postHarness struct {
	engine *gin.Engine
	jwter  *auth.JWTer
	repo   *memPostRepo
}

func newPostHarness(t *testing.T) *postHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "sns-api", TTL: time.Hour}
	repo := newMemPostRepo()
	m := NewPostModule(service.NewPostDomain(repo), j)

	r := gin.New()
	api := r.Group("/api/v1")
	m.MountAPI(api)
	return &postHarness{engine: r, jwter: j, repo: repo}
}

func (h *postHarness) do(t *testing.T, method, path, token, body string) *resp.Resp {
	t.Helper()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	var out resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s %s: %v (%s)", method, path, err, w.Body.String())
	}
	return &out
}

func (h *postHarness) token(t *testing.T, uid string) string {
	t.Helper()
	tok, err := h.jwter.IssueSession(uid, "user", "auth:"+uid, "google")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func postID(t *testing.T, r *resp.Resp) string {
	t.Helper()
	m, ok := r.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T", r.Data)
	}
	id, _ := m["id"].(string)
	if id == "" {
		t.Fatalf("no id in %v", m)
	}
	return id
}

func TestPostCreateRequiresAuth(t *testing.T) {
	h := newPostHarness(t)
	out := h.do(t, http.MethodPost, "/api/v1/posts", "", `{"content":"hi"}`)
	if out.Code != resp.CodeUnauthorized {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeUnauthorized)
	}
}

func TestPostCreateAndFetch(t *testing.T) {
	h := newPostHarness(t)
	created := h.do(t, http.MethodPost, "/api/v1/posts", h.token(t, "u1"), `{"content":"hello world"}`)
	if created.Code != resp.CodeOK {
		t.Fatalf("create code = %d msg=%q", created.Code, created.Msg)
	}
	id := postID(t, created)

	got := h.do(t, http.MethodGet, "/api/v1/posts/"+id, "", "")
	if got.Code != resp.CodeOK {
		t.Fatalf("get code = %d", got.Code)
	}
	m := got.Data.(map[string]interface{})
	if m["content"] != "hello world" || m["userId"] != "u1" {
		t.Fatalf("post = %v", m)
	}
}

func TestPostGetMissing(t *testing.T) {
	h := newPostHarness(t)
	out := h.do(t, http.MethodGet, "/api/v1/posts/nope", "", "")
	if out.Code != resp.CodeNotFound {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeNotFound)
	}
}

func TestPostUpdateOwnerOnly(t *testing.T) {
	h := newPostHarness(t)
	created := h.do(t, http.MethodPost, "/api/v1/posts", h.token(t, "u1"), `{"content":"v1"}`)
	id := postID(t, created)

	// 别人改不动
	out := h.do(t, http.MethodPatch, "/api/v1/posts/"+id, h.token(t, "u2"), `{"content":"hijack"}`)
	if out.Code != resp.CodeForbidden {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeForbidden)
	}

	// 作者可以
	out = h.do(t, http.MethodPatch, "/api/v1/posts/"+id, h.token(t, "u1"), `{"content":"v2"}`)
	if out.Code != resp.CodeOK {
		t.Fatalf("code = %d msg=%q", out.Code, out.Msg)
	}
	if h.repo.posts[id].Content != "v2" {
		t.Fatalf("content = %q", h.repo.posts[id].Content)
	}
}

func TestPostDeleteOwnerOnly(t *testing.T) {
	h := newPostHarness(t)
	created := h.do(t, http.MethodPost, "/api/v1/posts", h.token(t, "u1"), `{"content":"bye"}`)
	id := postID(t, created)

	out := h.do(t, http.MethodDelete, "/api/v1/posts/"+id, h.token(t, "u2"), "")
	if out.Code != resp.CodeForbidden {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeForbidden)
	}

	out = h.do(t, http.MethodDelete, "/api/v1/posts/"+id, h.token(t, "u1"), "")
	if out.Code != resp.CodeOK {
		t.Fatalf("code = %d", out.Code)
	}
	if _, ok := h.repo.posts[id]; ok {
		t.Fatal("post not deleted")
	}
}

func TestPostListPagination(t *testing.T) {
	h := newPostHarness(t)
	tok := h.token(t, "u1")
	for i := 0; i < 3; i++ {
		out := h.do(t, http.MethodPost, "/api/v1/posts", tok, `{"content":"p"}`)
		if out.Code != resp.CodeOK {
			t.Fatalf("create code = %d", out.Code)
		}
	}

	out := h.do(t, http.MethodGet, "/api/v1/posts?limit=2", "", "")
	if out.Code != resp.CodeOK {
		t.Fatalf("code = %d", out.Code)
	}
	items := out.Data.(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
}
