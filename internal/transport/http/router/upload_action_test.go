package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"sns-api/internal/core/auth"
	mdw "sns-api/internal/transport/http/middleware"
	resp "sns-api/internal/transport/http/response"
)

func TestValidStagingKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"tmp/a1b2c3-avatar.png", true},
		{"tmp/a1b2c3-my-cool-pic.jpg", true},
		{"service/user/u1/avatar/a.png", false},
		{"tmp/../service/user/u1/avatar/a.png", false},
		{"tmp/", false},
		{"", false},
		{"a1b2c3-avatar.png", false},
	}
	for _, tc := range cases {
		if got := validStagingKey(tc.key); got != tc.want {
			t.Errorf("validStagingKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestSaveAvatarRejectsForeignKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "sns-api", TTL: time.Hour}

	// 非 tmp/ key 在触达存储前就被拒掉，挂载时不需要 S3 客户端
	r := gin.New()
	authed := r.Group("/api/v1")
	authed.Use(mdw.AuthSession(j, ""))
	mountUploadActions(authed, APIDeps{JWTer: j})

	tok, err := j.IssueSession("u1", "user", "auth:u1", "google")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/me/avatar",
		strings.NewReader(`{"tmpKey":"service/user/u2/avatar/pic.png"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out resp.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	if out.Code != resp.CodeBadRequest {
		t.Fatalf("code = %d, want %d", out.Code, resp.CodeBadRequest)
	}
}
