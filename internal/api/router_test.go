package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/api/middleware"
	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/core/service"
	"github.com/devconnector/connector-api/internal/infrastructure/db/memory"
)

// inlinePurges runs the purge on the request goroutine so assertions can
// follow the delete call directly.
type inlinePurges struct {
	purger ports.AuthorPurger
}

func (p inlinePurges) Enqueue(job ports.PurgeJob) {
	_ = p.purger.PurgeAuthor(context.Background(), job.IdentityID)
}

type testServer struct {
	t *testing.T
	e *echo.Echo
}

// One router per test binary: the echoprometheus middleware registers its
// collectors with the default registry.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()

	tokens := service.NewTokenService("test-secret", time.Hour)
	posts := service.NewPostService(store.Posts(), store.Users(), nil, log)

	e := NewRouter(Deps{
		Tokens:   tokens,
		Auth:     service.NewAuthService(store.Users(), tokens, log),
		Profiles: service.NewProfileService(store.Profiles(), log),
		Posts:    posts,
		Accounts: service.NewAccountService(store.Profiles(), store.Users(), nil, inlinePurges{purger: posts}, log),
		Log:      log,
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) expect(rec *httptest.ResponseRecorder, code int, out any) {
	s.t.Helper()
	if rec.Code != code {
		s.t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			s.t.Fatalf("invalid json: %v", err)
		}
	}
}

func (s *testServer) register(name string) (token, id string) {
	s.t.Helper()
	var tr struct {
		Token string `json:"token"`
	}
	body := `{"name":"` + name + `","email":"` + name + `@example.com","password":"secret1"}`
	s.expect(s.do(http.MethodPost, "/api/users", "", body), http.StatusOK, &tr)

	var me domain.Identity
	s.expect(s.do(http.MethodGet, "/api/auth", tr.Token, ""), http.StatusOK, &me)
	return tr.Token, me.ID
}

func TestRouter_EndToEnd(t *testing.T) {
	s := newTestServer(t)

	u1, u1ID := s.register("u1")
	u2, u2ID := s.register("u2")

	t.Run("missing token is rejected", func(t *testing.T) {
		var resp errorResponse
		s.expect(s.do(http.MethodGet, "/api/posts", "", ""), http.StatusUnauthorized, &resp)
		if resp.Error != domain.ErrUnauthorized.Error() {
			t.Fatalf("unexpected message %q", resp.Error)
		}
	})

	t.Run("forged token is rejected", func(t *testing.T) {
		s.expect(s.do(http.MethodGet, "/api/posts", u1+"x", ""), http.StatusUnauthorized, nil)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		body := `{"name":"u1","email":"u1@example.com","password":"secret1"}`
		s.expect(s.do(http.MethodPost, "/api/users", "", body), http.StatusConflict, nil)
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		body := `{"email":"u1@example.com","password":"nope123"}`
		s.expect(s.do(http.MethodPost, "/api/auth", "", body), http.StatusUnauthorized, nil)
	})

	var post domain.Post
	t.Run("scenario A: like is idempotent per user", func(t *testing.T) {
		s.expect(s.do(http.MethodPost, "/api/posts", u1, `{"text":"hello"}`), http.StatusOK, &post)
		if post.AuthorID != u1ID || post.Name != "u1" {
			t.Fatalf("unexpected post: %+v", post)
		}

		var likes []domain.Like
		s.expect(s.do(http.MethodPut, "/api/posts/like/"+post.ID, u2, ""), http.StatusOK, &likes)
		if len(likes) != 1 || likes[0].UserID != u2ID {
			t.Fatalf("expected {u2}, got %+v", likes)
		}

		s.expect(s.do(http.MethodPut, "/api/posts/like/"+post.ID, u2, ""), http.StatusConflict, nil)

		var got domain.Post
		s.expect(s.do(http.MethodGet, "/api/posts/"+post.ID, u1, ""), http.StatusOK, &got)
		if len(got.Likes) != 1 {
			t.Fatalf("like set grew on repeat: %+v", got.Likes)
		}
	})

	t.Run("unlike without like conflicts", func(t *testing.T) {
		s.expect(s.do(http.MethodPut, "/api/posts/unlike/"+post.ID, u1, ""), http.StatusConflict, nil)
	})

	t.Run("scenario B: experience is newest first", func(t *testing.T) {
		s.expect(s.do(http.MethodPost, "/api/profile", u1, `{"status":"dev","skills":"go"}`), http.StatusOK, nil)

		var p domain.Profile
		s.expect(s.do(http.MethodPut, "/api/profile/experience", u1, `{"title":"E1","company":"a","from":"2018-01-01"}`), http.StatusOK, &p)
		e1 := p.Experience[0].ID
		s.expect(s.do(http.MethodPut, "/api/profile/experience", u1, `{"title":"E2","company":"b","from":"2020-01-01"}`), http.StatusOK, &p)
		if len(p.Experience) != 2 || p.Experience[0].Title != "E2" || p.Experience[1].Title != "E1" {
			t.Fatalf("expected [E2, E1], got %+v", p.Experience)
		}

		s.expect(s.do(http.MethodDelete, "/api/profile/experience/"+e1, u1, ""), http.StatusOK, &p)
		if len(p.Experience) != 1 || p.Experience[0].Title != "E2" {
			t.Fatalf("expected [E2], got %+v", p.Experience)
		}

		s.expect(s.do(http.MethodDelete, "/api/profile/experience/"+e1, u1, ""), http.StatusNotFound, nil)
	})

	t.Run("comment removal by post author", func(t *testing.T) {
		var comments []domain.Comment
		s.expect(s.do(http.MethodPost, "/api/posts/comment/"+post.ID, u2, `{"text":"nice"}`), http.StatusOK, &comments)
		if len(comments) != 1 || comments[0].AuthorID != u2ID {
			t.Fatalf("unexpected comments: %+v", comments)
		}
		s.expect(s.do(http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comments[0].ID, u1, ""), http.StatusOK, &comments)
		if len(comments) != 0 {
			t.Fatalf("comment not removed: %+v", comments)
		}
	})

	t.Run("scenario C: only the author deletes a post", func(t *testing.T) {
		s.expect(s.do(http.MethodDelete, "/api/posts/"+post.ID, u2, ""), http.StatusForbidden, nil)
		s.expect(s.do(http.MethodDelete, "/api/posts/"+post.ID, u1, ""), http.StatusOK, nil)
		s.expect(s.do(http.MethodGet, "/api/posts/"+post.ID, u1, ""), http.StatusNotFound, nil)
	})

	t.Run("account deletion cascades", func(t *testing.T) {
		var kept domain.Post
		s.expect(s.do(http.MethodPost, "/api/posts", u1, `{"text":"stays"}`), http.StatusOK, &kept)
		var gone domain.Post
		s.expect(s.do(http.MethodPost, "/api/posts", u2, `{"text":"goes"}`), http.StatusOK, &gone)
		s.expect(s.do(http.MethodPut, "/api/posts/like/"+kept.ID, u2, ""), http.StatusOK, nil)

		s.expect(s.do(http.MethodDelete, "/api/profile", u2, ""), http.StatusOK, nil)

		s.expect(s.do(http.MethodGet, "/api/posts/"+gone.ID, u1, ""), http.StatusNotFound, nil)
		var got domain.Post
		s.expect(s.do(http.MethodGet, "/api/posts/"+kept.ID, u1, ""), http.StatusOK, &got)
		if len(got.Likes) != 0 {
			t.Fatalf("departed user's like survived: %+v", got.Likes)
		}
		s.expect(s.do(http.MethodGet, "/api/auth", u2, ""), http.StatusNotFound, nil)

		// The token is still signed and unexpired but its identity is gone.
		s.expect(s.do(http.MethodPut, "/api/posts/like/"+kept.ID, u2, ""), http.StatusUnauthorized, nil)
		s.expect(s.do(http.MethodPost, "/api/posts/comment/"+kept.ID, u2, `{"text":"ghost"}`), http.StatusUnauthorized, nil)
		s.expect(s.do(http.MethodGet, "/api/posts/"+kept.ID, u1, ""), http.StatusOK, &got)
		if len(got.Likes) != 0 || len(got.Comments) != 0 {
			t.Fatalf("deleted identity engaged with a post: %+v", got)
		}
	})

	t.Run("probes and docs are public", func(t *testing.T) {
		s.expect(s.do(http.MethodGet, "/health", "", ""), http.StatusOK, nil)
		s.expect(s.do(http.MethodGet, "/health/ready", "", ""), http.StatusOK, nil)
		s.expect(s.do(http.MethodGet, "/metrics", "", ""), http.StatusOK, nil)
	})
}
