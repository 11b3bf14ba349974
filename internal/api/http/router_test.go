package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/api/http/handlers"
	"github.com/spec-kit/content-service/internal/auth"
	"github.com/spec-kit/content-service/internal/events"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/media/mocks"
	"github.com/spec-kit/content-service/internal/observability"
	"github.com/spec-kit/content-service/internal/ratelimit"
	"github.com/spec-kit/content-service/internal/repository"
	"github.com/spec-kit/content-service/internal/service"
)

const testPassword = "letmein"

type testEnv struct {
	app    *fiber.App
	tokens *auth.TokenService
	blog   *service.BlogService
	host   *mocks.FakeHost
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	metrics, err := observability.NewMetrics()
	require.NoError(t, err)

	tokens, err := auth.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	host := mocks.NewFakeHost()
	resolver := media.NewResolver(host, logger, metrics)
	dispatcher := events.NewAsyncDispatcher(logger)
	blog := service.NewBlogService(store.Blog, resolver, 0)

	app := NewServer(ServerConfig{
		AppName:     "content-service-test",
		Middlewares: MiddlewareConfig{Timeout: 5 * time.Second},
		Routes: RouteConfig{
			Health:         handlers.NewHealthHandler("content-service", "test", nil),
			Admin:          handlers.NewAdminHandler(service.NewAuthService(tokens, "admin", testPassword)),
			About:          handlers.NewAboutHandler(service.NewAboutService(store.About, resolver, 0)),
			Team:           handlers.NewTeamHandler(service.NewTeamService(store.Team, resolver, 0)),
			Projects:       handlers.NewProjectHandler(service.NewProjectService(store.Projects, resolver, 0)),
			Services:       handlers.NewOfferingHandler(service.NewOfferingService(store.Services, resolver, 0)),
			Careers:        handlers.NewCareerHandler(service.NewCareerService(store.Careers)),
			Blog:           handlers.NewBlogHandler(blog),
			Contact:        handlers.NewContactHandler(service.NewContactService(store.Contacts, dispatcher, logger)),
			AuthMiddleware: auth.NewAuthMiddleware(tokens),
			ContactLimit:   ratelimit.Middleware(ratelimit.NewMemoryLimiter(1, time.Minute), ratelimit.ClientIP(1), logger),
			CORSOrigins:    []string{"http://localhost:5173"},
		},
	}, logger, metrics)

	return &testEnv{app: app, tokens: tokens, blog: blog, host: host}
}

func (e *testEnv) do(t *testing.T, req *nethttp.Request) *nethttp.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) bearer(t *testing.T) string {
	t.Helper()
	tok, err := e.tokens.IssueAccessToken("admin")
	require.NoError(t, err)
	return "Bearer " + tok.Value
}

func jsonRequest(method, target string, body any) *nethttp.Request {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func decode(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCareers_CreateRequiresBearer(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{"title": "Welder", "text": "Full time", "description": "Join the crew"}

	resp := env.do(t, jsonRequest(fiber.MethodPost, "/api/careers", body))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	envelope := decode(t, resp)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "UNAUTHORIZED", envelope["code"])

	req := jsonRequest(fiber.MethodPost, "/api/careers", body)
	req.Header.Set(fiber.HeaderAuthorization, env.bearer(t))
	resp = env.do(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode(t, resp)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Welder", created["title"])
	assert.Equal(t, "Join the crew", created["description"])

	resp = env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/careers/"+created["id"].(string), nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCareers_TamperedTokenIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	req := jsonRequest(fiber.MethodPost, "/api/careers", map[string]string{"title": "x"})
	req.Header.Set(fiber.HeaderAuthorization, env.bearer(t)+"x")

	resp := env.do(t, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestBlog_SecondPage(t *testing.T) {
	env := newTestEnv(t)
	for i := 1; i <= 10; i++ {
		_, err := env.blog.Create(context.Background(), service.BlogPostInput{
			Title: fmt.Sprintf("Post %d", i), Category: "news", Date: "2025-01-01", Description: "body",
			Image: media.Input{URL: "https://cdn.example.com/p.jpg"},
		})
		require.NoError(t, err)
	}

	resp := env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/blog?page=2", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := decode(t, resp)
	assert.Len(t, page["items"], 4)
	assert.EqualValues(t, 2, page["currentPage"])
	assert.EqualValues(t, 2, page["totalPages"])

	resp = env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/blog?page=abc", nil))
	page = decode(t, resp)
	assert.EqualValues(t, 1, page["currentPage"])
}

func TestAdmin_LoginSetsRefreshCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, jsonRequest(fiber.MethodPost, "/api/admin/login", map[string]string{"password": "nope"}))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, jsonRequest(fiber.MethodPost, "/api/admin/login", map[string]string{}))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, jsonRequest(fiber.MethodPost, "/api/admin/login", map[string]string{"password": testPassword}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refresh *nethttp.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == handlers.RefreshCookie {
			refresh = c
		}
	}
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	assert.True(t, refresh.Secure)
	assert.Equal(t, nethttp.SameSiteNoneMode, refresh.SameSite)
	assert.Equal(t, 604800, refresh.MaxAge)

	body := decode(t, resp)
	claims, err := env.tokens.VerifyAccess(body["token"].(string))
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin", claims.AdminID)
}

func TestAdmin_RefreshRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(fiber.MethodPost, "/api/admin/refresh", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodPost, "/api/admin/refresh", nil)
	req.AddCookie(&nethttp.Cookie{Name: handlers.RefreshCookie, Value: "garbage"})
	resp = env.do(t, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	refresh, err := env.tokens.IssueRefreshToken("admin")
	require.NoError(t, err)
	req = httptest.NewRequest(fiber.MethodPost, "/api/admin/refresh", nil)
	req.AddCookie(&nethttp.Cookie{Name: handlers.RefreshCookie, Value: refresh.Value})
	resp = env.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	token := decode(t, resp)["token"].(string)
	req = httptest.NewRequest(fiber.MethodGet, "/api/admin/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp = env.do(t, req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode(t, resp)["adminId"])
}

func TestAdmin_LogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(fiber.MethodPost, "/api/admin/logout", nil))
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	header := resp.Header.Get(fiber.HeaderSetCookie)
	assert.Contains(t, header, handlers.RefreshCookie+"=;")
	assert.Contains(t, strings.ToLower(header), "httponly")
}

func contactBody() map[string]string {
	return map[string]string{
		"name":    "Petr Novák",
		"email":   "petr@example.cz",
		"phone":   "+420123456789",
		"message": "Dobrý den",
	}
}

func TestContact_RateLimitedPerClient(t *testing.T) {
	env := newTestEnv(t)

	send := func(ip string) *nethttp.Response {
		req := jsonRequest(fiber.MethodPost, "/api/test", contactBody())
		req.Header.Set(fiber.HeaderXForwardedFor, ip)
		return env.do(t, req)
	}

	resp := send("203.0.113.7")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 201, decode(t, resp)["status"])

	resp = send("203.0.113.7")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
	assert.Equal(t, "RATE_LIMITED", decode(t, resp)["code"])

	resp = send("198.51.100.4")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestContact_RateLimitIgnoresClientSuppliedForwardedEntries(t *testing.T) {
	env := newTestEnv(t)

	send := func(forwarded string) int {
		req := jsonRequest(fiber.MethodPost, "/api/test", contactBody())
		req.Header.Set(fiber.HeaderXForwardedFor, forwarded)
		return env.do(t, req).StatusCode
	}

	assert.Equal(t, fiber.StatusCreated, send("1.1.1.1, 203.0.113.7"))
	assert.Equal(t, fiber.StatusTooManyRequests, send("2.2.2.2, 203.0.113.7"))
	assert.Equal(t, fiber.StatusTooManyRequests, send("3.3.3.3, 203.0.113.7"))
	assert.Equal(t, fiber.StatusCreated, send("1.1.1.1, 198.51.100.9"))
}

func TestContact_InvalidPhone(t *testing.T) {
	env := newTestEnv(t)
	body := contactBody()
	body["phone"] = "123"

	req := jsonRequest(fiber.MethodPost, "/api/test", body)
	req.Header.Set(fiber.HeaderXForwardedFor, "192.0.2.10")
	resp := env.do(t, req)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Neplatný formát telefonního čísla!", decode(t, resp)["message"])
}

func TestTeam_MultipartUpload(t *testing.T) {
	env := newTestEnv(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 12, 12))))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("name", "Jana"))
	require.NoError(t, w.WriteField("position", "CEO"))
	require.NoError(t, w.WriteField("facebook", "https://fb.example/jana"))
	part, err := w.CreateFormFile("image", "jana.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/team", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, env.bearer(t))
	resp := env.do(t, req)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	member := decode(t, resp)
	publicID, _ := member["imagePublicId"].(string)
	assert.NotEmpty(t, publicID)
	assert.True(t, env.host.Has(publicID))
	assert.Equal(t, "https://fb.example/jana", member["socialLinks"].(map[string]any)["facebook"])

	req = httptest.NewRequest(fiber.MethodDelete, "/api/team/"+member["id"].(string), nil)
	req.Header.Set(fiber.HeaderAuthorization, env.bearer(t))
	resp = env.do(t, req)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.False(t, env.host.Has(publicID))
}

func TestAbout_CreatedThenUpdated(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/about", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	post := func(body map[string]string) *nethttp.Response {
		req := jsonRequest(fiber.MethodPost, "/api/about", body)
		req.Header.Set(fiber.HeaderAuthorization, env.bearer(t))
		return env.do(t, req)
	}

	resp = post(map[string]string{"text": "About us", "imageUrl": "https://cdn.example.com/about.jpg"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = post(map[string]string{"text": "About us, revised"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	about := decode(t, resp)
	assert.Equal(t, "About us, revised", about["text"])
	assert.Equal(t, "https://cdn.example.com/about.jpg", about["imageUrl"])
}

func TestErrors_Envelope(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/nowhere", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["code"])

	resp = env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/projects/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	envelope := decode(t, resp)
	assert.Equal(t, "INVALID_ID", envelope["code"])
	assert.NotContains(t, envelope, "stack")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, httptest.NewRequest(fiber.MethodGet, "/api/test", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = env.do(t, httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
