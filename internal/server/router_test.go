package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/evernight/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newTestClient(t *testing.T, deps RouterDeps) *testClient {
	t.Helper()
	store := auth.NewStore(auth.Config{InsecureCookie: true}).WithLogger(zerolog.Nop())
	deps.Handler = NewHandler(store)

	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, srv: srv, client: &http.Client{Jar: jar}}
}

func (c *testClient) get(path string) (int, string) {
	c.t.Helper()
	resp, err := c.client.Get(c.srv.URL + path)
	require.NoError(c.t, err)
	return readBody(c.t, resp)
}

func (c *testClient) post(path string, form url.Values) (int, string) {
	c.t.Helper()
	resp, err := c.client.PostForm(c.srv.URL+path, form)
	require.NoError(c.t, err)
	return readBody(c.t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestPageSetsCookie(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	resp, err := c.client.Get(c.srv.URL + "/auth")
	require.NoError(t, err)
	status, body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="login-form"`)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	u, _ := url.Parse(c.srv.URL)
	cookies := c.client.Jar.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_card", cookies[0].Name)
}

func TestRootRedirectsToAuth(t *testing.T) {
	c := newTestClient(t, RouterDeps{})
	status, body := c.get("/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `id="login-form"`)
}

func TestLoginSubmitShowsNotificationOnce(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	status, body := c.post("/auth/login", url.Values{
		"email":    {"a@b.com"},
		"password": {"password1"},
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, `value="a@b.com"`)

	_, body = c.get("/auth")
	assert.NotContains(t, body, "Login successful!")
}

func TestLoginSubmitInvalid(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	status, body := c.post("/auth/login", url.Values{
		"email":    {"nope"},
		"password": {"short"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "Must be a valid email.")
	assert.Contains(t, body, "Must be at least 8 characters.")
	assert.NotContains(t, body, "Login successful!")
}

func TestRegisterMismatch(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	status, _ := c.post("/auth/tab", url.Values{"tab": {"register"}})
	require.Equal(t, http.StatusOK, status)

	status, body := c.post("/auth/register", url.Values{
		"email":           {"a@b.com"},
		"password":        {"Password1!"},
		"confirmPassword": {"Password2!"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, `id="register-form"`)
	assert.Contains(t, body, "Passwords do not match.")
	assert.NotContains(t, body, "Registration successful!")
}

func TestTabSwitchClearsRegisterForm(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	c.post("/auth/tab", url.Values{"tab": {"register"}})
	_, body := c.post("/auth/register/visibility", url.Values{
		"email":    {"x@y.com"},
		"password": {"Password1!"},
		"field":    {"password"},
	})
	assert.Contains(t, body, `value="x@y.com"`)
	assert.Contains(t, body, `type="text"`)

	c.post("/auth/tab", url.Values{"tab": {"login"}})
	_, body = c.post("/auth/tab", url.Values{"tab": {"register"}})
	assert.NotContains(t, body, `value="x@y.com"`)
	assert.NotContains(t, body, `type="text"`)
}

func TestResetClearsForm(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	c.post("/auth/login", url.Values{"email": {"bad"}})
	status, body := c.post("/auth/login/reset", url.Values{"email": {"bad"}})
	assert.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, `value="bad"`)
	assert.NotContains(t, body, "Must be a valid email.")
}

func TestBlur(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	status, body := c.post("/auth/login/blur", url.Values{"field": {"email"}, "email": {"bad"}})
	require.Equal(t, http.StatusOK, status)

	var res BlurResult
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.Equal(t, BlurResult{Field: "email", Errors: []string{"Must be a valid email."}, Invalid: true}, res)

	_, body = c.post("/auth/login/blur", url.Values{"field": {"email"}, "email": {"a@b.com"}})
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	assert.False(t, res.Invalid)
	assert.Empty(t, res.Errors)
}

func TestStrengthEndpoint(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	status, body := c.post("/auth/strength", url.Values{"password": {"Password1!"}})
	require.Equal(t, http.StatusOK, status)

	var sv auth.StrengthView
	require.NoError(t, json.Unmarshal([]byte(body), &sv))
	assert.Equal(t, 5, sv.Score)
	assert.Equal(t, "Very strong", sv.Label)
	assert.Equal(t, 100, sv.Percent)
	assert.Len(t, sv.Requirements, 5)

	_, body = c.post("/auth/strength", url.Values{})
	require.NoError(t, json.Unmarshal([]byte(body), &sv))
	assert.Equal(t, 0, sv.Score)
	assert.Equal(t, "Enter a password", sv.Label)
}

func TestErrors(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	testCases := []struct {
		path   string
		form   url.Values
		status int
		code   string
	}{
		{"/auth/admin", url.Values{}, http.StatusNotFound, "UNKNOWN_FORM"},
		{"/auth/tab", url.Values{"tab": {"admin"}}, http.StatusNotFound, "UNKNOWN_FORM"},
		{"/auth/login/blur", url.Values{"field": {"username"}}, http.StatusBadRequest, "UNKNOWN_FIELD"},
		{"/auth/login/visibility", url.Values{"field": {"email"}}, http.StatusBadRequest, "UNKNOWN_FIELD"},
		{"/auth/register/blur", url.Values{"field": {"password"}, "password": {"Password1!"}}, http.StatusConflict, "INACTIVE_FORM"},
		{"/auth/register", url.Values{"email": {"a@b.com"}}, http.StatusConflict, "INACTIVE_FORM"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			status, body := c.post(tc.path, tc.form)
			assert.Equal(t, tc.status, status)

			var eb ErrorBody
			require.NoError(t, json.Unmarshal([]byte(body), &eb))
			assert.Equal(t, tc.code, eb.Error.Code)
			assert.NotEmpty(t, eb.Error.RequestID)
		})
	}
}

func TestInactiveFormKeepsMeterInSync(t *testing.T) {
	c := newTestClient(t, RouterDeps{})
	c.get("/auth")

	status, _ := c.post("/auth/register/blur", url.Values{"field": {"password"}, "password": {"Password1!"}})
	assert.Equal(t, http.StatusConflict, status)

	status, body := c.post("/auth/tab", url.Values{"tab": {"register"}})
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, `value="Password1!"`)
	assert.Contains(t, body, `data-score="0"`)

	c.post("/auth/register/blur", url.Values{"field": {"password"}, "password": {"Password1!"}})
	_, body = c.get("/auth")
	assert.Contains(t, body, `value="Password1!"`)
	assert.Contains(t, body, `data-score="5"`)
}

func TestSubmitRejectsRawInput(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	status, body := c.post("/auth/login", url.Values{
		"email":    {"a@b.com"},
		"password": {"pass\x00word1"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, `data-type="error"`)
	assert.Contains(t, body, "Some values could not be accepted.")
	assert.NotContains(t, body, `value="a@b.com"`)
	assert.NotContains(t, body, "Login successful!")

	_, body = c.get("/auth")
	assert.NotContains(t, body, "Some values could not be accepted.")
}

func TestNavPages(t *testing.T) {
	c := newTestClient(t, RouterDeps{})

	for _, it := range auth.Nav("") {
		status, body := c.get(it.URL)
		assert.Equal(t, http.StatusOK, status, it.URL)
		assert.Contains(t, body, `href="`+it.URL+`" aria-current="page"`)
	}

	status, body := c.get("/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", strings.TrimSpace(body))

	status, _ = c.get("/billing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubmitRateLimit(t *testing.T) {
	c := newTestClient(t, RouterDeps{SubmitLimit: 1, SubmitWindow: time.Minute})

	form := url.Values{"email": {"a@b.com"}, "password": {"password1"}}
	status, _ := c.post("/auth/login", form)
	assert.Equal(t, http.StatusOK, status)

	status, _ = c.post("/auth/login", form)
	assert.Equal(t, http.StatusTooManyRequests, status)

	// other routes are not limited
	status, _ = c.get("/auth")
	assert.Equal(t, http.StatusOK, status)
}
