package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sitenexus/sitenexus/internal/common"
	"github.com/sitenexus/sitenexus/internal/logging"
	"github.com/sitenexus/sitenexus/internal/server/auth"
	"github.com/sitenexus/sitenexus/internal/server/sites"
	"github.com/sitenexus/sitenexus/internal/server/users"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	regOut *users.User
	regErr error

	loginOut string
	loginErr error

	resetReqErr error
	resetErr    error

	uploadErr error

	imgData []byte
	imgType string
	imgErr  error
}

func (f *fakeUsers) Register(ctx context.Context, companyName, email, password string) (*users.User, error) {
	return f.regOut, f.regErr
}
func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginOut, f.loginErr
}
func (f *fakeUsers) RequestPasswordReset(ctx context.Context, email string) error {
	return f.resetReqErr
}
func (f *fakeUsers) ResetPassword(ctx context.Context, token, newPassword string) error {
	return f.resetErr
}
func (f *fakeUsers) UploadImage(ctx context.Context, userID string, data []byte, contentType string) error {
	return f.uploadErr
}
func (f *fakeUsers) GetImage(ctx context.Context, userID string) ([]byte, string, error) {
	return f.imgData, f.imgType, f.imgErr
}

type fakeSites struct {
	createOut *sites.Site
	createErr error

	listOut []*sites.Site
	listErr error

	getOut *sites.Site
	getErr error

	replaceOut *sites.Site
	replaceErr error

	deleteErr error
}

func (f *fakeSites) Create(ctx context.Context, ownerID string, site *sites.Site) (*sites.Site, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	site.OwnerID = ownerID
	return site, nil
}
func (f *fakeSites) ListOwned(ctx context.Context, ownerID string) ([]*sites.Site, error) {
	return f.listOut, f.listErr
}
func (f *fakeSites) GetByID(ctx context.Context, id int64) (*sites.Site, error) {
	return f.getOut, f.getErr
}
func (f *fakeSites) ReplaceInventory(ctx context.Context, id int64, inventory []sites.InventoryItem) (*sites.Site, error) {
	return f.replaceOut, f.replaceErr
}
func (f *fakeSites) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

// ---- helpers ----

const testSecret = "k"

func newServer(u userService, s siteService) *HTTPServer {
	return &HTTPServer{
		address:   "127.0.0.1:0",
		logger:    nopLogger{},
		users:     u,
		sites:     s,
		jwtSecret: []byte(testSecret),
	}
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sessionToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, auth.PurposeSession, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return tok
}

// ---- tests ----

func TestRegister_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"created", nil, http.StatusCreated},
		{"duplicate email", common.ErrorAlreadyExists, http.StatusBadRequest},
		{"validation", common.ErrorValidation, http.StatusBadRequest},
		{"store failure", common.ErrorInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newServer(&fakeUsers{regOut: &users.User{ID: "u1"}, regErr: tc.err}, &fakeSites{})
			rr := doJSON(t, s.Router(), http.MethodPost, "/register", "",
				map[string]string{"companyName": "Acme", "email": "a@x.com", "password": "pw1"})
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rr.Code, tc.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestLogin_ReturnsToken(t *testing.T) {
	s := newServer(&fakeUsers{loginOut: "tok-123"}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodPost, "/login", "",
		map[string]string{"email": "a@x.com", "password": "pw1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "tok-123" {
		t.Fatalf("token = %q, want tok-123", resp["token"])
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newServer(&fakeUsers{loginErr: common.ErrorUnauthorized}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodPost, "/login", "",
		map[string]string{"email": "a@x.com", "password": "nope"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestForgotPassword_UnknownEmailIs404(t *testing.T) {
	s := newServer(&fakeUsers{resetReqErr: common.ErrorNotFound}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodPost, "/forgot-password", "",
		map[string]string{"email": "nobody@x.com"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestResetPassword_InvalidTokenIs400(t *testing.T) {
	s := newServer(&fakeUsers{resetErr: common.ErrInvalidToken}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodPost, "/reset-password", "",
		map[string]string{"token": "bad", "newPassword": "pw2"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestProtectedEndpoints_TokenChecks(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeSites{})
	router := s.Router()

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/sites"},
		{http.MethodPost, "/sites"},
		{http.MethodPost, "/upload"},
		{http.MethodGet, "/profile-image"},
	}

	for _, ep := range protected {
		t.Run("missing "+ep.method+" "+ep.path, func(t *testing.T) {
			rr := doJSON(t, router, ep.method, ep.path, "", nil)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("missing token: status = %d, want 401", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "access denied") {
				t.Fatalf("missing token: body = %s", rr.Body.String())
			}
		})

		t.Run("invalid "+ep.method+" "+ep.path, func(t *testing.T) {
			rr := doJSON(t, router, ep.method, ep.path, "not.a.jwt", nil)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("invalid token: status = %d, want 400", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "invalid token") {
				t.Fatalf("invalid token: body = %s", rr.Body.String())
			}
		})
	}
}

func TestProtectedEndpoint_RejectsResetToken(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeSites{})

	resetTok, err := auth.GenerateToken("u1", auth.PurposeReset, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	rr := doJSON(t, s.Router(), http.MethodGet, "/sites", resetTok, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("reset token on protected endpoint: status = %d, want 400", rr.Code)
	}
}

func TestCreateSite_OwnerComesFromToken(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodPost, "/sites", sessionToken(t, "u1"),
		map[string]any{"id": 7, "name": "Depot", "ownerId": "intruder"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}

	var created sites.Site
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.OwnerID != "u1" {
		t.Fatalf("ownerId = %q, want the caller's id", created.OwnerID)
	}
}

func TestGetSite_OpenAndNotFound(t *testing.T) {
	site := &sites.Site{ID: 7, Name: "Depot", OwnerID: "u1"}

	s := newServer(&fakeUsers{}, &fakeSites{getOut: site})
	// no token: reads by id are unauthenticated
	rr := doJSON(t, s.Router(), http.MethodGet, "/sites/7", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("open read: status = %d, body %s", rr.Code, rr.Body.String())
	}

	s = newServer(&fakeUsers{}, &fakeSites{getErr: common.ErrorNotFound})
	rr = doJSON(t, s.Router(), http.MethodGet, "/sites/42", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing record: status = %d, want 404", rr.Code)
	}

	rr = doJSON(t, s.Router(), http.MethodGet, "/sites/not-a-number", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("bad id: status = %d, want 404", rr.Code)
	}
}

func TestDeleteSite_NotFound(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeSites{deleteErr: common.ErrorNotFound})

	rr := doJSON(t, s.Router(), http.MethodDelete, "/sites/42", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestGetImage_ServesStoredContentType(t *testing.T) {
	img := []byte{0x89, 0x50, 0x4e, 0x47}
	s := newServer(&fakeUsers{imgData: img, imgType: "image/png"}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodGet, "/profile-image", sessionToken(t, "u1"), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type = %q, want image/png", ct)
	}
	if !bytes.Equal(rr.Body.Bytes(), img) {
		t.Fatalf("body mismatch: %v", rr.Body.Bytes())
	}
}

func TestGetImage_NotFound(t *testing.T) {
	s := newServer(&fakeUsers{imgErr: common.ErrorNotFound}, &fakeSites{})

	rr := doJSON(t, s.Router(), http.MethodGet, "/profile-image", sessionToken(t, "u1"), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
