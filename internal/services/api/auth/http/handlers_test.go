package http_test

import (
	"context"
	stdhttp "net/http"
	"testing"

	"airwatch/internal/modkit/httpkit"
	perr "airwatch/internal/platform/errors"
	pnet "airwatch/internal/platform/net"
	phttp "airwatch/internal/platform/net/http"
	kit "airwatch/internal/platform/testkit"
	"airwatch/internal/services/api/auth/domain"
	authhttp "airwatch/internal/services/api/auth/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSvc struct {
	domain.ServicePort
	created   domain.CreateUserInput
	createdBy *int64
	listIn    domain.ListUsersInput
}

var callers = map[string]pnet.Principal{
	"admin": {ID: 1, Name: "Root", Role: domain.RoleAdmin},
	"anno":  {ID: 2, Name: "Ann", Role: domain.RoleAnnotator},
}

func (f *fakeSvc) Resolve(_ context.Context, token string) (pnet.Principal, error) {
	p, ok := callers[token]
	if !ok {
		return pnet.Principal{}, perr.Unauthorizedf("Invalid token")
	}
	return p, nil
}

func (f *fakeSvc) Login(_ context.Context, in domain.LoginInput) (domain.Session, error) {
	if in.Password != "password123" {
		return domain.Session{}, domain.ErrInvalidCredentials()
	}
	return domain.Session{User: domain.User{ID: 1, Email: in.Email, Role: domain.RoleAdmin}, Token: "admin"}, nil
}

func (f *fakeSvc) Me(_ context.Context, id int64) (domain.User, error) {
	return domain.User{ID: id, Name: "Ann"}, nil
}

func (f *fakeSvc) CreateUser(_ context.Context, in domain.CreateUserInput, by *int64) (domain.User, error) {
	f.created, f.createdBy = in, by
	return domain.User{ID: 7, Name: in.Name, Email: in.Email, Role: in.Role, CreatedBy: by}, nil
}

func (f *fakeSvc) GetUser(_ context.Context, id int64) (domain.User, error) {
	if id != 7 {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return domain.User{ID: 7}, nil
}

func (f *fakeSvc) ListUsers(_ context.Context, in domain.ListUsersInput) (domain.UserList, error) {
	f.listIn = in
	return domain.UserList{Users: []domain.User{{ID: 7}}, Total: 11}, nil
}

func (f *fakeSvc) DeleteUser(_ context.Context, id int64) error {
	if id != 7 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func server(s *fakeSvc) stdhttp.Handler {
	m := chi.NewRouter()
	port := httpkit.NewPortFunc(func(r *stdhttp.Request, tok string) (pnet.Principal, error) {
		return s.Resolve(r.Context(), tok)
	})
	phttp.AdaptChi(m).Route("/auth", func(r httpkit.Router) { authhttp.Register(r, s, port) })
	return m
}

func TestLogin(t *testing.T) {
	h := server(&fakeSvc{})

	rec := kit.Do(t, h, kit.Request{Method: "POST", Path: "/auth/login", Body: map[string]string{"email": "root@airwatch.local", "password": "password123"}})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	env := kit.DecodeEnvelope(t, rec)
	assert.Equal(t, "Login successful", env.Message)
	var sess struct {
		Token string `json:"token"`
		User  struct {
			Password *string `json:"password"`
		} `json:"user"`
	}
	kit.DecodeData(t, env, &sess)
	assert.Equal(t, "admin", sess.Token)
	assert.Nil(t, sess.User.Password)

	rec = kit.Do(t, h, kit.Request{Method: "POST", Path: "/auth/login", Body: map[string]string{"email": "root@airwatch.local", "password": "nope"}})
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", kit.DecodeEnvelope(t, rec).Message)

	rec = kit.Do(t, h, kit.Request{Method: "POST", Path: "/auth/login", Body: map[string]string{"email": "not-an-email", "password": "x"}})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestMeRequiresToken(t *testing.T) {
	h := server(&fakeSvc{})

	rec := kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/me"})
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/me", Token: "anno"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var u domain.User
	kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &u)
	assert.EqualValues(t, 2, u.ID)
}

func TestUsersAreAdminOnly(t *testing.T) {
	s := &fakeSvc{}
	h := server(s)

	rec := kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/users", Token: "anno"})
	assert.Equal(t, stdhttp.StatusForbidden, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/users?page=2&limit=5&role=ANNOTATOR&search=ann", Token: "admin"})
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var page struct {
		Users       []domain.User `json:"users"`
		Total       int64         `json:"total"`
		TotalPages  int           `json:"totalPages"`
		CurrentPage int           `json:"currentPage"`
	}
	kit.DecodeData(t, kit.DecodeEnvelope(t, rec), &page)
	assert.Len(t, page.Users, 1)
	assert.EqualValues(t, 11, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, "ann", s.listIn.Search)

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/users?role=OWNER", Token: "admin"})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestCreateUserRecordsCreator(t *testing.T) {
	s := &fakeSvc{}
	h := server(s)

	body := map[string]string{"name": "Ann", "email": "ann@airwatch.local", "password": "password123", "role": "ANNOTATOR"}
	rec := kit.Do(t, h, kit.Request{Method: "POST", Path: "/auth/users", Token: "admin", Body: body})
	require.Equal(t, stdhttp.StatusCreated, rec.Code)
	assert.Equal(t, "User created successfully", kit.DecodeEnvelope(t, rec).Message)
	require.NotNil(t, s.createdBy)
	assert.EqualValues(t, 1, *s.createdBy)

	body["password"] = "short"
	rec = kit.Do(t, h, kit.Request{Method: "POST", Path: "/auth/users", Token: "admin", Body: body})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "password", kit.DecodeEnvelope(t, rec).Field)
}

func TestUserByIDRoutes(t *testing.T) {
	h := server(&fakeSvc{})

	rec := kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/users/8", Token: "admin"})
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", kit.DecodeEnvelope(t, rec).Code)

	rec = kit.Do(t, h, kit.Request{Method: "GET", Path: "/auth/users/abc", Token: "admin"})
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	rec = kit.Do(t, h, kit.Request{Method: "DELETE", Path: "/auth/users/7", Token: "admin"})
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", kit.DecodeEnvelope(t, rec).Message)
}
