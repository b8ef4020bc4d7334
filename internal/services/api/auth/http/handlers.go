// Package http provides http transport for auth and user management
package http

import (
	stdhttp "net/http"

	"airwatch/internal/modkit/httpkit"
	"airwatch/internal/platform/net/middleware"
	"airwatch/internal/services/api/auth/domain"
	svc "airwatch/internal/services/api/auth/service"
)

// Register mounts auth endpoints on the given router
// login is public, /me needs a session and /users is admin only
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)

	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Get(pr, "/me", h.me)
	})

	httpkit.Admin(r, port, func(ar httpkit.Router) {
		httpkit.PostJSON[domain.CreateUserInput](ar, "/users", h.createUser)
		httpkit.GetQuery[domain.ListUsersInput](ar, "/users", h.listUsers)
		httpkit.Get(ar, "/users/{id}", h.getUser)
		httpkit.PutJSON[domain.UpdateUserInput](ar, "/users/{id}", h.updateUser)
		httpkit.Delete(ar, "/users/{id}", h.deleteUser)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /auth/login Auth authLogin
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Session "ok"
// @Failure 401 {object} map[string]any "Invalid credentials"
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	sess, err := h.svc.Login(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "Login successful", sess), nil
}

// swagger:route GET /auth/me Auth authMe
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User "ok"
// @Router /auth/me [get]
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	p, err := httpkit.Principal(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Me(r.Context(), p.ID)
}

// swagger:route POST /auth/users Auth authCreateUser
// @Summary Create a user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.CreateUserInput true "User"
// @Success 201 {object} domain.User "created"
// @Failure 409 {object} map[string]any "duplicate"
// @Router /auth/users [post]
func (h *handlers) createUser(r *stdhttp.Request, in domain.CreateUserInput) (any, error) {
	p, err := httpkit.Principal(r)
	if err != nil {
		return nil, err
	}
	u, err := h.svc.CreateUser(r.Context(), in, &p.ID)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusCreated, "User created successfully", u), nil
}

// swagger:route GET /auth/users Auth authListUsers
// @Summary List users
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param role query string false "ADMIN or ANNOTATOR"
// @Param search query string false "Matches name, email or recorderId"
// @Success 200 {object} map[string]any "users page"
// @Router /auth/users [get]
func (h *handlers) listUsers(r *stdhttp.Request, in domain.ListUsersInput) (any, error) {
	res, err := h.svc.ListUsers(r.Context(), in)
	if err != nil {
		return nil, err
	}
	pg := in.Paging.Norm()
	return httpkit.List("users", res.Users, httpkit.Page{Page: pg.Page, Limit: pg.Limit, Total: res.Total}), nil
}

// swagger:route GET /auth/users/{id} Auth authGetUser
// @Summary Get a user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} domain.User "ok"
// @Failure 404 {object} map[string]any "User not found"
// @Router /auth/users/{id} [get]
func (h *handlers) getUser(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.GetUser(r.Context(), id)
}

// swagger:route PUT /auth/users/{id} Auth authUpdateUser
// @Summary Update a user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param payload body domain.UpdateUserInput true "Fields to change"
// @Success 200 {object} domain.User "ok"
// @Router /auth/users/{id} [put]
func (h *handlers) updateUser(r *stdhttp.Request, in domain.UpdateUserInput) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	u, err := h.svc.UpdateUser(r.Context(), id, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "User updated successfully", u), nil
}

// swagger:route DELETE /auth/users/{id} Auth authDeleteUser
// @Summary Delete a user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} map[string]any "deleted"
// @Router /auth/users/{id} [delete]
func (h *handlers) deleteUser(r *stdhttp.Request) (any, error) {
	id, err := httpkit.ParamInt64(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.Msg(stdhttp.StatusOK, "User deleted successfully", nil), nil
}
