// Package service contains user and session workflows
package service

import (
	"context"
	"strings"

	"airwatch/internal/modkit/repokit"
	perr "airwatch/internal/platform/errors"
	"airwatch/internal/platform/logger"
	pnet "airwatch/internal/platform/net"
	"airwatch/internal/platform/security"
	"airwatch/internal/services/api/auth/domain"
	"airwatch/internal/services/api/auth/repo"
)

// Service defines the service contract for auth
type Service interface{ domain.ServicePort }

// TokenIssuer signs and verifies session tokens
type TokenIssuer interface {
	Issue(id int64, role string) (string, security.Claims, error)
	Parse(raw string) (security.Claims, error)
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	tokens TokenIssuer
	hasher security.Hasher
}

// New creates a new auth service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], tokens TokenIssuer, hasher security.Hasher) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if tokens == nil {
		panic("auth.Service requires a token issuer")
	}
	if hasher == nil {
		panic("auth.Service requires a password hasher")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, tokens: tokens, hasher: hasher}
}

// Login checks the credentials and issues a session token
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	u, err := s.Repo.ByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if repokit.IsNoRows(err) {
			return domain.Session{}, domain.ErrInvalidCredentials()
		}
		return domain.Session{}, perr.FromPostgres(err, "Failed to log in")
	}
	if !s.hasher.Verify(u.Password, in.Password) {
		return domain.Session{}, domain.ErrInvalidCredentials()
	}
	tok, _, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return domain.Session{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Failed to issue token")
	}
	logger.C(ctx).Info().Int64("user_id", u.ID).Str("role", u.Role).Msg("login")
	return domain.Session{User: toUser(u), Token: tok}, nil
}

// Me returns the caller's own record
func (s *Svc) Me(ctx context.Context, id int64) (domain.User, error) {
	return s.GetUser(ctx, id)
}

// CreateUser hashes the password and inserts the account
func (s *Svc) CreateUser(ctx context.Context, in domain.CreateUserInput, createdBy *int64) (domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Failed to create user")
	}
	row, err := s.Repo.Insert(ctx, repo.RowUser{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Password:   hash,
		Role:       in.Role,
		RecorderID: in.RecorderID,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return domain.User{}, userWriteErr(err, "Failed to create user")
	}
	return toUser(row), nil
}

// EnsureUser creates the account unless one already exists for the email
// created reports whether a new row was written
func (s *Svc) EnsureUser(ctx context.Context, in domain.CreateUserInput) (domain.User, bool, error) {
	existing, err := s.Repo.ByEmail(ctx, strings.TrimSpace(in.Email))
	switch {
	case err == nil:
		return toUser(existing), false, nil
	case !repokit.IsNoRows(err):
		return domain.User{}, false, perr.FromPostgres(err, "Failed to look up user")
	}
	u, err := s.CreateUser(ctx, in, nil)
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

// UpdateUser patches the present fields, rehashing a new password
func (s *Svc) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (domain.User, error) {
	if in.Empty() {
		return domain.User{}, domain.ErrEmptyUpdate()
	}
	p := repo.Patch{Name: in.Name, Email: in.Email, RecorderID: in.RecorderID}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return domain.User{}, perr.Wrap(err, perr.ErrorCodeUnknown, "Failed to update user")
		}
		p.Password = &hash
	}
	row, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return domain.User{}, userWriteErr(repokit.NotFound(err, domain.ErrUserNotFound), "Failed to update user")
	}
	return toUser(row), nil
}

// DeleteUser removes the account; created_by on its users is cleared by the schema
func (s *Svc) DeleteUser(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return userWriteErr(repokit.NotFound(err, domain.ErrUserNotFound), "Failed to delete user")
	}
	return nil
}

// GetUser returns one account
func (s *Svc) GetUser(ctx context.Context, id int64) (domain.User, error) {
	row, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return domain.User{}, userWriteErr(repokit.NotFound(err, domain.ErrUserNotFound), "Failed to fetch user")
	}
	return toUser(row), nil
}

// ListUsers pages through accounts, newest first
func (s *Svc) ListUsers(ctx context.Context, in domain.ListUsersInput) (domain.UserList, error) {
	pg := in.Paging.Norm()
	rows, total, err := s.Repo.List(ctx, repo.ListFilter{
		Role:   in.Role,
		Search: strings.TrimSpace(in.Search),
		Limit:  pg.Limit,
		Offset: pg.Offset(),
	})
	if err != nil {
		return domain.UserList{}, perr.FromPostgres(err, "Failed to fetch users")
	}
	out := make([]domain.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, toUser(r))
	}
	return domain.UserList{Users: out, Total: total}, nil
}

// Resolve verifies the token and loads the user it names
func (s *Svc) Resolve(ctx context.Context, token string) (pnet.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return pnet.Principal{}, perr.Wrap(err, perr.ErrorCodeUnauthorized, "Invalid token")
	}
	u, err := s.Repo.ByID(ctx, claims.ID)
	if err != nil {
		if repokit.IsNoRows(err) {
			return pnet.Principal{}, domain.ErrTokenUser()
		}
		return pnet.Principal{}, perr.FromPostgres(err, "Failed to resolve user")
	}
	return pnet.Principal{ID: u.ID, Name: u.Name, Role: u.Role}, nil
}

// userWriteErr keeps domain errors, maps unique violations and wraps the rest
func userWriteErr(err error, msg string) error {
	switch {
	case perr.Known(err):
		return err
	case perr.IsDuplicateKey(err):
		return domain.ErrDuplicateUser(err)
	default:
		return perr.FromPostgres(err, msg)
	}
}

func toUser(r repo.RowUser) domain.User {
	return domain.User{
		ID:         r.ID,
		Name:       r.Name,
		Email:      r.Email,
		Role:       r.Role,
		RecorderID: r.RecorderID,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
