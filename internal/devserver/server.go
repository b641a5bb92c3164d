// Package devserver is a local implementation of the WiseMind REST API
// backed by SQLite, used for development and integration tests.
package devserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/wisemind/internal/db"
	"github.com/alexanderramin/wisemind/internal/repository"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// APIPrefix is where every endpoint is mounted.
const APIPrefix = "/api/v1"

// resetCodeTTL bounds how long a forgot-password code is accepted.
const resetCodeTTL = 15 * time.Minute

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Logger     *zap.Logger
	// UoW overrides the transaction runner, for failure injection in tests.
	UoW db.UnitOfWork
	// ResetCode generates forgot-password codes.
	ResetCode func() string
	Now       func() time.Time
}

// Server serves the REST API over one SQLite database.
type Server struct {
	users   repository.UserRepo
	docs    repository.DocumentRepo
	resets  repository.PasswordResetRepo
	revoked repository.RevokedTokenRepo
	uow     db.UnitOfWork

	issuer     *tokenIssuer
	bcryptCost int
	logger     *zap.Logger
	resetCode  func() string
	now        func() time.Time

	router *mux.Router
}

func New(database *sql.DB, opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	s := &Server{
		users:      repository.NewSQLiteUserRepo(database),
		docs:       repository.NewSQLiteDocumentRepo(database),
		resets:     repository.NewSQLitePasswordResetRepo(database),
		revoked:    repository.NewSQLiteRevokedTokenRepo(database),
		uow:        opts.UoW,
		bcryptCost: opts.BcryptCost,
		logger:     opts.Logger,
		resetCode:  opts.ResetCode,
		now:        opts.Now,
	}
	if s.uow == nil {
		s.uow = db.NewSQLiteUnitOfWork(database)
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.resetCode == nil {
		s.resetCode = randomCode
	}
	if s.now == nil {
		s.now = time.Now
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s.issuer = &tokenIssuer{secret: []byte(opts.JWTSecret), ttl: ttl, now: s.now}
	s.router = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", zap.String("addr", addr), zap.String("prefix", APIPrefix))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("dev server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such resource: "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	r.Use(s.logRequests)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	public := r.PathPrefix(APIPrefix).Subrouter()
	public.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	public.HandleFunc("/signup", s.handleSignup).Methods(http.MethodPost)
	public.HandleFunc("/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	public.HandleFunc("/verify-forgot-password", s.handleVerifyForgotPassword).Methods(http.MethodPost)
	public.HandleFunc("/change-forgotten-password", s.handleChangeForgottenPassword).Methods(http.MethodPost)

	authed := r.PathPrefix(APIPrefix).Subrouter()
	authed.Use(s.requireAuth)
	authed.HandleFunc("/buy-subscription", s.handleBuySubscription).Methods(http.MethodPost)
	authed.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	authed.HandleFunc("/profile", s.handleProfile).Methods(http.MethodGet)
	authed.HandleFunc("/progress", s.handleProgress).Methods(http.MethodGet)
	authed.HandleFunc("/treatment-plan", s.handleTreatmentPlan).Methods(http.MethodGet)
	authed.HandleFunc("/suds-list", s.handleSudsList).Methods(http.MethodGet)
	authed.HandleFunc("/suds-calendar/{key}", s.handleSudsCalendar).Methods(http.MethodGet)
	for _, d := range documentResources {
		path := "/" + d.resource
		if d.keyed {
			path += "/{key}"
		}
		authed.HandleFunc(path, s.handleGetDocument(d)).Methods(http.MethodGet)
		authed.HandleFunc(path, s.handlePutDocument(d)).Methods(http.MethodPut)
	}
	return r
}

func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
