package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/config"
	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	mongodoc "github.com/sngm3741/feedbackpro/api/internal/infrastructure/mongo"
	adminhttp "github.com/sngm3741/feedbackpro/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"
	httpmiddleware "github.com/sngm3741/feedbackpro/api/internal/interfaces/http/middleware"
	publichttp "github.com/sngm3741/feedbackpro/api/internal/interfaces/http/public"
	"github.com/sngm3741/feedbackpro/api/internal/logging"
)

// Infrastructure carries the adapters built in main. Nil Guard and Events fall back to the
// in-process guard and the no-op publisher.
type Infrastructure struct {
	Blobs  application.BlobStore
	Guard  application.InflightGuard
	Events application.EventPublisher
	// Closers run after the HTTP server and before Mongo disconnects.
	Closers []func() error
}

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *logging.Logger
	client         *mongo.Client
	location       *time.Location
	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	addr           string
	allowedOrigins []string
	mediaBaseURL   string
	maxUploadBytes int64
	closers        []func() error

	intake     *application.IntakeService
	dashboards *application.DashboardRegistry
	deletion   *application.DeletionService
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info(context.Background(), "http server listening", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// Router assembles middleware, the public routes and the JWT-gated admin routes.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpmiddleware.NewLoggingMiddleware(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:         s.logger,
		Intake:         s.intake,
		MediaBaseURL:   s.mediaBaseURL,
		MaxUploadBytes: s.maxUploadBytes,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:       s.logger,
		Dashboards:   s.dashboards,
		Deletion:     s.deletion,
		MediaBaseURL: s.mediaBaseURL,
		Location:     s.location,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		adminHandler.Register(r)
	})
	return router
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition,"+httpmiddleware.TraceHeader)
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通のみを確認する。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(r.Context(), s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(r.Context(), s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// authMiddleware は Authorization ヘッダーから JWT を検証し、認証済みレビュアーをコンテキストへ詰める。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteError(r.Context(), s.logger, w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteError(r.Context(), s.logger, w, http.StatusUnauthorized, "a Bearer token is required")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteError(r.Context(), s.logger, w, http.StatusUnauthorized, "access token is empty")
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteError(r.Context(), s.logger, w, http.StatusUnauthorized, err.Error())
			return
		}

		user := commonhttp.AuthenticatedUser{
			ID:       claims.Subject,
			Name:     claims.Name,
			Username: claims.PreferredUsername,
			Picture:  claims.Picture,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken は複数の JWT 設定を順番に試し、署名と Issuer/Audience を検証する。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, errors.New("authentication is not configured")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}
		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, errors.New("access token is invalid")
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

type authClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name,omitempty"`
	Picture           string `json:"picture,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
}

// shutdown は外部接続を閉じ、MongoDB をタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Warn(ctx, "close dependency failed", zap.Error(err))
		}
	}
	if s.client == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "mongo disconnect failed", zap.Error(err))
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を行う。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server stopped: %w", err)
		}
	case sig := <-sigChan:
		srv.logger.Info(context.Background(), "shutdown signal received", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Warn(ctx, "http server shutdown failed", zap.Error(err))
		}
	}

	srv.shutdown(context.Background())
	return runErr
}

// New は設定と接続済みクライアントからアプリケーションサービスを組み立てた Server を返す。
func New(cfg *config.Config, logger *logging.Logger, client *mongo.Client, infra Infrastructure) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
		logger.Warn(context.Background(), "unknown timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	events := infra.Events
	if events == nil {
		events = application.NoopPublisher{}
	}

	repo := mongodoc.NewFeedbackRepository(client.Database(cfg.MongoDatabase), cfg.FeedbackCollection)
	dashboards := application.NewDashboardRegistry(repo)

	return &Server{
		logger:         logger,
		client:         client,
		location:       loc,
		jwtConfigs:     cfg.JWTConfigs(),
		jwtAudience:    strings.TrimSpace(cfg.JWTAudience),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		mediaBaseURL:   cfg.MediaBaseURL,
		maxUploadBytes: cfg.MaxUploadBytes,
		closers:        infra.Closers,
		intake: application.NewIntakeService(
			application.IntakeConfig{EmailDomain: cfg.ContactEmailDomain},
			repo,
			infra.Blobs,
			application.WithDashboards(dashboards),
			application.WithEvents(events),
			application.WithLocation(loc),
			application.WithLogger(logger),
		),
		dashboards: dashboards,
		deletion:   application.NewDeletionService(repo, infra.Guard, events, dashboards, logger),
	}
}
