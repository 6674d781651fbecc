package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/sngm3741/ugym-konect/api/internal/admin/application"
	"github.com/sngm3741/ugym-konect/api/internal/config"
	"github.com/sngm3741/ugym-konect/api/internal/infrastructure/messenger"
	mongodoc "github.com/sngm3741/ugym-konect/api/internal/infrastructure/mongo"
	"github.com/sngm3741/ugym-konect/api/internal/infrastructure/rabbitmq"
	rediscache "github.com/sngm3741/ugym-konect/api/internal/infrastructure/redis"
	adminhttp "github.com/sngm3741/ugym-konect/api/internal/interfaces/http/admin"
	commonhttp "github.com/sngm3741/ugym-konect/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/ugym-konect/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/ugym-konect/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	database       *mongo.Database
	redis          *goredis.Client
	amqpConn       *amqp.Connection
	publisher      *rabbitmq.Publisher
	auth           *commonhttp.Authenticator
	limiter        *commonhttp.RateLimiter
	listingQueries publicapp.ListingQueryService
	carts          publicapp.CartService
	inquiries      publicapp.InquiryCommandService
	adminListings  adminapp.ListingService
	addr           string
	allowedOrigins []string
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// routes はルーティングとミドルウェアを組み立てる。ドメインロジックはここに書かない。
func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:    s.logger,
		Listings:  s.listingQueries,
		Carts:     s.carts,
		Inquiries: s.inquiries,
	})
	router.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware)
		publicHandler.Register(r, s.auth.Middleware)
	})

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:   s.logger,
		Listings: s.adminListings,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.auth.Middleware)
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
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB (と設定されていれば Redis) への疎通を確認する。
// ドメインの状態ではなくインフラ状態のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			// ドライバのエラー内容はログにのみ残す。
			s.logger.Printf("healthz: MongoDB ping 失敗: %v", err)
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
			})
			return
		}

		resp := map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}
		if s.redis != nil {
			resp["cache"] = "ok"
			if err := s.redis.Ping(ctx).Err(); err != nil {
				s.logger.Printf("healthz: Redis ping 失敗: %v", err)
				resp["cache"] = "unavailable"
			}
		}
		commonhttp.WriteJSON(s.logger, w, http.StatusOK, resp)
	}
}

// shutdown は外部接続をタイムアウト付きで閉じ、プロセス終了時のリソースリークを防ぐ。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Printf("RabbitMQ チャネル切断時にエラー: %v", err)
		}
	}
	if s.amqpConn != nil {
		if err := s.amqpConn.Close(); err != nil {
			s.logger.Printf("RabbitMQ 切断時にエラー: %v", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Printf("Redis 切断時にエラー: %v", err)
		}
	}
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と Mongo クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
// Redis / RabbitMQ は任意。未設定または接続失敗時はキャッシュなし・ログ出力のみで起動する。
func New(cfg config.Config, client *mongo.Client) *Server {
	srv := &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		limiter:        commonhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	issuers := make([]commonhttp.JWTIssuer, 0, len(cfg.JWTConfigs))
	for _, c := range cfg.JWTConfigs {
		issuers = append(issuers, commonhttp.JWTIssuer{Issuer: c.Issuer, Secret: c.Secret})
	}
	srv.auth = commonhttp.NewAuthenticator(issuers, cfg.JWTAudience, srv.logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := mongodoc.EnsureIndexes(ctx, srv.database, mongodoc.Collections{
		Listings:  cfg.ListingCollection,
		Carts:     cfg.CartCollection,
		Inquiries: cfg.InquiryCollection,
	}); err != nil {
		srv.logger.Printf("インデックス作成に失敗しました: %v", err)
	}

	var listings publicapp.ListingRepository = mongodoc.NewListingRepository(srv.database, cfg.ListingCollection)
	var invalidator adminapp.FeedInvalidator
	if cfg.RedisURL != "" {
		redisClient, err := rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			srv.logger.Printf("Redis に接続できないためフィードキャッシュを無効化します: %v", err)
		} else {
			srv.redis = redisClient
			cached := rediscache.NewCachedListingRepository(listings, redisClient, cfg.ListingCacheTTL, srv.logger)
			listings = cached
			invalidator = cached
		}
	}

	var publisher publicapp.CheckoutPublisher = rabbitmq.LogPublisher{Logger: srv.logger}
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			srv.logger.Printf("RabbitMQ に接続できないためチェックアウトはログ出力のみになります: %v", err)
		} else if p, err := rabbitmq.NewPublisher(conn, cfg.CheckoutExchange); err != nil {
			srv.logger.Printf("RabbitMQ チャネルの初期化に失敗: %v", err)
			_ = conn.Close()
		} else {
			srv.amqpConn = conn
			srv.publisher = p
			publisher = p
		}
	}

	notifier := messenger.NewNotifier(messenger.Config{
		Endpoint:           cfg.MessengerEndpoint,
		Destination:        cfg.MessengerDestination,
		DiscordDestination: cfg.DiscordDestination,
		SlackDestination:   cfg.SlackDestination,
		AdminBaseURL:       cfg.AdminBaseURL,
		HTTPClient:         &http.Client{Timeout: cfg.MessengerTimeout},
		Failures:           mongodoc.NewFailedNotificationRepository(srv.database, cfg.FailedNotificationCollection),
		Logger:             srv.logger,
		RetryDelay:         200 * time.Millisecond,
	})

	srv.listingQueries = publicapp.NewListingQueryService(listings)
	srv.carts = publicapp.NewCartService(mongodoc.NewCartRepository(srv.database, cfg.CartCollection), publisher, cfg.PlatformFeeRate)
	srv.inquiries = publicapp.NewInquiryCommandService(listings, mongodoc.NewInquiryRepository(srv.database, cfg.InquiryCollection), notifier, srv.logger)
	srv.adminListings = adminapp.NewListingService(mongodoc.NewAdminListingRepository(srv.database, cfg.ListingCollection), invalidator, srv.logger)

	return srv
}
