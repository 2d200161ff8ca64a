// Package web は gin を使った HTTP JSON API を提供します。
// 生成・一覧・削除・画像配信のエンドポイントを /api 配下に公開します。
package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-art-studio/internal/studio"
	"github.com/shouni/go-art-studio/pkg/domain"
)

// shutdownTimeout はグレースフルシャットダウンの猶予時間です。
const shutdownTimeout = 10 * time.Second

// StudioService はハンドラが必要とするアプリケーションサービスの操作一式です。
// *studio.Studio がこれを満たします。
type StudioService interface {
	CreateDrawing(ctx context.Context, req studio.DrawingRequest) (*domain.Creation, error)
	CreateLego(ctx context.Context, req studio.LegoRequest) (*domain.Creation, error)
	CreatePlayground(ctx context.Context, req studio.PlaygroundRequest) (*domain.Creation, error)
	ListCreations(ctx context.Context) ([]*domain.Creation, error)
	ListCreationsByType(ctx context.Context, t domain.CreationType) ([]*domain.Creation, error)
	Delete(ctx context.Context, id string) (bool, error)
	OpenImage(ctx context.Context, filename string) (io.ReadCloser, error)
}

// Server は HTTP サーバ本体です。
type Server struct {
	studio StudioService
	engine *gin.Engine
	addr   string
}

// NewServer はルーティングを構成した Server を返します。
func NewServer(st StudioService, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{studio: st, engine: engine, addr: addr}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.POST("/generate/drawing", s.handleGenerateDrawing)
		api.POST("/generate/lego", s.handleGenerateLego)
		api.POST("/generate/playground", s.handleGeneratePlayground)

		api.GET("/creations", s.handleListCreations)
		api.GET("/creations/:type", s.handleListCreationsByType)
		api.DELETE("/creations/:id", s.handleDeleteCreation)

		api.GET("/images/:filename", s.handleGetImage)
	}
}

// Handler はテストや外側のサーバ構成から使うための http.Handler を返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run はサーバを起動し、ctx のキャンセルでグレースフルに停止します。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTPサーバを起動するのだ", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("シャットダウン要求を受けたのだ")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
