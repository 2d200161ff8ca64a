package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-art-studio/internal/studio"
	"github.com/shouni/go-art-studio/pkg/domain"
)

// クライアントに返す固定のエラーメッセージです。
// 内部エラーの詳細はログにのみ残します。
const (
	msgInvalidBody      = "Invalid request body"
	msgDrawingFailed    = "Failed to generate drawing"
	msgLegoFailed       = "Failed to generate LEGO creation"
	msgPlaygroundFailed = "Failed to generate playground artwork"
	msgFetchFailed      = "Failed to fetch creations"
	msgCreationNotFound = "Creation not found"
	msgImageNotFound    = "Image not found"
	msgDeleteFailed     = "Failed to delete creation"
)

func (s *Server) handleGenerateDrawing(c *gin.Context) {
	var req studio.DrawingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	created, err := s.studio.CreateDrawing(c.Request.Context(), req)
	if err != nil {
		s.renderGenerateError(c, err, msgDrawingFailed)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) handleGenerateLego(c *gin.Context) {
	var req studio.LegoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	created, err := s.studio.CreateLego(c.Request.Context(), req)
	if err != nil {
		s.renderGenerateError(c, err, msgLegoFailed)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) handleGeneratePlayground(c *gin.Context) {
	var req studio.PlaygroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	created, err := s.studio.CreatePlayground(c.Request.Context(), req)
	if err != nil {
		s.renderGenerateError(c, err, msgPlaygroundFailed)
		return
	}
	c.JSON(http.StatusOK, created)
}

// renderGenerateError は生成系エンドポイント共通のエラー応答です。
// 入力検証エラーは検証メッセージごと 400 で返し、それ以外は詳細を伏せて 500 にします。
func (s *Server) renderGenerateError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, studio.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	slog.Error("作品の生成に失敗したのだ", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
}

func (s *Server) handleListCreations(c *gin.Context) {
	creations, err := s.studio.ListCreations(c.Request.Context())
	if err != nil {
		slog.Error("作品一覧の取得に失敗したのだ", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgFetchFailed})
		return
	}
	c.JSON(http.StatusOK, creations)
}

func (s *Server) handleListCreationsByType(c *gin.Context) {
	t, err := domain.ParseCreationType(c.Param("type"))
	if err != nil {
		// 未知の種別は空配列を返す（エラーにはしない）
		c.JSON(http.StatusOK, []*domain.Creation{})
		return
	}

	creations, err := s.studio.ListCreationsByType(c.Request.Context(), t)
	if err != nil {
		slog.Error("作品一覧の取得に失敗したのだ", "type", t, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgFetchFailed})
		return
	}
	c.JSON(http.StatusOK, creations)
}

func (s *Server) handleDeleteCreation(c *gin.Context) {
	removed, err := s.studio.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Error("作品の削除に失敗したのだ", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgDeleteFailed})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"message": msgCreationNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleGetImage(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))

	rc, err := s.studio.OpenImage(c.Request.Context(), filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgImageNotFound})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		// ヘッダ送出後なのでステータスは変えられない。ログだけ残す
		slog.Warn("画像の送出が中断されたのだ", "filename", filename, "error", err)
	}
}
