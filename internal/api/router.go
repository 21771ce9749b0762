// api/router.go
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func init() {
	// числа из JSON: json.Number, чтобы bigint не терял точность
	binding.EnableDecoderUseNumber = true
}

func NewRouter(srv *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/event", MethodNotAllowedHandler())
		apiGroup.POST("/event", EventHandler(srv))

		apiGroup.GET("/meta", MetaListHandler(srv))
		apiGroup.POST("/meta", MetaFieldsHandler(srv))
		apiGroup.GET("/meta/:table", MetaFieldsHandler(srv))
	}
	return r
}

// RunServer слушает addr до отмены ctx, затем гасит сервер с таймаутом.
func RunServer(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Стартуем сервер svbase на %s...", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("Останавливаем сервер...")
	return srv.Shutdown(shutdownCtx)
}
