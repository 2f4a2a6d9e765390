// internal/cli/serve.go
package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sstent/tcxclean/internal/config"
	"github.com/sstent/tcxclean/internal/database"
	"github.com/sstent/tcxclean/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run catalog and an upload-and-clean endpoint over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.EnsureDirs(); err != nil {
			return fmt.Errorf("failed to create data directories: %w", err)
		}

		db, err := database.NewSQLiteDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer db.Close()

		gin.SetMode(gin.ReleaseMode)
		router := gin.Default()
		web.NewHandler(db).RegisterRoutes(router)

		server := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: router,
		}

		go func() {
			log.Printf("Server starting on %s", cfg.ListenAddr)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				log.Printf("Server error: %v", err)
			}
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		<-shutdown

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		log.Println("Shutdown complete")
		return nil
	},
}
