package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/21f1001434/Agentic-AI/api/v1"
	"github.com/21f1001434/Agentic-AI/internal/config"
	"github.com/21f1001434/Agentic-AI/internal/handlers"
	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/server"
	"github.com/21f1001434/Agentic-AI/internal/services"
	"github.com/21f1001434/Agentic-AI/pkg/scheduler"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := zap.S().Named("main")

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			sched := scheduler.NewScheduler[*models.PipelineResult](cfg.Server.NumWorkers)
			defer sched.Close()

			h := handlers.New(a.pipeline(), services.NewSnapshotService(a.store), sched)
			srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
				v1.RegisterHandlers(router, h)
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(ctx)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutdown requested")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}
}
