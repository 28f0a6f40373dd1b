package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/placeatlas/ops-portal/cmd/flags"
	"github.com/placeatlas/ops-portal/internal/bootstrap"
	"github.com/placeatlas/ops-portal/internal/conf"
	"github.com/placeatlas/ops-portal/internal/db"
	"github.com/placeatlas/ops-portal/pkg/utils"
	"github.com/placeatlas/ops-portal/server"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the ops-portal server",
	Run: func(cmd *cobra.Command, args []string) {
		bootstrap.InitConfig()
		bootstrap.Log()
		bootstrap.InitDB()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		dispatcher := bootstrap.InitAlerts(ctx)

		if !flags.Debug && !flags.Dev {
			gin.SetMode(gin.ReleaseMode)
		}
		r := gin.New()
		r.Use(gin.LoggerWithWriter(utils.Log.Out), gin.RecoveryWithWriter(utils.Log.Out))
		server.Init(r, dispatcher)

		addr := fmt.Sprintf("%s:%d", conf.Conf.Scheme.Address, conf.Conf.Scheme.HTTPPort)
		utils.Log.Infof("start HTTP server @ %s", addr)
		srv := &http.Server{Addr: addr, Handler: r}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				utils.Log.Fatalf("failed to start http: %s", err.Error())
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		utils.Log.Println("shutdown server...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			utils.Log.Errorf("server shutdown: %s", err.Error())
		}
		db.Close()
		utils.Log.Println("server exit")
	},
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}
