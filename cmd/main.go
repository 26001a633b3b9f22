package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/duccv/whereisit/config"
	"github.com/duccv/whereisit/pkg/logger"
	"github.com/duccv/whereisit/pkg/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

//	@title			WhereIsIt API
//	@version		1.0
//	@description	Lost and found items, recoveries and cookie sessions.
//	@contact.name	DucCV
//	@contact.email	duccv@gviet.vn
//	@BasePath		/

// @securityDefinitions.apikey	CookieAuth
// @in							cookie
// @name						token
// @description				Session token set by POST /jwt
func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	env, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	config.PrintStartupConfig(env)

	zapLogger := logger.New(env.LoggerConfig)
	zap.ReplaceGlobals(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = server.Run(ctx, env)
	stop()

	if err != nil {
		zapLogger.Error("Server exited with error", zap.Error(err))
		_ = zapLogger.Sync()
		os.Exit(1)
	}
	_ = zapLogger.Sync()
}
