package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"cafeapi/config"
	"cafeapi/controller"
	"cafeapi/database"
	"cafeapi/logger"
	"cafeapi/repository"
	"cafeapi/route"
	"cafeapi/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "cafe-api"

func main() {
	flags := pflag.NewFlagSet("cafe-api", pflag.ExitOnError)
	flags.Bool("debug", false, "verbose logging and gin debug mode")
	_ = flags.Parse(os.Args[1:])

	app := fx.New(
		fx.Supply(flags),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDB,
			providePinger,
			fx.Annotate(repository.NewCafeRepository, fx.As(new(controller.CafeStore))),
			controller.NewCafeController,
			controller.NewHealthController,
			func() *utils.HTTPMetrics { return utils.NewHTTPMetrics(serviceName) },
			route.NewRouter,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(watchConfig, startServer),
	)

	app.Run()
}

func provideConfig(flags *pflag.FlagSet) (*config.Config, error) {
	conf, err := config.Load(config.Path(), flags)
	if err != nil {
		return nil, fmt.Errorf("config.Load -> %w", err)
	}

	if conf.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	return conf, nil
}

func provideLogger(conf *config.Config) (*zap.Logger, zap.AtomicLevel, error) {
	return logger.New(conf.Log.Level, conf.Debug)
}

func provideDB(lc fx.Lifecycle, conf *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(conf.Database, conf.Debug, log)
	if err != nil {
		return nil, fmt.Errorf("database.Open -> %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close(db)
		},
	})
	return db, nil
}

func providePinger(db *gorm.DB) (controller.Pinger, error) {
	return db.DB()
}

// watchConfig applies log level changes from the config file without a restart.
func watchConfig(conf *config.Config, atom zap.AtomicLevel, log *zap.Logger) {
	if conf.Debug {
		return
	}

	watching := conf.Watch(func(next config.Config) {
		level := logger.ParseLevel(next.Log.Level)
		if level != atom.Level() {
			atom.SetLevel(level)
			log.Info("log level changed", zap.String("level", level.String()))
		}
	})
	if watching {
		log.Info("watching config file", zap.String("file", conf.FileUsed()))
	}
}

func startServer(lc fx.Lifecycle, conf *config.Config, router *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(conf.Server.Port)),
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("net.Listen -> %w", err)
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")

			ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
