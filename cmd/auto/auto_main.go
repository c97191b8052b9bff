package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"IdleKingdoms/internal/autobattle/actor"
	"IdleKingdoms/internal/autobattle/infra/catalog"
	"IdleKingdoms/internal/autobattle/infra/confsrc"
	"IdleKingdoms/internal/autobattle/infra/notify"
	memoryrepo "IdleKingdoms/internal/autobattle/infra/persistence/memory"
	mongorepo "IdleKingdoms/internal/autobattle/infra/persistence/mongodb"
	mysqlrepo "IdleKingdoms/internal/autobattle/infra/persistence/mysql"
	"IdleKingdoms/internal/autobattle/interfaces"
	"IdleKingdoms/internal/autobattle/service/port"
	"IdleKingdoms/internal/shared/gameconfig/balance"
	"IdleKingdoms/internal/shared/gameconfig/city"
	"IdleKingdoms/internal/shared/infrastructure/db"
	"IdleKingdoms/internal/shared/infrastructure/mongo"
	"IdleKingdoms/internal/shared/logs"
	"IdleKingdoms/internal/shared/serverconfig"
	"IdleKingdoms/internal/shared/session"
	transporthttp "IdleKingdoms/internal/shared/transport/http"
	"IdleKingdoms/internal/shared/transport/ws"
	"IdleKingdoms/modules/kit/logx"
)

const askTimeout = 5 * time.Second

func main() {
	serverconfig.Load()
	if err := logs.Init("auto", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	city.Load(serverconfig.Conf.Logic.CityData)
	if err := balance.Load(serverconfig.Conf.Logic.BalanceData); err != nil {
		logs.Fatal("加载数值配置失败", zap.Error(err))
	}

	repo, cleanup := buildRepository()
	defer cleanup()

	sessMgr := session.NewSessMgr()
	notifier := notify.NewFanoutNotifier(
		notify.NewWsNotifier(sessMgr),
		notify.NewLogNotifier(),
	)

	runtime := actor.NewRuntime(
		repo,
		catalog.NewCityCatalog(),
		notifier,
		confsrc.NewBalanceSource(),
		askTimeout,
	)
	defer runtime.Shutdown()

	serverConfig := serverconfig.Conf.HTTPServer
	host := serverConfig.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, serverConfig.Port)

	baseLogger := logx.NewZapLogger(logs.Logger())
	wsRouter := ws.NewRouter(baseLogger)

	autoModule := interfaces.New(runtime, sessMgr)
	wsModules := []ws.Registrar{
		autoModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}

	httpServer := transporthttp.NewHttpServer(addr, nil, baseLogger)
	httpModules := []transporthttp.Registrar{
		autoModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Group())
	}

	wsHandler := ws.GinHandler(wsRouter, serverConfig.NeedSecret, baseLogger, nil)
	httpServer.Engine().GET("/ws", wsHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("auto server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

// buildRepository 按配置选择玩家快照的存储实现，返回仓储和资源释放函数。
func buildRepository() (port.PlayerRepository, func()) {
	driver := strings.ToLower(serverconfig.Conf.Storage.Driver)
	switch driver {
	case "mysql":
		gdb, err := db.Open(serverconfig.Conf.MySQL)
		if err != nil {
			logs.Fatal("连接 MySQL 失败", zap.Error(err))
		}
		return mysqlrepo.NewPlayerRepo(gdb), func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	case "mongodb":
		client, err := mongo.Open(serverconfig.Conf.MongoDB, logs.Logger())
		if err != nil {
			logs.Fatal("连接 MongoDB 失败", zap.Error(err))
		}
		database := client.Database(serverconfig.Conf.MongoDB.Database)
		return mongorepo.NewPlayerRepo(database), func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
	case "", "memory":
		logs.Warn("使用内存存储，进程退出后数据丢失", zap.String("driver", driver))
		return memoryrepo.NewPlayerRepo(), func() {}
	default:
		logs.Fatal("未知的存储驱动", zap.String("driver", driver))
		return nil, nil
	}
}
