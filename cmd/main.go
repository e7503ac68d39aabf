package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cv-ai-go/internal/api/handler"
	"cv-ai-go/internal/api/router"
	"cv-ai-go/internal/config"
	"cv-ai-go/internal/constants"
	appCoreLogger "cv-ai-go/internal/logger"
	"cv-ai-go/internal/parser"
	"cv-ai-go/internal/processor"
	"cv-ai-go/internal/storage"
	"cv-ai-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var configPath, initConfigPath string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.StringVar(&initConfigPath, "init-config", "", "写出示例配置文件后退出")
	pflag.Parse()

	if initConfigPath != "" {
		if err := config.CreateSampleConfig(initConfigPath); err != nil {
			glog.Fatalf("生成示例配置失败: %v", err)
		}
		glog.Infof("示例配置已写入 %s", initConfigPath)
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		glog.Fatalf("加载配置失败: %v", err)
	}

	if err := appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
		File:         cfg.Logger.File,
	}); err != nil {
		glog.Fatalf("初始化日志失败: %v", err)
	}
	appCoreLogger.SetupHertz(cfg.Logger.Level)
	glog.Infof("配置加载成功, 服务 %s v%s", constants.ServiceName, constants.ServiceVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitProvider(ctx, cfg.Tracing, constants.ServiceVersion)
	if err != nil {
		glog.Fatalf("初始化链路追踪失败: %v", err)
	}

	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		glog.Fatalf("初始化存储失败: %v", err)
	}
	defer storageManager.Close()

	debug := cfg.Logger.Level == "debug"

	// 向量模型在第一次排序请求时加载
	modelLoader, err := processor.NewModelLoaderFromConfig(cfg.Embedding, appCoreLogger.NewStdLogger("[ModelLoader] ", true))
	if err != nil {
		glog.Fatalf("初始化向量模型加载器失败: %v", err)
	}
	glog.Infof("向量模型加载器就绪, version: %s", modelLoader.ModelVersion())

	jdOptions := []processor.JDOption{
		processor.WithJDProcessorLogger(appCoreLogger.NewStdLogger("[JDProcessor] ", debug)),
	}
	if storageManager.Redis != nil {
		jdOptions = append(jdOptions, processor.WithJobVectorCache(storageManager.Redis))
	}
	jdProcessor, err := processor.NewJDProcessor(modelLoader, modelLoader.ModelVersion(), jdOptions...)
	if err != nil {
		glog.Fatalf("初始化JD处理器失败: %v", err)
	}

	ranker, err := processor.NewCandidateRanker(modelLoader,
		processor.WithJDProcessor(jdProcessor),
		processor.WithRankerLogger(appCoreLogger.NewStdLogger("[CandidateRanker] ", debug)),
	)
	if err != nil {
		glog.Fatalf("初始化候选人排序器失败: %v", err)
	}

	extractor, err := parser.NewTextExtractorFromConfig(ctx, cfg, appCoreLogger.NewStdLogger("[Extractor] ", debug))
	if err != nil {
		glog.Fatalf("初始化文本提取器失败: %v", err)
	}
	cvParser, err := parser.NewParser(extractor,
		parser.WithParserLogger(appCoreLogger.NewStdLogger("[CVParser] ", debug)),
		parser.WithLogExtractedText(cfg.Parser.LogExtractedText),
	)
	if err != nil {
		glog.Fatalf("初始化简历解析器失败: %v", err)
	}
	glog.Infof("简历解析器初始化成功, PDF引擎: %s", cfg.Parser.PDFEngine)

	serverOptions := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodyMB * 1024 * 1024),
	}
	var serverTracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		var tracerOption hertzconfig.Option
		tracerOption, serverTracerCfg = hertztracing.NewServerTracer()
		serverOptions = append(serverOptions, tracerOption)
	}

	h := server.New(serverOptions...)
	if serverTracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(serverTracerCfg))
	}
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, router.Handlers{
		CV:     handler.NewCVHandler(cfg, cvParser),
		Match:  handler.NewMatchHandler(cfg, ranker),
		Health: handler.NewHealthHandler(modelLoader, storageManager),
	}, cfg.Server.APIKeys)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP 服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		glog.Errorf("关闭链路追踪失败: %v", err)
	}
	glog.Info("优雅退出完成")
}
