package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmorgan81/imagegen/internal/config"
	"github.com/dmorgan81/imagegen/internal/handle"
	"github.com/dmorgan81/imagegen/internal/handler"
	"github.com/dmorgan81/imagegen/internal/inject"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/samber/do"
)

func main() {
	logger := log.New(os.Stderr, log.ParseLevel(os.Getenv("IMAGEGEN_LOG_LEVEL")))
	ctx := log.NewContext(context.Background(), logger)

	cfg, err := config.Load(os.Getenv("IMAGEGEN_CONFIG"))
	if err != nil {
		logger.Error("loading config", "error", err)
		os.Exit(1)
	}

	injector := inject.Setup(ctx, cfg)
	h := handle.NewAPIHandler(do.MustInvoke[*handler.Handler](injector))
	lambda.StartWithOptions(h.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
