package inject

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/dmorgan81/imagegen/internal/config"
	"github.com/dmorgan81/imagegen/internal/controller"
	"github.com/dmorgan81/imagegen/internal/feed"
	"github.com/dmorgan81/imagegen/internal/generate"
	"github.com/dmorgan81/imagegen/internal/handler"
	"github.com/dmorgan81/imagegen/internal/image"
	"github.com/dmorgan81/imagegen/internal/log"
	"github.com/dmorgan81/imagegen/internal/page"
	"github.com/dmorgan81/imagegen/internal/param"
	"github.com/dmorgan81/imagegen/internal/prompt"
	"github.com/dmorgan81/imagegen/internal/server"
	"github.com/dmorgan81/imagegen/internal/session"
	"github.com/samber/do"
	"github.com/samber/lo"
)

func Setup(ctx context.Context, cfg config.Config) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return awsconfig.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)
	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)

	// the parameter store is only consulted when a path is configured
	do.Provide[config.Config](injector, func(i *do.Injector) (config.Config, error) {
		if cfg.ParamPath == "" {
			return cfg, nil
		}
		err := cfg.ApplyParams(ctx, do.MustInvoke[param.Fetcher](i))
		return cfg, err
	})

	do.ProvideNamed[int](injector, "image_width", func(i *do.Injector) (int, error) {
		return do.MustInvoke[config.Config](i).ImageWidth, nil
	})
	do.ProvideNamed[int](injector, "image_height", func(i *do.Injector) (int, error) {
		return do.MustInvoke[config.Config](i).ImageHeight, nil
	})
	do.ProvideNamed[time.Duration](injector, "handler_delay", func(i *do.Injector) (time.Duration, error) {
		return do.MustInvoke[config.Config](i).HandlerDelay, nil
	})
	do.ProvideNamed[string](injector, "base_url", func(i *do.Injector) (string, error) {
		return do.MustInvoke[config.Config](i).PublicURL(), nil
	})
	do.ProvideNamed[[]string](injector, "prompts", func(i *do.Injector) ([]string, error) {
		prompts := do.MustInvoke[config.Config](i).Prompts
		return lo.Ternary(len(prompts) > 0, prompts, prompt.Examples), nil
	})

	do.Provide[image.Generator](injector, image.NewPicsumGenerator)
	do.Provide[*handler.Handler](injector, handler.NewHandler)
	do.Provide[generate.Strategy](injector, newStrategy)
	do.Provide[session.Factory](injector, func(i *do.Injector) (session.Factory, error) {
		strategy := do.MustInvoke[generate.Strategy](i)
		clearPrompt := do.MustInvoke[config.Config](i).ClearPrompt
		return func() *controller.Controller {
			return controller.New(strategy, controller.WithClearPrompt(clearPrompt))
		}, nil
	})
	do.Provide[*session.Store](injector, session.NewStore)
	do.Provide[*prompt.Randomizer](injector, prompt.NewRandomizer)
	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[*server.Server](injector, server.NewServer)

	return injector
}

func newStrategy(i *do.Injector) (generate.Strategy, error) {
	cfg := do.MustInvoke[config.Config](i).WithDefaultStrategy(config.StrategyRemote)
	switch cfg.Strategy {
	case config.StrategyLocal:
		local := generate.NewLocal()
		local.Delay = cfg.LocalDelay
		return local, nil
	case config.StrategyRemote:
		return generate.NewRemote(do.MustInvoke[*http.Client](i), cfg.EndpointURL()), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}
