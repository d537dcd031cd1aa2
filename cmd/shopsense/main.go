package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopsense/internal/platform/config"
	"shopsense/internal/platform/logger"
	phttp "shopsense/internal/platform/net/http"
	"shopsense/internal/platform/net/middleware"
	"shopsense/internal/platform/store"

	"shopsense/internal/adapters/camera"
	"shopsense/internal/adapters/espeak"
	"shopsense/internal/adapters/scanner"
	"shopsense/internal/adapters/tesseract"
	modkit "shopsense/internal/modkit"
	"shopsense/internal/modkit/httpkit"
	"shopsense/internal/modkit/module"
	pipelinedom "shopsense/internal/services/pipeline/domain"
	pipelinemod "shopsense/internal/services/pipeline/module"
	productsdom "shopsense/internal/services/products/domain"
	productsmod "shopsense/internal/services/products/module"
	settingsdom "shopsense/internal/services/settings/domain"
	settingsmod "shopsense/internal/services/settings/module"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	storeCfg := root.Prefix("STORE_")
	cameraCfg := root.Prefix("CAMERA_")
	ttsCfg := root.Prefix("TTS_")
	ocrCfg := root.Prefix("OCR_")

	l := logger.Get()
	ctx := context.Background()

	st, err := store.Open(ctx, store.Config{
		Path:        storeCfg.MayString("PATH", "shopsense.db"),
		BusyTimeout: storeCfg.MayDuration("BUSY_TIMEOUT", 5*time.Second),
	}, store.WithLogger(*logger.Named("store")))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Log: *l, Cfg: root, DB: st}

	settings, err := settingsmod.New(ctx, deps)
	if err != nil {
		l.Panic().Err(err).Msg("settings module failed")
	}
	products, err := productsmod.New(ctx, deps)
	if err != nil {
		l.Panic().Err(err).Msg("products module failed")
	}

	frames := camera.New(camera.Config{
		URL:         cameraCfg.MustString("STREAM_URL"),
		DialTimeout: cameraCfg.MayDuration("DIAL_TIMEOUT", 5*time.Second),
	})
	defer frames.Close()
	scans := scanner.New(os.Stdin)
	defer scans.Close()

	pipeline := pipelinemod.New(deps, modkit.WithPorts(pipelinedom.Ports{
		Frames: frames,
		Scans:  scans,
		OCR: tesseract.New(tesseract.Config{
			Binary:   ocrCfg.MayString("BINARY", "tesseract"),
			Language: ocrCfg.MayString("LANGUAGE", "eng"),
			PSM:      ocrCfg.MayInt("PSM", 6),
		}),
		Speech: espeak.New(espeak.Config{
			Binary: ttsCfg.MayString("BINARY", "espeak-ng"),
			Voice:  ttsCfg.MayString("VOICE", "en"),
		}),
		Settings: module.MustPortsOf[settingsdom.ReaderPort](settings),
		Lookup:   module.MustPortsOf[productsdom.LookupPort](products),
	}))

	srv := phttp.NewServer(apiCfg)
	r := srv.Router()
	r.Use(
		middleware.CORS(middleware.CORSOptions{}),
		middleware.RequestID,
		middleware.RecoverJSON,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: apiCfg.MayDuration("SLOW", 500*time.Millisecond),
		}),
	)
	r.Route("/api", func(api httpkit.Router) {
		for _, m := range []modkit.Module{settings, products, pipeline} {
			m.MountRoutes(api)
		}
	})

	coord := pipeline.Coordinator()
	if err := coord.Start(); err != nil {
		l.Panic().Err(err).Msg("pipeline start failed")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		l.Info().Str("signal", s.String()).Msg("shutting down")
	case err := <-errCh:
		l.Error().Err(err).Msg("http server stopped")
	}

	coord.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("http shutdown failed")
	}
}
