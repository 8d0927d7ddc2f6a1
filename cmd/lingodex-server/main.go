package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lingodex/lingodex/internal/bootstrap"
	"github.com/lingodex/lingodex/internal/cache"
	"github.com/lingodex/lingodex/internal/config"
	"github.com/lingodex/lingodex/internal/dictionary"
	"github.com/lingodex/lingodex/internal/history"
	"github.com/lingodex/lingodex/internal/search"
	"github.com/lingodex/lingodex/internal/server"
	"github.com/lingodex/lingodex/internal/speech"
	"github.com/lingodex/lingodex/internal/translation"
)

const version = "1.0.0"

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "lingodex-server",
		Short:         "Dictionary and translation HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	dictTimeout := time.Duration(cfg.Dictionary.TimeoutSeconds) * time.Second
	providers := []dictionary.Provider{
		dictionary.NewFreeDictClient(cfg.Dictionary.FreeDictURL, dictTimeout),
	}
	if cfg.Dictionary.RapidAPI.Key != "" {
		providers = append(providers, dictionary.NewWordsAPIClient(
			cfg.Dictionary.RapidAPI.Host, cfg.Dictionary.RapidAPI.Key, dictTimeout))
	} else {
		log.Warn("RAPID_API_KEY is not set; the secondary dictionary source is disabled")
	}
	providers = append(providers, dictionary.NewUrbanClient(cfg.Dictionary.UrbanURL, dictTimeout))
	aggregator := dictionary.NewAggregator(log, providers...)

	// The service runs without a translator when the backend is down;
	// searches then return English-only results.
	var translator search.Translator
	translatorUp := false
	client, err := translation.NewClient(
		cfg.Translator.URL,
		time.Duration(cfg.Translator.TimeoutSeconds)*time.Second,
		log,
	)
	if err != nil {
		log.WithError(err).Warn("translation backend unavailable; continuing without it")
	} else {
		translator = client
		translatorUp = true
	}

	speechTimeout := time.Duration(cfg.Speech.TimeoutSeconds) * time.Second
	synthesizer := speech.NewSynthesizer(cfg.Speech.OpenAIAPIKey, cfg.Speech.TTSModel, cfg.Speech.TTSVoice, speechTimeout, log)
	recognizer := speech.NewRecognizer(cfg.Speech.OpenAIAPIKey, cfg.Speech.STTModel, speechTimeout, log)
	if cfg.Speech.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; pronunciation and speech-to-text will fail")
	}

	resultCache := cache.New(time.Duration(cfg.Cache.TTLHours) * time.Hour)
	historyLog := history.NewLog(cfg.History.Capacity)

	service := search.NewService(
		aggregator,
		translator,
		synthesizer,
		resultCache,
		historyLog,
		cfg.Dictionary.NativeDefinitionLanguages,
		log,
	)

	srv := server.New(
		service,
		synthesizer,
		recognizer,
		historyLog,
		server.RateLimits{
			SearchPerMinute: cfg.RateLimit.PerMinuteSearch,
			PerHour:         cfg.RateLimit.PerHour,
			PerDay:          cfg.RateLimit.PerDay,
		},
		server.Backends{
			Translator: translatorUp,
			Dictionary: true,
			TTS:        cfg.Speech.OpenAIAPIKey != "",
		},
		version,
		cfg.Server.CORS.AllowedOrigins,
		log,
	)
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.WithField("addr", addr).Info("starting server")
		return srv.Listen(addr)
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
