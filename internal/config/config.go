package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	History    HistoryConfig    `mapstructure:"history"`
}

type DictionaryConfig struct {
	FreeDictURL string         `mapstructure:"freedict_url" validate:"required,url"`
	UrbanURL    string         `mapstructure:"urban_url" validate:"required,url"`
	RapidAPI    RapidAPIConfig `mapstructure:"rapidapi"`
	// NativeDefinitionLanguages lists target languages for which the primary
	// dictionary source can serve definitions of the translated word.
	NativeDefinitionLanguages []string `mapstructure:"native_definition_languages"`
	TimeoutSeconds            int      `mapstructure:"timeout_seconds" validate:"min=1"`
}

type RapidAPIConfig struct {
	Host string `mapstructure:"host"`
	Key  string `mapstructure:"key"`
}

type TranslatorConfig struct {
	URL            string `mapstructure:"url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

type SpeechConfig struct {
	OpenAIAPIKey   string `mapstructure:"openai_api_key"`
	TTSModel       string `mapstructure:"tts_model"`
	TTSVoice       string `mapstructure:"tts_voice"`
	STTModel       string `mapstructure:"stt_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"min=1"`
}

type CacheConfig struct {
	TTLHours int `mapstructure:"ttl_hours" validate:"min=1"`
}

type RateLimitConfig struct {
	PerMinuteSearch int `mapstructure:"per_minute_search" validate:"min=1"`
	PerHour         int `mapstructure:"per_hour" validate:"min=1"`
	PerDay          int `mapstructure:"per_day" validate:"min=1"`
}

type HistoryConfig struct {
	Capacity int `mapstructure:"capacity" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lingodex")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("dictionary.freedict_url", "https://api.dictionaryapi.dev/api/v2/entries")
	v.SetDefault("dictionary.urban_url", "https://api.urbandictionary.com/v0/define")
	v.SetDefault("dictionary.rapidapi.host", "wordsapiv1.p.rapidapi.com")
	v.SetDefault("dictionary.native_definition_languages", []string{"es", "fr", "de", "it", "pt", "ru"})
	v.SetDefault("dictionary.timeout_seconds", 10)
	v.SetDefault("translator.url", "http://localhost:5000")
	v.SetDefault("translator.timeout_seconds", 10)
	v.SetDefault("speech.tts_model", "tts-1")
	v.SetDefault("speech.tts_voice", "alloy")
	v.SetDefault("speech.stt_model", "whisper-1")
	v.SetDefault("speech.timeout_seconds", 30)
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("ratelimit.per_minute_search", 30)
	v.SetDefault("ratelimit.per_hour", 50)
	v.SetDefault("ratelimit.per_day", 200)
	v.SetDefault("history.capacity", 50)

	// Secrets come from the environment only, never from the config file
	if err := v.BindEnv("dictionary.rapidapi.key", "RAPID_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("speech.openai_api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
