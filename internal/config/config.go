package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"sync"
	"time"
)

type Config struct {
	Env      string `yaml:"env" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env-default:""`
		BotName string `yaml:"bot_name" env-default:"KtplShowcaseBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	OpenAI struct {
		ApiKey   string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		TtsModel string `yaml:"tts_model" env-default:"tts-1"`
		Voice    string `yaml:"voice" env-default:"alloy"`
	} `yaml:"openai"`
	Catalog struct {
		Source  string        `yaml:"source" env:"CATALOG_SOURCE" env-default:"products.json"`
		Timeout time.Duration `yaml:"timeout" env-default:"10s"`
		Refresh time.Duration `yaml:"refresh" env-default:"0s"`
	} `yaml:"catalog"`
	Assets struct {
		Dir            string        `yaml:"dir" env-default:"assets"`
		BaseURL        string        `yaml:"base_url" env-default:""`
		ProbeTimeout   time.Duration `yaml:"probe_timeout" env-default:"3s"`
		LogoGrace      time.Duration `yaml:"logo_grace" env-default:"1200ms"`
		LogoCandidates []string      `yaml:"logo_candidates" env-default:"ktpl-new-logo.png,ktpl-new-logo.jpg,ktpl-new-logo.webp,ktpl new logo.png"`
	} `yaml:"assets"`
	Store struct {
		NameEn string `yaml:"name_en" env-default:"Kalindi Tradelinks Private Limited"`
		NameGu string `yaml:"name_gu" env-default:"કાલિન્દી ટ્રેડલિંક્સ પ્રાયવેટ લિમિટેડ"`
	} `yaml:"store"`
	Session struct {
		Cookie   string        `yaml:"cookie" env-default:"ktpl_session"`
		MaxAge   time.Duration `yaml:"max_age" env-default:"720h"`
		MaxTurns int           `yaml:"max_turns" env-default:"100"`
	} `yaml:"session"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env-default:"pass"`
		Database string `yaml:"database" env-default:"showcase"`
	} `yaml:"mongo"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	once.Do(func() {
		var err error
		instance, err = Load(path)
		if err != nil {
			log.Fatal(err)
		}
	})
	return instance
}

// Load reads the config file at path without caching the result.
func Load(path string) (*Config, error) {
	conf := &Config{}
	if err := cleanenv.ReadConfig(path, conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("%s; %s", err, desc)
	}
	return conf, nil
}
