package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CfgDB           ConfigDB      `yaml:"db"`
	CfgES           ConfigES      `yaml:"es"`
	CfgRanking      ConfigRanking `yaml:"ranking"`
	ETLInterval     time.Duration `yaml:"etl_interval"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	Secret          string        `yaml:"secret"`
	ServerPort      string        `yaml:"srv_port"`
	SessionDuration time.Duration `yaml:"session_duration"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

type ConfigES struct {
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
}

// ConfigRanking настройки подсистемы ранжирования
// Нулевые значения заменяются дефолтами соответствующих компонентов
type ConfigRanking struct {
	HalfLifeDays        float64       `yaml:"half_life_days"`
	PanelBoost          float64       `yaml:"panel_boost"`
	SimilarityThreshold float64       `yaml:"similarity_threshold"`
	TrendingCacheTTL    time.Duration `yaml:"trending_cache_ttl"`
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
