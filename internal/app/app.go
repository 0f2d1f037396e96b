package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	CfgDB             ConfigDB      `yaml:"db"`
	CfgRedis          ConfigRedis   `yaml:"redis"`
	CfgES             ConfigES      `yaml:"es"`
	CfgKafka          ConfigKafka   `yaml:"kafka"`
	CfgShop           ConfigShop    `yaml:"shop"`
	CfgCart           ConfigCart    `yaml:"cart"`
	ETLTimeout        time.Duration `yaml:"etl_search_timeout" env:"ETL_SEARCH_TIMEOUT"`
	InventoryCacheTTL time.Duration `yaml:"inventory_cache_ttl" env:"INVENTORY_CACHE_TTL"`
	MaxOpenConns      int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	Secret            string        `yaml:"secret" env:"SESSION_SECRET"`
	ServerPort        string        `yaml:"srv_port" env:"SERVER_PORT"`
	AnalyticsPort     string        `yaml:"analytics_port" env:"ANALYTICS_PORT"`
	SessionDuration   time.Duration `yaml:"session_duration" env:"SESSION_DURATION"`
}

type ConfigDB struct {
	Login    string `yaml:"login" env:"DB_LOGIN"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Port     uint   `yaml:"port" env:"DB_PORT"`
	Database string `yaml:"database" env:"DB_NAME"`
	Host     string `yaml:"host" env:"DB_HOST"`
}

// DSN строка подключения для lib/pq
func (c ConfigDB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Login, c.Password, c.Database,
	)
}

type ConfigRedis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type ConfigES struct {
	Addresses []string `yaml:"addresses" env:"ES_ADDRESSES" envSeparator:","`
	Index     string   `yaml:"index" env:"ES_INDEX"`
}

type ConfigKafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC"`
	GroupID string   `yaml:"group_id" env:"KAFKA_GROUP_ID"`
}

// ConfigShop контакты магазина для ссылок WhatsApp, звонка и карты
type ConfigShop struct {
	Name           string   `yaml:"name"`
	WhatsAppNumber string   `yaml:"whatsapp_number" env:"SHOP_WHATSAPP_NUMBER"`
	Phones         []string `yaml:"phones"`
	Address        string   `yaml:"address"`
	MapsQuery      string   `yaml:"maps_query"`
	Hours          string   `yaml:"hours"`
}

type ConfigCart struct {
	KeyPrefix string        `yaml:"key_prefix" env:"CART_KEY_PREFIX"`
	TTL       time.Duration `yaml:"ttl" env:"CART_TTL"`
}

// NewConfig читает YAML и поверх него переменные окружения
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

	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &c, nil
}

// LoadDotEnv подгружает переменные из .env, отсутствие файла не ошибка
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
