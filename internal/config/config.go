package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DanRulev/flashquiz/pkg/validator"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string      `mapstructure:"env" validate:"oneof=development production staging"`
	Quiz     QuizConfig  `mapstructure:"quiz"`
	Web      WebConfig   `mapstructure:"web"`
	BotToken string      `mapstructure:"bot_token"`
	Store    StoreConfig `mapstructure:"store"`
	DB       DBConfig    `mapstructure:"db"`
	Redis    RedisConfig `mapstructure:"redis"`
}

type QuizConfig struct {
	File        string `mapstructure:"file"`
	Dir         string `mapstructure:"dir" validate:"required"`
	ChoiceOrder string `mapstructure:"choice_order" validate:"oneof=shuffle sorted"`
	ResultsFile string `mapstructure:"results_file" validate:"required"`
}

type WebConfig struct {
	Port          string        `mapstructure:"port" validate:"required"`
	UploadMaxSize int           `mapstructure:"upload_max_size" validate:"min=1"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout" validate:"min=0"`
}

type StoreConfig struct {
	Driver string        `mapstructure:"driver" validate:"oneof=memory postgres redis"`
	TTL    time.Duration `mapstructure:"ttl" validate:"min=0"`
}

type DBConfig struct {
	Conn DBConn `mapstructure:"conn"`
	Cfg  DBCfg  `mapstructure:"cfg"`
}

type DBConn struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSL      string `mapstructure:"ssl" validate:"omitempty,oneof=disable require verify-full"`
}

type DBCfg struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=0,max=1000"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0,max=100"`
	ConnMaxLifeTime time.Duration `mapstructure:"conn_max_life_time" validate:"min=0"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" validate:"min=0"`
}

type RedisConfig struct {
	Addrs        []string      `mapstructure:"addrs"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db" validate:"min=0"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout" validate:"min=0"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=0"`
}

var envBindings = map[string]string{
	"env":               "APP_ENV",
	"bot_token":         "BOT_TOKEN",
	"quiz.file":         "QUIZ_FILE",
	"quiz.dir":          "QUIZ_DIR",
	"quiz.choice_order": "QUIZ_CHOICE_ORDER",
	"quiz.results_file": "QUIZ_RESULTS_FILE",
	"web.port":          "PORT",
	"store.driver":      "STORE_DRIVER",
	"db.conn.host":      "DB_HOST",
	"db.conn.port":      "DB_PORT",
	"db.conn.user":      "DB_USER",
	"db.conn.password":  "DB_PASSWORD",
	"db.conn.name":      "DB_NAME",
	"db.conn.ssl":       "DB_SSL",
	"redis.addrs":       "REDIS_ADDR",
	"redis.password":    "REDIS_PASSWORD",
}

// flagBindings maps command-line flag names onto config keys.
var flagBindings = map[string]string{
	"file":    "quiz.file",
	"dir":     "quiz.dir",
	"order":   "quiz.choice_order",
	"results": "quiz.results_file",
	"port":    "web.port",
	"store":   "store.driver",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")

	v.SetDefault("quiz.dir", ".")
	v.SetDefault("quiz.choice_order", "shuffle")
	v.SetDefault("quiz.results_file", "quiz_results.txt")

	v.SetDefault("web.port", "8080")
	v.SetDefault("web.upload_max_size", 5*1024*1024)
	v.SetDefault("web.read_timeout", 5*time.Second)
	v.SetDefault("web.write_timeout", 5*time.Second)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.ttl", 24*time.Hour)

	v.SetDefault("db.conn.ssl", "disable")
	v.SetDefault("db.cfg.max_open_conns", 10)
	v.SetDefault("db.cfg.max_idle_conns", 5)
	v.SetDefault("db.cfg.conn_max_life_time", 30*time.Minute)
	v.SetDefault("db.cfg.conn_max_idle_time", 5*time.Minute)

	v.SetDefault("redis.addrs", []string{"localhost:6379"})
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
}

// Init reads configs/<CONFIG_NAME>.yaml when present, applies environment
// overrides and then any flags set on fs. fs may be nil.
func Init(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configName := os.Getenv("CONFIG_NAME")
	if configName == "" {
		configName = "default"
	}

	v.AddConfigPath("configs")
	v.SetConfigName(configName)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if fs != nil {
		if path, err := fs.GetString("config"); err == nil && path != "" {
			v.SetConfigFile(path)
		}
		for name, key := range flagBindings {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
