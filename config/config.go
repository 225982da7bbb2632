package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"

	"github.com/salespoint/orderadmin/pkg/common"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "OrderAdmin",
		Location: "Asia/Jakarta",
		Workdir:  "/var/orderadmin",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1899,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "orderadmin",
		User:     "postgres",
		Passwd:   "orderadmin",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/orderadmin/orderadmin.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v == "true" || v == "1" || v == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	if v, ok := os.LookupEnv(name); ok {
		f(cast.ToInt(v))
	}
}

// LoadConfig reads the yaml config file and applies environment overrides.
// A missing file is not an error, defaults are used instead.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" && common.FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		cfg = new(AppConfig)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	setEnvValue("ORDERADMIN_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("ORDERADMIN_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("ORDERADMIN_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("ORDERADMIN_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvIntValue("ORDERADMIN_WEB_PORT", func(v int) { cfg.Web.Port = v })

	setEnvValue("ORDERADMIN_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("ORDERADMIN_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvIntValue("ORDERADMIN_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvValue("ORDERADMIN_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("ORDERADMIN_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("ORDERADMIN_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBoolValue("ORDERADMIN_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })

	setEnvValue("ORDERADMIN_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("ORDERADMIN_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })
	setEnvValue("ORDERADMIN_LOGGER_FILENAME", func(v string) { cfg.Logger.Filename = v })

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "orderadmin.log")
	}

	return cfg
}
