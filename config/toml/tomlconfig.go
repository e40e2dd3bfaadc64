package toml

import (
	"fmt"

	"github.com/spf13/viper"
)

type TomlConfig struct {
	AppName     string
	Environment string
	Log         LogConfig
	Mysql       MysqlConfig
	Redis       RedisConfig
	Blob        BlobConfig
	Sendgrid    SendgridConfig
	Openai      OpenaiConfig
	Process     ProcessConfig
}

type LogConfig struct {
	Path  string
	Level string
}

type MysqlConfig struct {
	Host     string
	User     string
	Password string
	DbName   string
	Port     int64
}

type RedisConfig struct {
	Urls     []string
	Password string
}

// BlobConfig holds the storage account used for signed upload URLs and
// for resolving owner metadata on uploaded objects.
type BlobConfig struct {
	AccountName string
	AccountKey  string
	Container   string
}

type SendgridConfig struct {
	ApiKey    string
	FromEmail string
}

type OpenaiConfig struct {
	Endpoint   string
	Deployment string
	ApiKey     string
	ApiVersion string
}

type ProcessConfig struct {
	Batchsize    int // rows accumulated before a sink write
	Jobqueuesize int
	Numworkers   int
	Fetchtimeout int // seconds allowed for the whole source download
}

var c TomlConfig // c is type TomlConfig

func init() {
	//viper is used as a configuration solution for Go Applications
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println(err)
	}
	viper.Unmarshal(&c) // from low level format to object (json) structure
}

func GetConfig() TomlConfig {
	return c
}
