package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		BcryptCost    int      `json:"bcrypt_cost"`
		OTPTTL        Duration `json:"otp_ttl"`
		ResetTokenTTL Duration `json:"reset_token_ttl"`
		HashKey       string   `json:"hash_key"`
		Version       string   `json:"version"`
		Environment   string   `json:"environment"`
		PublicURL     string   `json:"public_url"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			AvatarDir    string `json:"avatar_dir"`
			PublicPrefix string `json:"public_prefix"`
		} `json:"files,omitempty"`

		S3 struct {
			Bucket    string `json:"bucket"`
			Region    string `json:"region"`
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			PublicURL string `json:"public_url"`
		} `json:"s3,omitempty"`

		Redis struct {
			Address  string   `json:"address"`
			Password string   `json:"password"`
			DB       int      `json:"db"`
			Limit    int      `json:"rate_limit"`
			Window   Duration `json:"rate_window"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		EmailURL       string   `json:"email_url"`
		EmailAPIKey    string   `json:"email_api_key"`
		EmailFrom      string   `json:"email_from"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"adapter,omitempty"`

	Workers struct {
		MailWorkers   int `json:"mail_workers"`
		MailQueueSize int `json:"mail_queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			BcryptCost:    jsonCfg.App.BcryptCost,
			OTPTTL:        time.Duration(jsonCfg.App.OTPTTL),
			ResetTokenTTL: time.Duration(jsonCfg.App.ResetTokenTTL),
			HashKey:       jsonCfg.App.HashKey,
			Version:       jsonCfg.App.Version,
			Environment:   jsonCfg.App.Environment,
			PublicURL:     jsonCfg.App.PublicURL,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				AvatarDir:    jsonCfg.Storage.Files.AvatarDir,
				PublicPrefix: jsonCfg.Storage.Files.PublicPrefix,
			},
			S3: S3{
				Bucket:    jsonCfg.Storage.S3.Bucket,
				Region:    jsonCfg.Storage.S3.Region,
				Endpoint:  jsonCfg.Storage.S3.Endpoint,
				AccessKey: jsonCfg.Storage.S3.AccessKey,
				SecretKey: jsonCfg.Storage.S3.SecretKey,
				PublicURL: jsonCfg.Storage.S3.PublicURL,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
				Limit:    jsonCfg.Storage.Redis.Limit,
				Window:   time.Duration(jsonCfg.Storage.Redis.Window),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			EmailURL:       jsonCfg.Adapter.EmailURL,
			EmailAPIKey:    jsonCfg.Adapter.EmailAPIKey,
			EmailFrom:      jsonCfg.Adapter.EmailFrom,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
		},
		Workers: Workers{
			MailWorkers:   jsonCfg.Workers.MailWorkers,
			MailQueueSize: jsonCfg.Workers.MailQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
