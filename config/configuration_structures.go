package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	BasePath string `yaml:"base_path"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
	// AccessTokenTTL парсится через time.ParseDuration, например "15m"
	AccessTokenTTL string `yaml:"access_token_ttl"`
	// RefreshTokenTTL задаётся в секундах: TTL ключа в Redis
	RefreshTokenTTL int `yaml:"refresh_token_ttl"`
	// CookieTTL задаётся в секундах: срок жизни cookie "jwt"
	CookieTTL int    `yaml:"cookie_ttl"`
	Issuer    string `yaml:"issuer"`
}

type MailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	// BaseURL используется при формировании ссылок в письмах
	BaseURL string `yaml:"base_url"`
}

type StripeConfig struct {
	SecretKey  string `yaml:"secret_key"`
	SuccessURL string `yaml:"success_url"`
	CancelURL  string `yaml:"cancel_url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}
