package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Market   *MarketConfig   `mapstructure:"market"`
	Stripe   *StripeConfig   `mapstructure:"stripe"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

// MarketConfig holds the fee parameters of the marketplace. They are fixed
// for the lifetime of a deployment: every settled sale pays
// price*fee_percent/100 to the fee account.
type MarketConfig struct {
	FeePercent       int64  `mapstructure:"fee_percent"`
	FeeAccountEmail  string `mapstructure:"fee_account_email"`
	EscrowAccountEmail string `mapstructure:"escrow_account_email"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
}

func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if v := viper.GetString("JWT_SIGNING_KEY"); v != "" {
		conf.API.JWTSigningKey = v
	}
	if v := viper.GetString("POSTGRES_PASSWORD"); v != "" {
		conf.Postgres.Password = v
	}
	if v := viper.GetString("STRIPE_SECRET_KEY"); v != "" {
		conf.Stripe.SecretKey = v
	}

	return conf, nil
}
