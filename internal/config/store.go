package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DefaultBillNumberBase     int64 = 1000
	DefaultBillNumberTemplate       = "INV-{SEQ5}"
)

// StoreConfig is the shop profile printed on bills plus bill numbering settings.
type StoreConfig struct {
	Shop    ShopProfile    `mapstructure:"shop"`
	Billing BillingProfile `mapstructure:"billing"`
}

type ShopProfile struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	GSTIN   string `mapstructure:"gstin"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`
}

type BillingProfile struct {
	NumberBase     int64  `mapstructure:"numberBase"`
	NumberTemplate string `mapstructure:"numberTemplate"`
	PaymentMethod  string `mapstructure:"paymentMethod"`
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Shop: ShopProfile{
			Name:    "Your Company Name",
			Address: "Your Company Address",
			GSTIN:   "Your GST Number",
			Phone:   "Your Phone",
			Email:   "your@email.com",
		},
		Billing: BillingProfile{
			NumberBase:     DefaultBillNumberBase,
			NumberTemplate: DefaultBillNumberTemplate,
			PaymentMethod:  "cash",
		},
	}
}

type StoreConfigHolder struct {
	current atomic.Value // holds StoreConfig
}

// NewStaticStoreConfigHolder returns a holder that never reloads.
func NewStaticStoreConfigHolder(cfg StoreConfig) *StoreConfigHolder {
	holder := &StoreConfigHolder{}
	holder.current.Store(normalizeStoreConfig(cfg))
	return holder
}

func NewStoreConfigHolder(appCfg Config) (*StoreConfigHolder, error) {
	v := viper.New()

	if appCfg.StoreConfigPath != "" {
		v.SetConfigFile(appCfg.StoreConfigPath)
	} else {
		v.SetConfigName("store")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/saletrack")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SALETRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultStoreConfig()
	v.SetDefault("shop.name", defaults.Shop.Name)
	v.SetDefault("shop.address", defaults.Shop.Address)
	v.SetDefault("shop.gstin", defaults.Shop.GSTIN)
	v.SetDefault("shop.phone", defaults.Shop.Phone)
	v.SetDefault("shop.email", defaults.Shop.Email)
	v.SetDefault("billing.numberBase", defaults.Billing.NumberBase)
	v.SetDefault("billing.numberTemplate", defaults.Billing.NumberTemplate)
	v.SetDefault("billing.paymentMethod", defaults.Billing.PaymentMethod)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg StoreConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg = normalizeStoreConfig(cfg)
	if err := validateStoreConfig(cfg); err != nil {
		return nil, err
	}

	holder := &StoreConfigHolder{}
	holder.current.Store(cfg)

	if fileLoaded {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated StoreConfig
			if err := v.Unmarshal(&updated); err != nil {
				zap.L().Warn("store config reload failed", zap.Error(err))
				return
			}
			updated = normalizeStoreConfig(updated)
			if err := validateStoreConfig(updated); err != nil {
				zap.L().Warn("invalid store config ignored", zap.Error(err))
				return
			}
			holder.current.Store(updated)
			zap.L().Info("store config reloaded", zap.String("file", e.Name))
		})
	}

	return holder, nil
}

func (h *StoreConfigHolder) Get() StoreConfig {
	return h.current.Load().(StoreConfig)
}

func normalizeStoreConfig(cfg StoreConfig) StoreConfig {
	if cfg.Billing.NumberBase <= 0 {
		cfg.Billing.NumberBase = DefaultBillNumberBase
	}
	if strings.TrimSpace(cfg.Billing.NumberTemplate) == "" {
		cfg.Billing.NumberTemplate = DefaultBillNumberTemplate
	}
	if strings.TrimSpace(cfg.Billing.PaymentMethod) == "" {
		cfg.Billing.PaymentMethod = "cash"
	}
	return cfg
}

func validateStoreConfig(cfg StoreConfig) error {
	if strings.TrimSpace(cfg.Shop.Name) == "" {
		return errors.New("shop.name cannot be empty")
	}
	if !strings.Contains(cfg.Billing.NumberTemplate, "{SEQ") {
		return errors.New("billing.numberTemplate must contain a {SEQ} token")
	}
	return nil
}
