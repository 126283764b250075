package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DocumentConfig carries the captions printed on rendered invoice documents.
// The column headers map one to one onto the six item-table columns.
type DocumentConfig struct {
	ColumnHeaders []string `mapstructure:"columnHeaders"`
	TotalsCaption string   `mapstructure:"totalsCaption"`
	FooterCaption string   `mapstructure:"footerCaption"`
}

func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		ColumnHeaders: []string{"Nom", "Quantité", "Prix unitaire HT", "Taux TVA %", "Total HT", "Total TTC"},
		TotalsCaption: "Totaux",
		FooterCaption: "Merci de votre confiance.",
	}
}

type DocumentConfigHolder struct {
	current atomic.Value // holds DocumentConfig
}

func NewDocumentConfigHolder() (*DocumentConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("document")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/facturio/config") // Volume-mounted config
	v.AddConfigPath("/etc/facturio")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("FACTURIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultDocumentConfig()
		v.SetDefault("document.columnHeaders", defaults.ColumnHeaders)
		v.SetDefault("document.totalsCaption", defaults.TotalsCaption)
		v.SetDefault("document.footerCaption", defaults.FooterCaption)
	}

	var cfg DocumentConfig
	if err := v.UnmarshalKey("document", &cfg); err != nil {
		return nil, err
	}
	if err := validateDocumentConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DocumentConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DocumentConfig
		if err := v.UnmarshalKey("document", &updated); err != nil {
			log.Printf("[document-config] reload failed: %v", err)
			return
		}
		if err := validateDocumentConfig(updated); err != nil {
			log.Printf("[document-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[document-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Get returns the current captions. An empty holder serves the defaults so
// callers constructed outside the fx graph stay usable.
func (h *DocumentConfigHolder) Get() DocumentConfig {
	if cfg, ok := h.current.Load().(DocumentConfig); ok {
		return cfg
	}
	return DefaultDocumentConfig()
}

func validateDocumentConfig(cfg DocumentConfig) error {
	if len(cfg.ColumnHeaders) != 6 {
		return errors.New("document.columnHeaders must have exactly 6 entries")
	}
	if strings.TrimSpace(cfg.TotalsCaption) == "" {
		return errors.New("document.totalsCaption cannot be empty")
	}
	if strings.TrimSpace(cfg.FooterCaption) == "" {
		return errors.New("document.footerCaption cannot be empty")
	}
	return nil
}
