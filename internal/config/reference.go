package config

import (
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ReferenceData holds the suggestion lists offered by the invoice form.
type ReferenceData struct {
	InvoiceTypes      []string `mapstructure:"invoiceTypes" json:"invoiceTypes"`
	Provinces         []string `mapstructure:"provinces" json:"provinces"`
	RegistrationTypes []string `mapstructure:"registrationTypes" json:"registrationTypes"`
	SaleTypes         []string `mapstructure:"saleTypes" json:"saleTypes"`
	UnitsOfMeasure    []string `mapstructure:"unitsOfMeasure" json:"unitsOfMeasure"`
	Rates             []string `mapstructure:"rates" json:"rates"`
}

func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		InvoiceTypes: []string{"Sale Invoice", "Debit Note"},
		Provinces: []string{
			"Punjab",
			"Sindh",
			"Khyber Pakhtunkhwa",
			"Balochistan",
			"Islamabad Capital Territory",
			"Gilgit-Baltistan",
			"Azad Jammu and Kashmir",
		},
		RegistrationTypes: []string{"Registered", "Unregistered"},
		SaleTypes: []string{
			"Goods at standard rate (default)",
			"Goods at Reduced Rate",
			"Exempt goods",
			"Services",
		},
		UnitsOfMeasure: []string{"Numbers, pieces, units", "KG", "Liter", "Meter", "SqY"},
		Rates:          []string{"18%", "17%", "16%", "5%", "0%", "Exempt"},
	}
}

// ReferenceHolder serves the latest valid reference data and reloads it when
// the backing file changes.
type ReferenceHolder struct {
	current atomic.Value // holds ReferenceData
}

// NewStaticReferenceHolder returns a holder that never reloads.
func NewStaticReferenceHolder(data ReferenceData) *ReferenceHolder {
	holder := &ReferenceHolder{}
	holder.current.Store(data)
	return holder
}

func NewReferenceHolder(cfg Config, log *zap.Logger) (*ReferenceHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("config.reference")

	v := viper.New()
	if cfg.ReferenceFile != "" {
		v.SetConfigFile(cfg.ReferenceFile)
	} else {
		v.SetConfigName("reference")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/fbrinvoice")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FBRINVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReferenceData()
	v.SetDefault("reference.invoiceTypes", defaults.InvoiceTypes)
	v.SetDefault("reference.provinces", defaults.Provinces)
	v.SetDefault("reference.registrationTypes", defaults.RegistrationTypes)
	v.SetDefault("reference.saleTypes", defaults.SaleTypes)
	v.SetDefault("reference.unitsOfMeasure", defaults.UnitsOfMeasure)
	v.SetDefault("reference.rates", defaults.Rates)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		fileLoaded = false
	}

	data, err := decodeReferenceData(v)
	if err != nil {
		return nil, err
	}
	if err := validateReferenceData(data); err != nil {
		return nil, err
	}

	holder := NewStaticReferenceHolder(data)
	if !fileLoaded {
		log.Info("reference file not found, using defaults")
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeReferenceData(v)
		if err != nil {
			log.Warn("reference reload failed", zap.Error(err))
			return
		}
		if err := validateReferenceData(updated); err != nil {
			log.Warn("invalid reference data ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reference data reloaded", zap.String("file", filepath.Base(e.Name)))
	})

	return holder, nil
}

func (h *ReferenceHolder) Get() ReferenceData {
	return h.current.Load().(ReferenceData)
}

// decodeReferenceData unmarshals the full settings tree so defaults fill any
// list the file leaves out.
func decodeReferenceData(v *viper.Viper) (ReferenceData, error) {
	var doc struct {
		Reference ReferenceData `mapstructure:"reference"`
	}
	if err := v.Unmarshal(&doc); err != nil {
		return ReferenceData{}, err
	}
	return doc.Reference, nil
}

func validateReferenceData(data ReferenceData) error {
	if len(data.InvoiceTypes) == 0 {
		return errors.New("reference.invoiceTypes cannot be empty")
	}
	if len(data.Provinces) == 0 {
		return errors.New("reference.provinces cannot be empty")
	}
	return nil
}
