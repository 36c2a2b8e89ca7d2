package config

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tourdesk/backend/internal/billing"
)

// Overpayment guard modes
const (
	OverpaymentWarn = "warn"
	OverpaymentOff  = "off"
)

// BillingConfig holds the payment policy of the agency
type BillingConfig struct {
	DeadlineOffsetDays      int
	InstallmentIntervalDays int
	Tolerance               decimal.Decimal
	OverpaymentGuard        string
	Location                *time.Location
	SnapshotTTL             time.Duration
}

// LoadBillingConfig returns billing configuration with defaults
func LoadBillingConfig() *BillingConfig {
	viper.SetDefault("billing.deadline_offset_days", billing.DefaultDeadlineOffsetDays)
	viper.SetDefault("billing.installment_interval_days", billing.DefaultIntervalDays)
	viper.SetDefault("billing.tolerance", "0.01")
	viper.SetDefault("billing.overpayment_guard", OverpaymentWarn)
	viper.SetDefault("billing.timezone", "America/Sao_Paulo")
	viper.SetDefault("billing.snapshot_ttl", 24*time.Hour)

	tolerance, err := decimal.NewFromString(viper.GetString("billing.tolerance"))
	if err != nil || !tolerance.IsPositive() {
		log.Printf("[CONFIG] Invalid billing.tolerance %q, using 0.01", viper.GetString("billing.tolerance"))
		tolerance = billing.Tolerance
	}

	guard := strings.ToLower(viper.GetString("billing.overpayment_guard"))
	if guard != OverpaymentWarn && guard != OverpaymentOff {
		log.Printf("[CONFIG] Unknown billing.overpayment_guard %q, using %s", guard, OverpaymentWarn)
		guard = OverpaymentWarn
	}

	loc, err := time.LoadLocation(viper.GetString("billing.timezone"))
	if err != nil {
		log.Printf("[CONFIG] Failed to load timezone %q, using UTC: %v", viper.GetString("billing.timezone"), err)
		loc = time.UTC
	}

	return &BillingConfig{
		DeadlineOffsetDays:      viper.GetInt("billing.deadline_offset_days"),
		InstallmentIntervalDays: viper.GetInt("billing.installment_interval_days"),
		Tolerance:               tolerance,
		OverpaymentGuard:        guard,
		Location:                loc,
		SnapshotTTL:             viper.GetDuration("billing.snapshot_ttl"),
	}
}

// Policy converts the configuration into billing rules
func (c *BillingConfig) Policy() billing.Policy {
	return billing.Policy{
		DeadlineOffsetDays: c.DeadlineOffsetDays,
		IntervalDays:       c.InstallmentIntervalDays,
		Tolerance:          c.Tolerance,
	}
}
