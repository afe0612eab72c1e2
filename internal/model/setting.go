package model

// Well-known setting keys. Defaults are applied by the settings service when
// a key is absent, the table itself stores only what was written.
const (
	SettingDisplayCurrency   = "display_currency"
	SettingExchangeRate      = "exchange_rate"
	SettingTaxRate           = "tax_rate"
	SettingLowStockThreshold = "low_stock_threshold"
)

// Setting is a generic key/value row. Writes are upserts, last write wins.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (Setting) TableName() string { return "settings" }
