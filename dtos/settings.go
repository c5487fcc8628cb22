package dtos

type RestaurantSettingsInput struct {
	Name              string   `json:"name" binding:"required,max=150"`
	Address           string   `json:"address"`
	Phone             string   `json:"phone"`
	Currency          string   `json:"currency" binding:"required,max=10"`
	TaxEnabled        *bool    `json:"tax_enabled" binding:"required"`
	ServiceChargeRate *float64 `json:"service_charge_rate" binding:"required,gte=0,lte=100"`
}

type TelegramSettingsInput struct {
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
	Enabled  *bool  `json:"enabled" binding:"required"`
}

type PrinterSettingsInput struct {
	PrinterName string `json:"printer_name" binding:"required,max=100"`
	AutoPrint   *bool  `json:"auto_print" binding:"required"`
}
