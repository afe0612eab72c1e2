package dto

type SaveSettingRequest struct {
	Key   string `json:"key"   validate:"required,min=1,max=100"`
	Value string `json:"value" validate:"max=1000"`
}

type RateResponse struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}
