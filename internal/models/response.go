package models

type SubmitOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
	Order   *Order `json:"order"`
}

type ProcessImageResponse struct {
	OrderID            string `json:"orderId"`
	ProcessedImagePath string `json:"processedImagePath"`
	URL                string `json:"url,omitempty"`
}

type InlineImageResponse struct {
	Image       string `json:"image"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type TemplatesResponse struct {
	Templates []string `json:"templates"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
