package models

import "io"

// Upload is a single file taken from a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	// Size is the size declared by the client; -1 when unknown.
	Size int64
	Data io.Reader
}

type SubmitOrderInput struct {
	Name     string `validate:"required,max=200"`
	Email    string `validate:"required,email,max=320"`
	Address  string `validate:"required,max=4096"`
	Template string `validate:"required,max=255"`
	Photo    *Upload
}

type ProcessImageRequest struct {
	OrderID string `json:"orderId" binding:"required" example:"9b2f3c1e-4d5a-4e61-8f7a-0c1d2e3f4a5b"`
}
