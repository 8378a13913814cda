package dto

import (
	"encoding/json"

	"storage-price-estimator/internal/core/domain"
)

// displayDigits is the number of fractional digits of the Algo amount.
const displayDigits = 6

// CreateQuoteRequest is the JSON form of a quote request. Flag and price
// fields are loosely typed on purpose; the quote service normalizes them.
type CreateQuoteRequest struct {
	FileSize    *int64 `json:"fileSize"`
	IsPermanent any    `json:"isPermanent"`
	BasePrice   any    `json:"basePrice"`
	BytePrice   any    `json:"bytePrice"`
}

type QuoteResponse struct {
	Success             bool        `json:"success"`
	FileSize            int64       `json:"fileSize"`
	SizeInKB            int64       `json:"sizeInKB"`
	BasePrice           int64       `json:"basePrice"`
	BytePrice           int64       `json:"bytePrice"`
	ByteCost            json.Number `json:"byteCost"`
	BaseTotal           json.Number `json:"baseTotal"`
	PermanentMultiplier json.Number `json:"permanentMultiplier"`
	Price               json.Number `json:"price"`
	PriceInAlgos        json.Number `json:"priceInAlgos"`
	IsPermanent         bool        `json:"isPermanent"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	FileSize *int64 `json:"fileSize,omitempty"`
}

type DefaultsResponse struct {
	BasePrice           int64       `json:"basePrice"`
	BytePrice           int64       `json:"bytePrice"`
	PermanentMultiplier json.Number `json:"permanentMultiplier"`
	ScaleFactor         int64       `json:"scaleFactor"`
	MaxUploadBytes      int64       `json:"maxUploadBytes"`
}

func ToQuoteResponse(q *domain.PriceQuote) QuoteResponse {
	return QuoteResponse{
		Success:             true,
		FileSize:            q.SizeBytes,
		SizeInKB:            q.SizeInKB,
		BasePrice:           q.BasePrice,
		BytePrice:           q.BytePrice,
		ByteCost:            json.Number(q.ByteCost.String()),
		BaseTotal:           json.Number(q.BaseTotal.String()),
		PermanentMultiplier: json.Number(q.EffectiveMultiplier.String()),
		Price:               json.Number(q.TotalPrice.String()),
		PriceInAlgos:        json.Number(q.TotalPriceScaled.StringFixed(displayDigits)),
		IsPermanent:         q.IsPermanent,
	}
}

func ToDefaultsResponse(r domain.Rates, maxUploadBytes int64) DefaultsResponse {
	return DefaultsResponse{
		BasePrice:           r.BasePrice,
		BytePrice:           r.BytePrice,
		PermanentMultiplier: json.Number(r.PermanentMultiplier.String()),
		ScaleFactor:         r.ScaleFactor,
		MaxUploadBytes:      maxUploadBytes,
	}
}
