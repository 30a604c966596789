package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(restaurantID, tableNo int) ([]byte, error)
}

// DefaultQRGenerator encodes the customer ordering URL for one table.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(restaurantID, tableNo int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/order?restaurant=%d&table=%d", g.BaseURL, restaurantID, tableNo)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
