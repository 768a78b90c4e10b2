package handlers

import (
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeImage renders the public URL as a PNG so visitors can open the
// booking page from a poster.
func QRCodeImage(publicURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		png, err := qrcode.Encode(publicURL, qrcode.Medium, 256)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate QR code"})
			return
		}
		c.Data(200, "image/png", png)
	}
}
