package qrcode

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

const outputDir = "public/qrcodes"

// GenerateQRCode เรนเดอร์ข้อมูลเป็น QR Code แล้วบันทึกเป็นไฟล์ PNG ขนาด 256px
func GenerateQRCode(data string, filename string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	filePath := fmt.Sprintf("%s/%s.png", outputDir, filename)
	return qrcode.WriteFile(data, qrcode.Medium, 256, filePath)
}

// GeneratePNG เรนเดอร์เป็น PNG bytes สำหรับส่งกลับใน response โดยตรง
func GeneratePNG(data string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(data, qrcode.Medium, size)
}
