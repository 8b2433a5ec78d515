package services

import (
	"fmt"
	"os"
	"strings"

	"Backend-GeoAttend/src/qrcode"

	"github.com/google/uuid"
)

// BuildCheckInLink สร้าง deep link สำหรับเช็คชื่อ โดยฝัง session code ไว้ใน URL
func BuildCheckInLink(code string) string {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8888"
	}
	base = strings.TrimRight(base, "/")
	return fmt.Sprintf("%s/#/Student/CheckIn/%s", base, code)
}

// CreateSessionQRCode - สร้าง QR Code ของ deep link เช็คชื่อสำหรับฉายขึ้นจอ
func CreateSessionQRCode(sessionID, code string) (string, error) {
	qrData := BuildCheckInLink(code)
	// unique filename กัน browser cache รูปเก่า
	fileName := fmt.Sprintf("session_%s_%s", sessionID, uuid.NewString())

	err := qrcode.GenerateQRCode(qrData, fileName)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("/public/qrcodes/%s.png", fileName), nil
}
