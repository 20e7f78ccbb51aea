package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== ORDER ID ====================

func GenerateOrderID() string {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	// Format: BOOK-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("BOOK-%s-%s-%s", datePart, timePart, randomPart)
}

// ==================== TRANSACTION REFERENCE ====================

// GenerateTxRef creates the idempotency token sent to the payment processor.
// The payment id is embedded so a retried or duplicated checkout session can
// always be traced back to its local payment record.
func GenerateTxRef(paymentID uuid.UUID) string {
	return fmt.Sprintf("payment-%s-%s", paymentID.String(), uuid.New().String())
}
