package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/astro-transit-backend/internal/natal_transit/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	receiptKeyPrefix = "astro:calc:"   // Receipt data: astro:calc:{id}
	receiptTTL       = 24 * time.Hour // Receipts are short-lived request summaries
)

// ReceiptRepository handles Redis operations for calculation receipts
type ReceiptRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReceiptRepository creates a new ReceiptRepository
func NewReceiptRepository(client *redis.Client) *ReceiptRepository {
	return &ReceiptRepository{
		client: client,
		ttl:    receiptTTL,
	}
}

// Save stores a receipt, assigning an ID when missing
func (r *ReceiptRepository) Save(ctx context.Context, receipt *domain.CalculationReceipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}

	if err := r.client.Set(ctx, r.receiptKey(receipt.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}
	return nil
}

// Get retrieves a receipt by its ID
func (r *ReceiptRepository) Get(ctx context.Context, id string) (*domain.CalculationReceipt, error) {
	data, err := r.client.Get(ctx, r.receiptKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	var receipt domain.CalculationReceipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal receipt: %w", err)
	}
	return &receipt, nil
}

func (r *ReceiptRepository) receiptKey(id string) string {
	return fmt.Sprintf("%s%s", receiptKeyPrefix, id)
}
