package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/linmiao/lumipet/backend/internal/engine/resolve"
)

func TestNewServiceRequiresChatModel(t *testing.T) {
	if _, err := NewService(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error when no chat model is supplied")
	}
}

func TestClassifyGenerateError(t *testing.T) {
	quota := classifyGenerateError(errors.New("request failed: 429 Too Many Requests"))
	if !errors.Is(quota, resolve.ErrQuota) {
		t.Fatalf("429 should map to ErrQuota, got %v", quota)
	}

	quota = classifyGenerateError(errors.New("daily quota exhausted"))
	if !errors.Is(quota, resolve.ErrQuota) {
		t.Fatalf("quota message should map to ErrQuota, got %v", quota)
	}

	plain := classifyGenerateError(errors.New("connection reset by peer"))
	if errors.Is(plain, resolve.ErrQuota) {
		t.Fatal("transport errors must not map to ErrQuota")
	}
}
