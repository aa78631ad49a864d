package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/services"
)

func TestWarningCollector_BasicUsage(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())

	services.AddWarning(ctx, models.Warning{Code: models.WarnSourceWeightSum, Message: "test warning 1"})
	services.AddWarning(ctx, models.Warning{Code: models.WarnSourceWeightSum, Message: "test warning 2"})

	warnings := wc.GetWarnings()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if warnings[1].Message != "test warning 2" {
		t.Errorf("expected warnings in insertion order, got %+v", warnings)
	}
}

func TestWarningCollector_NoCollectorNoPanic(t *testing.T) {
	services.AddWarning(context.Background(), models.Warning{
		Code:    models.WarnSourceWeightSum,
		Message: "this should only be logged",
	})
}

func TestWarningCollector_ConcurrentSafe(t *testing.T) {
	ctx, wc := services.NewWarningContext(context.Background())

	var wg sync.WaitGroup
	n := 50
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			services.AddWarning(ctx, models.Warning{Code: models.WarnSourceWeightSum, Message: "concurrent"})
		}()
	}
	wg.Wait()

	if got := len(wc.GetWarnings()); got != n {
		t.Errorf("expected %d warnings, got %d", n, got)
	}
}
