package probe

import (
	"context"

	"github.com/hamed0406/pageloadtime/internal/domain"
)

// Measurer times every identifier found in a raw input string.
type Measurer interface {
	Measure(ctx context.Context, input string) ([]domain.Measurement, error)
}

var _ Measurer = (*Timer)(nil)
