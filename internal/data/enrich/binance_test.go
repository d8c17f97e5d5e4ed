package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/influscan/influscan/internal/models"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name        string
		current     models.AssetStatus
		performance float64
		want        models.AssetStatus
	}{
		{
			name:        "near-total collapse is a rug pull",
			current:     models.AssetActive,
			performance: -97.3,
			want:        models.AssetRugPull,
		},
		{
			name:        "heavy loss is declined",
			current:     models.AssetActive,
			performance: -45,
			want:        models.AssetDeclined,
		},
		{
			name:        "moderate loss stays active",
			current:     models.AssetDeclined,
			performance: -10,
			want:        models.AssetActive,
		},
		{
			name:        "gain stays active",
			current:     models.AssetActive,
			performance: 120,
			want:        models.AssetActive,
		},
		{
			name:        "a recorded rug pull never recovers",
			current:     models.AssetRugPull,
			performance: 50,
			want:        models.AssetRugPull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyStatus(tt.current, tt.performance))
		})
	}
}
