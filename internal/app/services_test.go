//go:build !integration

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/mocks"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/guttosm/quote-service/internal/service"
)

func writeCostModelFile(t *testing.T, m *model.CostModel) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cost-model.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, service.EncodeCostModel(f, m))
	return path
}

func TestInitializeServices_CostModelSource(t *testing.T) {
	fileModel := model.DefaultCostModel()
	fileModel.TaxRate = 0.05
	path := writeCostModelFile(t, fileModel)

	stored := model.DefaultCostModel()
	stored.TaxRate = 0.08

	tests := []struct {
		name        string
		file        string
		setupRepo   func(*mocks.MockCostModelRepository)
		wantSource  service.CostModelSource
		wantVersion int
		wantTax     float64
	}{
		{
			name:       "defaults without a database",
			wantSource: service.SourceDefaults,
			wantTax:    model.DefaultCostModel().TaxRate,
		},
		{
			name:       "file wins over the database",
			file:       path,
			setupRepo:  func(*mocks.MockCostModelRepository) {},
			wantSource: service.SourceFile,
			wantTax:    0.05,
		},
		{
			name: "active stored version",
			setupRepo: func(m *mocks.MockCostModelRepository) {
				m.On("GetActive", mock.Anything).Return(&repository.CostModelVersion{Version: 3, Active: true, Model: *stored}, nil).Once()
			},
			wantSource:  service.SourceDatabase,
			wantVersion: 3,
			wantTax:     0.08,
		},
		{
			name: "empty database is seeded",
			setupRepo: func(m *mocks.MockCostModelRepository) {
				m.On("GetActive", mock.Anything).Return(nil, nil).Once()
				m.On("Create", mock.Anything, mock.Anything, mock.Anything, "system").
					Return(&repository.CostModelVersion{Version: 1, Active: true}, nil).Once()
			},
			wantSource:  service.SourceDatabase,
			wantVersion: 1,
			wantTax:     model.DefaultCostModel().TaxRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Pricing.CostModelFile = tt.file

			var db *DatabaseComponents
			if tt.setupRepo != nil {
				repo := &mocks.MockCostModelRepository{}
				tt.setupRepo(repo)
				t.Cleanup(func() { repo.AssertExpectations(t) })
				db = &DatabaseComponents{CostModels: service.NewCostModelService(repo)}
			}

			components, err := InitializeServices(context.Background(), cfg, db)
			require.NoError(t, err)
			t.Cleanup(components.Pricing.Stop)

			assert.Equal(t, tt.wantSource, components.CostModel.Source)
			assert.Equal(t, tt.wantVersion, components.CostModel.Version)
			assert.InDelta(t, tt.wantTax, components.Pricing.CostModel().TaxRate, 1e-9)
		})
	}
}

func TestInitializeServices_Redis(t *testing.T) {
	t.Run("shared cache when reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig()
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = mr.Addr()

		components, err := InitializeServices(context.Background(), cfg, nil)
		require.NoError(t, err)
		t.Cleanup(components.Pricing.Stop)

		require.NotNil(t, components.Redis)
		assert.NoError(t, components.Redis.Ping(context.Background()))

		_, err = components.Pricing.Quote(model.OrderRequest{
			Product:          components.Pricing.ResolveProduct(model.PackageFlat3Side, nil),
			Specification:    model.PackageSpecification{PackageType: model.PackageFlat3Side, WidthMm: 100, HeightMm: 150, ThicknessMicrons: 80, MaterialType: model.MaterialPE},
			Quantity:         5000,
			DeliveryLocation: model.DeliveryDomestic,
			Urgency:          model.UrgencyStandard,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, mr.Keys())
	})

	t.Run("unreachable redis falls back to the local cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := testConfig()
		cfg.Redis.Enabled = true
		cfg.Redis.Addr = addr

		components, err := InitializeServices(context.Background(), cfg, nil)
		require.NoError(t, err)
		t.Cleanup(components.Pricing.Stop)

		assert.Nil(t, components.Redis)
		_, ok := components.Pricing.CacheMetrics()
		assert.True(t, ok)
	})
}

func TestInitializeServices_Shares(t *testing.T) {
	cfg := testConfig()

	components, err := InitializeServices(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(components.Pricing.Stop)
	assert.Nil(t, components.Shares)

	costs := &mocks.MockCostModelRepository{}
	costs.On("GetActive", mock.Anything).Return(&repository.CostModelVersion{Version: 1, Active: true, Model: *model.DefaultCostModel()}, nil)
	db := &DatabaseComponents{
		CostModels: service.NewCostModelService(costs),
		Shares:     &mocks.MockShareRepository{},
	}

	components, err = InitializeServices(context.Background(), cfg, db)
	require.NoError(t, err)
	t.Cleanup(components.Pricing.Stop)
	assert.NotNil(t, components.Shares)
}
