package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/guttosm/quote-service/internal/repository"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ErrRepositoryNotConfigured is returned when the service runs without MongoDB.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// CostModelSource tells where the cost model in use came from.
type CostModelSource string

const (
	SourceFile     CostModelSource = "file"
	SourceDatabase CostModelSource = "database"
	SourceDefaults CostModelSource = "defaults"
)

// LoadCostModelFile reads a YAML cost model. Keys absent from the file keep
// their built-in values, so a file may override a single table.
func LoadCostModelFile(path string) (*model.CostModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cost model: %w", err)
	}
	defer f.Close()

	return DecodeCostModel(f)
}

// DecodeCostModel decodes YAML over the defaults and validates the result.
func DecodeCostModel(r io.Reader) (*model.CostModel, error) {
	m := model.DefaultCostModel()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode cost model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cost model: %w", err)
	}
	return m, nil
}

// EncodeCostModel writes m as YAML.
func EncodeCostModel(w io.Writer, m *model.CostModel) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

// CostModelService manages stored cost model versions.
type CostModelService interface {
	GetActive(ctx context.Context) (*repository.CostModelVersion, error)
	Create(ctx context.Context, m model.CostModel, note, createdBy string) (*repository.CostModelVersion, error)
	List(ctx context.Context, limit int) ([]repository.CostModelVersion, error)
}

// CostModelServiceImpl implements CostModelService.
type CostModelServiceImpl struct {
	repo repository.CostModelRepositoryInterface
}

// NewCostModelService creates the service. A nil repo makes every call fail
// with ErrRepositoryNotConfigured.
func NewCostModelService(repo repository.CostModelRepositoryInterface) CostModelService {
	return &CostModelServiceImpl{repo: repo}
}

func (s *CostModelServiceImpl) GetActive(ctx context.Context) (*repository.CostModelVersion, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetActive(ctx)
}

// Create validates m and stores it as the new active version. Running
// processes keep pricing with the model they loaded at startup.
func (s *CostModelServiceImpl) Create(ctx context.Context, m model.CostModel, note, createdBy string) (*repository.CostModelVersion, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidInput, err)
	}
	return s.repo.Create(ctx, m, note, createdBy)
}

func (s *CostModelServiceImpl) List(ctx context.Context, limit int) ([]repository.CostModelVersion, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

// ResolvedCostModel is the cost model a process prices with.
type ResolvedCostModel struct {
	Model   *model.CostModel
	Source  CostModelSource
	Version int
}

// ResolveCostModel picks the cost model for this process: the file at path
// when set, else the active stored version, else the defaults. An empty
// database is seeded with the defaults. A stored version that fails
// validation is skipped.
func ResolveCostModel(ctx context.Context, path string, svc CostModelService) (ResolvedCostModel, error) {
	if path != "" {
		m, err := LoadCostModelFile(path)
		if err != nil {
			return ResolvedCostModel{}, err
		}
		return ResolvedCostModel{Model: m, Source: SourceFile}, nil
	}

	defaults := ResolvedCostModel{Model: model.DefaultCostModel(), Source: SourceDefaults}
	if svc == nil {
		return defaults, nil
	}

	active, err := svc.GetActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Could not load stored cost model, using defaults")
		return defaults, nil
	}

	if active == nil {
		seeded, err := svc.Create(ctx, *defaults.Model, "built-in defaults", "system")
		if err != nil {
			log.Warn().Err(err).Msg("Could not seed cost model")
			return defaults, nil
		}
		log.Info().Int("version", seeded.Version).Msg("Seeded cost model with defaults")
		return ResolvedCostModel{Model: defaults.Model, Source: SourceDatabase, Version: seeded.Version}, nil
	}

	m := active.Model
	if err := m.Validate(); err != nil {
		log.Error().Err(err).Int("version", active.Version).Msg("Stored cost model is invalid, using defaults")
		return defaults, nil
	}
	return ResolvedCostModel{Model: &m, Source: SourceDatabase, Version: active.Version}, nil
}
