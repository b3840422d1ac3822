package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/domain/models"
	"github.com/genapagie/ovinpro/pkg/clients/gemini"
)

var (
	// ErrAnalysisBusy rejects a call while the same user already has an
	// analysis outstanding, so a slow upload cannot double-spend the API.
	ErrAnalysisBusy = errors.New("analysis already in progress")

	// ErrAnalysisDisabled is returned when no API key was configured.
	ErrAnalysisDisabled = errors.New("ai analysis is not configured")
)

// Service fronts the vision adapter. Failures are non-fatal by design: the
// caller keeps whatever was entered manually and completes the record by
// hand.
type Service struct {
	client gemini.Client
	logger *zap.Logger

	mu     sync.Mutex
	inWork map[string]bool
}

// NewService wires the analysis service. client may be nil when the feature
// is disabled.
func NewService(client gemini.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger, inWork: make(map[string]bool)}
}

// Analyze runs one image through the vision adapter for the given user and
// returns the partial result. Trait entries the model invented outside the
// closed tables are dropped rather than poisoning a later save. When the
// request carries a draft record, the sanitized result is merged into it,
// keeping every manually entered trait.
func (s *Service) Analyze(ctx context.Context, userID string, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if s.client == nil {
		return nil, ErrAnalysisDisabled
	}

	s.mu.Lock()
	if s.inWork[userID] {
		s.mu.Unlock()
		return nil, ErrAnalysisBusy
	}
	s.inWork[userID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inWork, userID)
		s.mu.Unlock()
	}()

	result, err := s.client.AnalyzeSheepImage(ctx, req)
	if err != nil {
		s.logger.Warn("image analysis failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("image analysis: %w", err)
	}

	result.Measurements = sanitize(result.Measurements, models.MorphoTraits, s.logger)
	result.MammaryTraits = sanitize(result.MammaryTraits, models.MammaryTraits, s.logger)
	if result.MammaryScore < 0 {
		result.MammaryScore = 0
	}
	if result.MammaryScore > 10 {
		result.MammaryScore = 10
	}

	if req.Draft != nil {
		result.MergeInto(req.Draft)
	}

	return result, nil
}

// sanitize keeps only trait entries that pass the definition table, one by
// one, so a single hallucinated key does not discard the usable estimates.
func sanitize(values map[string]models.TraitValue, defs []models.TraitDef, logger *zap.Logger) map[string]models.TraitValue {
	if len(values) == 0 {
		return values
	}
	out := make(map[string]models.TraitValue, len(values))
	for id, v := range values {
		if err := models.ValidateTraits(map[string]models.TraitValue{id: v}, defs); err != nil {
			logger.Debug("dropping ai trait", zap.String("trait", id), zap.Error(err))
			continue
		}
		out[id] = v
	}
	return out
}
