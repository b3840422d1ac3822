package livestock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

// ErrNotFound is returned when a referenced breeder or sheep does not exist
// under the calling user.
var ErrNotFound = errors.New("not found")

// Store is the slice of the repository the livestock service needs.
type Store interface {
	GetBreeders(ctx context.Context, userID string) ([]models.Breeder, error)
	SaveBreeder(ctx context.Context, breeder models.Breeder) error
	DeleteBreeder(ctx context.Context, id string) error

	GetPrices(ctx context.Context, breederID string) ([]models.IngredientPrice, error)
	SavePrice(ctx context.Context, price models.IngredientPrice) error

	GetSheep(ctx context.Context, userID, breederID string) ([]models.Sheep, error)
	SaveSheep(ctx context.Context, sheep models.Sheep) error
	DeleteSheep(ctx context.Context, id string) error

	GetHealth(ctx context.Context, userID, breederID string) ([]models.HealthRecord, error)
	AddHealth(ctx context.Context, rec models.HealthRecord) error
	GetProduction(ctx context.Context, userID, breederID string) ([]models.ProductionRecord, error)
	AddProduction(ctx context.Context, rec models.ProductionRecord) error
	GetReproduction(ctx context.Context, userID, breederID string) ([]models.ReproductionRecord, error)
	AddReproduction(ctx context.Context, rec models.ReproductionRecord) error
	GetNutrition(ctx context.Context, userID, breederID string) ([]models.NutritionRecord, error)
	AddNutrition(ctx context.Context, rec models.NutritionRecord) error
}

// RegisterSync mirrors saved sheep into an external flock register. Optional;
// failures never block a save.
type RegisterSync interface {
	AppendSheep(ctx context.Context, sheep models.Sheep) error
}

// Service implements the farm-management operations: breeders, animals,
// ingredient prices and the four time-series record kinds, all scoped to the
// calling user.
type Service struct {
	store  Store
	sync   RegisterSync
	logger *zap.Logger
}

// NewService wires a livestock service. sync may be nil.
func NewService(store Store, sync RegisterSync, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, sync: sync, logger: logger}
}

// ---- breeders ----

func (s *Service) ListBreeders(ctx context.Context, userID string) ([]models.Breeder, error) {
	return s.store.GetBreeders(ctx, userID)
}

// SaveBreeder creates or updates a breeder under the calling user. A missing
// id means create; a stable id means update.
func (s *Service) SaveBreeder(ctx context.Context, userID string, breeder models.Breeder) (*models.Breeder, error) {
	if breeder.Name == "" {
		return nil, fmt.Errorf("breeder name is required")
	}
	if breeder.ID == "" {
		breeder.ID = uuid.NewString()
	}
	breeder.UserID = userID

	if err := s.store.SaveBreeder(ctx, breeder); err != nil {
		return nil, err
	}
	return &breeder, nil
}

// DeleteBreeder removes a breeder the user owns, cascading to its dependents.
func (s *Service) DeleteBreeder(ctx context.Context, userID, id string) error {
	if err := s.ownBreeder(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteBreeder(ctx, id)
}

func (s *Service) ownBreeder(ctx context.Context, userID, breederID string) error {
	breeders, err := s.store.GetBreeders(ctx, userID)
	if err != nil {
		return err
	}
	for _, b := range breeders {
		if b.ID == breederID {
			return nil
		}
	}
	return fmt.Errorf("breeder %s: %w", breederID, ErrNotFound)
}

// ---- prices ----

func (s *Service) ListPrices(ctx context.Context, userID, breederID string) ([]models.IngredientPrice, error) {
	if err := s.ownBreeder(ctx, userID, breederID); err != nil {
		return nil, err
	}
	return s.store.GetPrices(ctx, breederID)
}

// UpsertPrice creates or refreshes a priced ingredient under one of the
// user's breeders.
func (s *Service) UpsertPrice(ctx context.Context, userID string, price models.IngredientPrice) (*models.IngredientPrice, error) {
	if price.Ingredient == "" {
		return nil, fmt.Errorf("ingredient name is required")
	}
	if err := s.ownBreeder(ctx, userID, price.BreederID); err != nil {
		return nil, err
	}
	if price.ID == "" {
		price.ID = uuid.NewString()
	}
	price.UpdatedAt = time.Now()

	if err := s.store.SavePrice(ctx, price); err != nil {
		return nil, err
	}
	return &price, nil
}

// ---- sheep ----

func (s *Service) ListSheep(ctx context.Context, userID, breederID string) ([]models.Sheep, error) {
	return s.store.GetSheep(ctx, userID, breederID)
}

// SaveSheep normalizes and validates a sheep record, persists it under the
// calling user, and mirrors it to the flock register when one is configured.
func (s *Service) SaveSheep(ctx context.Context, userID string, sheep models.Sheep) (*models.Sheep, error) {
	if err := s.ownBreeder(ctx, userID, sheep.BreederID); err != nil {
		return nil, err
	}
	if sheep.ID == "" {
		sheep.ID = uuid.NewString()
	}
	if sheep.CreatedAt.IsZero() {
		sheep.CreatedAt = time.Now()
	}
	sheep.UserID = userID
	sheep.Normalize()
	if err := sheep.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.SaveSheep(ctx, sheep); err != nil {
		return nil, err
	}

	if s.sync != nil {
		if err := s.sync.AppendSheep(ctx, sheep); err != nil {
			s.logger.Warn("flock register sync failed",
				zap.String("sheep_id", sheep.ID), zap.Error(err))
		}
	}

	return &sheep, nil
}

// DeleteSheep removes one of the user's animals. Unknown ids under this user
// are rejected rather than silently deleting another farm's row.
func (s *Service) DeleteSheep(ctx context.Context, userID, id string) error {
	owned, err := s.store.GetSheep(ctx, userID, "")
	if err != nil {
		return err
	}
	for _, sh := range owned {
		if sh.ID == id {
			return s.store.DeleteSheep(ctx, id)
		}
	}
	return fmt.Errorf("sheep %s: %w", id, ErrNotFound)
}

// ---- time-series records ----

func (s *Service) ListHealth(ctx context.Context, userID, breederID string) ([]models.HealthRecord, error) {
	return s.store.GetHealth(ctx, userID, breederID)
}

func (s *Service) AddHealth(ctx context.Context, userID string, rec models.HealthRecord) (*models.HealthRecord, error) {
	if err := s.ownBreeder(ctx, userID, rec.BreederID); err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	rec.UserID = userID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	if err := s.store.AddHealth(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) ListProduction(ctx context.Context, userID, breederID string) ([]models.ProductionRecord, error) {
	return s.store.GetProduction(ctx, userID, breederID)
}

func (s *Service) AddProduction(ctx context.Context, userID string, rec models.ProductionRecord) (*models.ProductionRecord, error) {
	if err := s.ownBreeder(ctx, userID, rec.BreederID); err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	rec.UserID = userID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	if err := s.store.AddProduction(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) ListReproduction(ctx context.Context, userID, breederID string) ([]models.ReproductionRecord, error) {
	return s.store.GetReproduction(ctx, userID, breederID)
}

func (s *Service) AddReproduction(ctx context.Context, userID string, rec models.ReproductionRecord) (*models.ReproductionRecord, error) {
	if err := s.ownBreeder(ctx, userID, rec.BreederID); err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	rec.UserID = userID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	if err := s.store.AddReproduction(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Service) ListNutrition(ctx context.Context, userID, breederID string) ([]models.NutritionRecord, error) {
	return s.store.GetNutrition(ctx, userID, breederID)
}

func (s *Service) AddNutrition(ctx context.Context, userID string, rec models.NutritionRecord) (*models.NutritionRecord, error) {
	if err := s.ownBreeder(ctx, userID, rec.BreederID); err != nil {
		return nil, err
	}
	rec.ID = uuid.NewString()
	rec.UserID = userID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	if err := s.store.AddNutrition(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
