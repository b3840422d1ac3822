package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

// ErrMalformedDocument rejects an import payload that does not parse as a
// snapshot document. Nothing is written when it is returned.
var ErrMalformedDocument = errors.New("malformed import document")

// Store is the slice of the repository the import/export gateway needs.
type Store interface {
	GetBreeders(ctx context.Context, userID string) ([]models.Breeder, error)
	GetAllBreeders(ctx context.Context) ([]models.Breeder, error)
	SaveBreeder(ctx context.Context, breeder models.Breeder) error
	GetSheep(ctx context.Context, userID, breederID string) ([]models.Sheep, error)
	GetAllSheep(ctx context.Context) ([]models.Sheep, error)
	SaveSheep(ctx context.Context, sheep models.Sheep) error
	GetAllPrices(ctx context.Context) ([]models.IngredientPrice, error)
	SavePrice(ctx context.Context, price models.IngredientPrice) error
}

// Service produces and consumes portable snapshots of one user's core
// profile: breeders, sheep, and the prices attached to those breeders.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires an import/export gateway.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Export collects the user's breeders and sheep in full, plus every price
// row belonging to one of those breeders. Prices have no owning-user
// attribute, so membership is resolved through the breeder list. An empty
// profile exports empty arrays, never nulls.
func (s *Service) Export(ctx context.Context, userID string) (*models.ExportDocument, error) {
	breeders, err := s.store.GetBreeders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("export breeders: %w", err)
	}
	if breeders == nil {
		breeders = []models.Breeder{}
	}

	sheep, err := s.store.GetSheep(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("export sheep: %w", err)
	}
	if sheep == nil {
		sheep = []models.Sheep{}
	}

	allPrices, err := s.store.GetAllPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("export prices: %w", err)
	}
	owned := make(map[string]bool, len(breeders))
	for _, b := range breeders {
		owned[b.ID] = true
	}
	prices := make([]models.IngredientPrice, 0, len(allPrices))
	for _, p := range allPrices {
		if owned[p.BreederID] {
			prices = append(prices, p)
		}
	}

	return &models.ExportDocument{
		Breeders:   breeders,
		Sheep:      sheep,
		Prices:     prices,
		ExportDate: time.Now(),
	}, nil
}

// Filename names the downloadable snapshot after its owner and export day.
func Filename(userID string, exportDate time.Time) string {
	return fmt.Sprintf("ovin_backup_%s_%s.json", userID, exportDate.Format("2006-01-02"))
}

// importDocument tolerates foreign top-level keys and distinguishes missing
// sections (left untouched) from present-but-empty ones. exportDate is
// accepted and ignored.
type importDocument struct {
	Breeders []models.Breeder         `json:"breeders"`
	Sheep    []models.Sheep           `json:"sheep"`
	Prices   []models.IngredientPrice `json:"prices"`
}

// Import restores a snapshot into the calling user's account: breeders, then
// sheep, then prices, one row at a time. Every applied row is stamped with
// the caller's user id, and a row that would touch another account (an
// existing id owned by someone else, or a breeder reference outside the
// account) counts as failed, whatever owner the document claims. A parse
// failure aborts before any write. Row failures are counted per section and
// logged; rows already applied stay applied. No transaction spans the batch,
// so the report is what makes a partial outcome visible to the caller.
func (s *Service) Import(ctx context.Context, userID string, raw []byte) (models.ImportReport, error) {
	var report models.ImportReport

	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return report, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	owned, foreignBreeders, err := s.breederOwnership(ctx, userID)
	if err != nil {
		return report, err
	}

	for _, b := range doc.Breeders {
		if err := s.importBreeder(ctx, userID, b, foreignBreeders); err != nil {
			s.logger.Warn("import breeder failed", zap.String("id", b.ID), zap.Error(err))
			report.Breeders.Failed++
			continue
		}
		owned[b.ID] = true
		report.Breeders.Applied++
	}

	if len(doc.Sheep) > 0 {
		foreignSheep, err := s.foreignSheep(ctx, userID)
		if err != nil {
			return report, err
		}
		for _, sh := range doc.Sheep {
			if err := s.importSheep(ctx, userID, sh, owned, foreignSheep); err != nil {
				s.logger.Warn("import sheep failed", zap.String("id", sh.ID), zap.Error(err))
				report.Sheep.Failed++
				continue
			}
			report.Sheep.Applied++
		}
	}

	if len(doc.Prices) > 0 {
		foreignPrices, err := s.foreignPrices(ctx, owned)
		if err != nil {
			return report, err
		}
		for _, p := range doc.Prices {
			if err := s.importPrice(ctx, p, owned, foreignPrices); err != nil {
				s.logger.Warn("import price failed", zap.String("id", p.ID), zap.Error(err))
				report.Prices.Failed++
				continue
			}
			report.Prices.Applied++
		}
	}

	return report, nil
}

// breederOwnership splits the existing breeder ids into the caller's own
// (valid import targets) and everyone else's (rows an import must not touch).
func (s *Service) breederOwnership(ctx context.Context, userID string) (owned, foreign map[string]bool, err error) {
	all, err := s.store.GetAllBreeders(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load breeders: %w", err)
	}
	owned = make(map[string]bool, len(all))
	foreign = make(map[string]bool)
	for _, b := range all {
		if b.UserID == userID {
			owned[b.ID] = true
		} else {
			foreign[b.ID] = true
		}
	}
	return owned, foreign, nil
}

func (s *Service) foreignSheep(ctx context.Context, userID string) (map[string]bool, error) {
	all, err := s.store.GetAllSheep(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sheep: %w", err)
	}
	foreign := make(map[string]bool)
	for _, sh := range all {
		if sh.UserID != userID {
			foreign[sh.ID] = true
		}
	}
	return foreign, nil
}

// foreignPrices indexes existing price rows hanging off a breeder outside the
// owned set, breeders applied earlier in this import included.
func (s *Service) foreignPrices(ctx context.Context, owned map[string]bool) (map[string]bool, error) {
	all, err := s.store.GetAllPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	foreign := make(map[string]bool)
	for _, p := range all {
		if !owned[p.BreederID] {
			foreign[p.ID] = true
		}
	}
	return foreign, nil
}

func (s *Service) importBreeder(ctx context.Context, userID string, b models.Breeder, foreign map[string]bool) error {
	if b.ID == "" || b.Name == "" {
		return fmt.Errorf("breeder row missing id or name")
	}
	if foreign[b.ID] {
		return fmt.Errorf("breeder %s belongs to another account", b.ID)
	}
	b.UserID = userID
	return s.store.SaveBreeder(ctx, b)
}

func (s *Service) importSheep(ctx context.Context, userID string, sh models.Sheep, owned, foreign map[string]bool) error {
	if sh.ID == "" || sh.BreederID == "" {
		return fmt.Errorf("sheep row missing id or breeder")
	}
	if foreign[sh.ID] {
		return fmt.Errorf("sheep %s belongs to another account", sh.ID)
	}
	if !owned[sh.BreederID] {
		return fmt.Errorf("sheep %s references breeder %s outside the account", sh.ID, sh.BreederID)
	}
	sh.UserID = userID
	sh.Normalize()
	if err := sh.Validate(); err != nil {
		return err
	}
	return s.store.SaveSheep(ctx, sh)
}

func (s *Service) importPrice(ctx context.Context, p models.IngredientPrice, owned, foreign map[string]bool) error {
	if p.ID == "" || p.BreederID == "" {
		return fmt.Errorf("price row missing id or breeder")
	}
	if foreign[p.ID] {
		return fmt.Errorf("price %s belongs to another account", p.ID)
	}
	if !owned[p.BreederID] {
		return fmt.Errorf("price %s references breeder %s outside the account", p.ID, p.BreederID)
	}
	return s.store.SavePrice(ctx, p)
}
