package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

// ErrUsernameTaken is returned when a registration collides with an existing
// username. The unique index makes the check atomic.
var ErrUsernameTaken = errors.New("username already taken")

// Repository exposes typed, ownership-scoped views over the store. Owner
// scoping is a full read followed by an in-memory filter: collections are
// farm-scale (hundreds of rows), and the store stays a plain named-collection
// primitive with no query pushdown.
type Repository struct {
	store *Store
}

// NewRepository wires a repository around an already-opened store handle.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// ---- users ----

// CreateUser inserts a new user, failing with ErrUsernameTaken when the
// username is already registered.
func (r *Repository) CreateUser(ctx context.Context, user models.User) error {
	if _, err := r.store.collection(CollUsers).InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByUsername scans the user collection for an exact, case-sensitive
// match. Returns nil when no user carries that username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := getAll[models.User](ctx, r.store, CollUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetUsers returns every registered user; the snapshot scheduler iterates
// them to export each farm in turn.
func (r *Repository) GetUsers(ctx context.Context) ([]models.User, error) {
	return getAll[models.User](ctx, r.store, CollUsers)
}

// ---- breeders ----

func (r *Repository) GetBreeders(ctx context.Context, userID string) ([]models.Breeder, error) {
	all, err := getAll[models.Breeder](ctx, r.store, CollBreeders)
	if err != nil {
		return nil, err
	}
	var out []models.Breeder
	for _, b := range all {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetAllBreeders returns the whole breeder collection; import uses it to
// keep one account's restore away from another account's rows.
func (r *Repository) GetAllBreeders(ctx context.Context) ([]models.Breeder, error) {
	return getAll[models.Breeder](ctx, r.store, CollBreeders)
}

func (r *Repository) SaveBreeder(ctx context.Context, breeder models.Breeder) error {
	return put(ctx, r.store, CollBreeders, breeder.ID, breeder)
}

// DeleteBreeder removes a breeder and cascades to its sheep, prices and
// time-series records so no orphan rows survive the farm.
func (r *Repository) DeleteBreeder(ctx context.Context, id string) error {
	if err := remove(ctx, r.store, CollBreeders, id); err != nil {
		return err
	}

	sheep, err := getAll[models.Sheep](ctx, r.store, CollSheep)
	if err != nil {
		return err
	}
	for _, s := range sheep {
		if s.BreederID != id {
			continue
		}
		if err := remove(ctx, r.store, CollSheep, s.ID); err != nil {
			return err
		}
	}

	prices, err := getAll[models.IngredientPrice](ctx, r.store, CollPrices)
	if err != nil {
		return err
	}
	for _, p := range prices {
		if p.BreederID != id {
			continue
		}
		if err := remove(ctx, r.store, CollPrices, p.ID); err != nil {
			return err
		}
	}

	return r.purgeRecords(ctx, id)
}

// purgeRecords drops every time-series row attached to the breeder. The row
// kinds share id/breeder fields, so a light projection is enough.
func (r *Repository) purgeRecords(ctx context.Context, breederID string) error {
	type scoped struct {
		ID        string `bson:"_id"`
		BreederID string `bson:"breeder_id"`
	}
	for _, coll := range []string{CollHealth, CollProduction, CollReproduction, CollNutrition} {
		rows, err := getAll[scoped](ctx, r.store, coll)
		if err != nil {
			return err
		}
		for _, row := range rows {
			if row.BreederID != breederID {
				continue
			}
			if err := remove(ctx, r.store, coll, row.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// ---- prices ----

// GetPrices returns the ingredient prices of one breeder. Prices have no
// owning-user attribute; scoping stops at the breeder.
func (r *Repository) GetPrices(ctx context.Context, breederID string) ([]models.IngredientPrice, error) {
	all, err := getAll[models.IngredientPrice](ctx, r.store, CollPrices)
	if err != nil {
		return nil, err
	}
	var out []models.IngredientPrice
	for _, p := range all {
		if p.BreederID == breederID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetAllPrices returns the whole price collection; export filters it by
// breeder membership.
func (r *Repository) GetAllPrices(ctx context.Context) ([]models.IngredientPrice, error) {
	return getAll[models.IngredientPrice](ctx, r.store, CollPrices)
}

func (r *Repository) SavePrice(ctx context.Context, price models.IngredientPrice) error {
	return put(ctx, r.store, CollPrices, price.ID, price)
}

// ---- sheep ----

// GetSheep returns a user's animals, optionally narrowed to one breeder when
// breederID is non-empty.
func (r *Repository) GetSheep(ctx context.Context, userID, breederID string) ([]models.Sheep, error) {
	all, err := getAll[models.Sheep](ctx, r.store, CollSheep)
	if err != nil {
		return nil, err
	}
	var out []models.Sheep
	for _, s := range all {
		if s.UserID == userID && (breederID == "" || s.BreederID == breederID) {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetAllSheep returns the whole sheep collection, again for the import
// ownership check.
func (r *Repository) GetAllSheep(ctx context.Context) ([]models.Sheep, error) {
	return getAll[models.Sheep](ctx, r.store, CollSheep)
}

func (r *Repository) SaveSheep(ctx context.Context, sheep models.Sheep) error {
	return put(ctx, r.store, CollSheep, sheep.ID, sheep)
}

func (r *Repository) DeleteSheep(ctx context.Context, id string) error {
	return remove(ctx, r.store, CollSheep, id)
}

// ---- time-series records (append-only) ----

func (r *Repository) GetHealth(ctx context.Context, userID, breederID string) ([]models.HealthRecord, error) {
	return scopedRecords(ctx, r.store, CollHealth, userID, breederID,
		func(rec models.HealthRecord) (string, string) { return rec.UserID, rec.BreederID })
}

func (r *Repository) AddHealth(ctx context.Context, rec models.HealthRecord) error {
	return put(ctx, r.store, CollHealth, rec.ID, rec)
}

func (r *Repository) GetProduction(ctx context.Context, userID, breederID string) ([]models.ProductionRecord, error) {
	return scopedRecords(ctx, r.store, CollProduction, userID, breederID,
		func(rec models.ProductionRecord) (string, string) { return rec.UserID, rec.BreederID })
}

func (r *Repository) AddProduction(ctx context.Context, rec models.ProductionRecord) error {
	return put(ctx, r.store, CollProduction, rec.ID, rec)
}

func (r *Repository) GetReproduction(ctx context.Context, userID, breederID string) ([]models.ReproductionRecord, error) {
	return scopedRecords(ctx, r.store, CollReproduction, userID, breederID,
		func(rec models.ReproductionRecord) (string, string) { return rec.UserID, rec.BreederID })
}

func (r *Repository) AddReproduction(ctx context.Context, rec models.ReproductionRecord) error {
	return put(ctx, r.store, CollReproduction, rec.ID, rec)
}

func (r *Repository) GetNutrition(ctx context.Context, userID, breederID string) ([]models.NutritionRecord, error) {
	return scopedRecords(ctx, r.store, CollNutrition, userID, breederID,
		func(rec models.NutritionRecord) (string, string) { return rec.UserID, rec.BreederID })
}

func (r *Repository) AddNutrition(ctx context.Context, rec models.NutritionRecord) error {
	return put(ctx, r.store, CollNutrition, rec.ID, rec)
}

func scopedRecords[T any](ctx context.Context, s *Store, coll, userID, breederID string, owner func(T) (string, string)) ([]T, error) {
	all, err := getAll[T](ctx, s, coll)
	if err != nil {
		return nil, err
	}
	var out []T
	for _, rec := range all {
		uid, bid := owner(rec)
		if uid == userID && (breederID == "" || bid == breederID) {
			out = append(out, rec)
		}
	}
	return out, nil
}
