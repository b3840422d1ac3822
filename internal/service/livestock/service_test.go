package livestock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genapagie/ovinpro/internal/domain/models"
)

type fakeStore struct {
	breeders     map[string]models.Breeder
	sheep        map[string]models.Sheep
	prices       map[string]models.IngredientPrice
	health       []models.HealthRecord
	production   []models.ProductionRecord
	reproduction []models.ReproductionRecord
	nutrition    []models.NutritionRecord

	deletedBreeders []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		breeders: make(map[string]models.Breeder),
		sheep:    make(map[string]models.Sheep),
		prices:   make(map[string]models.IngredientPrice),
	}
}

func (f *fakeStore) GetBreeders(_ context.Context, userID string) ([]models.Breeder, error) {
	var out []models.Breeder
	for _, b := range f.breeders {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveBreeder(_ context.Context, b models.Breeder) error {
	f.breeders[b.ID] = b
	return nil
}

func (f *fakeStore) DeleteBreeder(_ context.Context, id string) error {
	delete(f.breeders, id)
	f.deletedBreeders = append(f.deletedBreeders, id)
	return nil
}

func (f *fakeStore) GetPrices(_ context.Context, breederID string) ([]models.IngredientPrice, error) {
	var out []models.IngredientPrice
	for _, p := range f.prices {
		if p.BreederID == breederID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) SavePrice(_ context.Context, p models.IngredientPrice) error {
	f.prices[p.ID] = p
	return nil
}

func (f *fakeStore) GetSheep(_ context.Context, userID, breederID string) ([]models.Sheep, error) {
	var out []models.Sheep
	for _, s := range f.sheep {
		if s.UserID == userID && (breederID == "" || s.BreederID == breederID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveSheep(_ context.Context, s models.Sheep) error {
	f.sheep[s.ID] = s
	return nil
}

func (f *fakeStore) DeleteSheep(_ context.Context, id string) error {
	delete(f.sheep, id)
	return nil
}

func (f *fakeStore) GetHealth(_ context.Context, _, _ string) ([]models.HealthRecord, error) {
	return f.health, nil
}

func (f *fakeStore) AddHealth(_ context.Context, rec models.HealthRecord) error {
	f.health = append(f.health, rec)
	return nil
}

func (f *fakeStore) GetProduction(_ context.Context, _, _ string) ([]models.ProductionRecord, error) {
	return f.production, nil
}

func (f *fakeStore) AddProduction(_ context.Context, rec models.ProductionRecord) error {
	f.production = append(f.production, rec)
	return nil
}

func (f *fakeStore) GetReproduction(_ context.Context, _, _ string) ([]models.ReproductionRecord, error) {
	return f.reproduction, nil
}

func (f *fakeStore) AddReproduction(_ context.Context, rec models.ReproductionRecord) error {
	f.reproduction = append(f.reproduction, rec)
	return nil
}

func (f *fakeStore) GetNutrition(_ context.Context, _, _ string) ([]models.NutritionRecord, error) {
	return f.nutrition, nil
}

func (f *fakeStore) AddNutrition(_ context.Context, rec models.NutritionRecord) error {
	f.nutrition = append(f.nutrition, rec)
	return nil
}

type recordingSync struct {
	appended []models.Sheep
}

func (r *recordingSync) AppendSheep(_ context.Context, s models.Sheep) error {
	r.appended = append(r.appended, s)
	return nil
}

func seed(t *testing.T, store *fakeStore) {
	t.Helper()
	require.NoError(t, store.SaveBreeder(context.Background(),
		models.Breeder{ID: "b-1", UserID: "u-1", Name: "Ferme El-Amel"}))
	require.NoError(t, store.SaveBreeder(context.Background(),
		models.Breeder{ID: "b-2", UserID: "u-2", Name: "Ferme Nord"}))
}

func TestSaveBreederAssignsIDAndOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil)

	saved, err := svc.SaveBreeder(context.Background(), "u-1", models.Breeder{Name: "Ferme El-Amel"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "u-1", saved.UserID)

	_, err = svc.SaveBreeder(context.Background(), "u-1", models.Breeder{})
	assert.Error(t, err, "breeder name is required")
}

func TestSaveSheepNormalizesAndSyncs(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	sync := &recordingSync{}
	svc := NewService(store, sync, nil)

	saved, err := svc.SaveSheep(context.Background(), "u-1", models.Sheep{
		BreederID:   "b-1",
		TagID:       "04-DZ-889",
		Breed:       models.BreedHamra,
		AgeType:     models.AgeDentition,
		Dentition:   models.Dentition2,
		AgeInMonths: 14, // stale toggle leftover, must be cleared
		State:       models.StateLactating,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "u-1", saved.UserID)
	assert.Zero(t, saved.AgeInMonths)
	assert.False(t, saved.CreatedAt.IsZero())
	require.Len(t, sync.appended, 1)
	assert.Equal(t, saved.ID, sync.appended[0].ID)
}

func TestSaveSheepRejectsForeignBreeder(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	svc := NewService(store, nil, nil)

	_, err := svc.SaveSheep(context.Background(), "u-1", models.Sheep{
		BreederID: "b-2", TagID: "04-DZ-890", Breed: models.BreedHamra,
		AgeType: models.AgeMonths, AgeInMonths: 10, State: models.StateGrowing,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.sheep)
}

func TestListSheepScopesByOwnerAndBreeder(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	require.NoError(t, store.SaveBreeder(context.Background(),
		models.Breeder{ID: "b-3", UserID: "u-1", Name: "Annexe"}))
	svc := NewService(store, nil, nil)

	for _, s := range []models.Sheep{
		{BreederID: "b-1", TagID: "A-1", Breed: models.BreedHamra, AgeType: models.AgeMonths, AgeInMonths: 12, State: models.StateEmpty},
		{BreederID: "b-3", TagID: "A-2", Breed: models.BreedRembi, AgeType: models.AgeMonths, AgeInMonths: 24, State: models.StateEmpty},
	} {
		_, err := svc.SaveSheep(context.Background(), "u-1", s)
		require.NoError(t, err)
	}

	all, err := svc.ListSheep(context.Background(), "u-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListSheep(context.Background(), "u-1", "b-1")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "A-1", scoped[0].TagID)

	other, err := svc.ListSheep(context.Background(), "u-2", "")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeleteSheepEnforcesOwnership(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	svc := NewService(store, nil, nil)

	saved, err := svc.SaveSheep(context.Background(), "u-1", models.Sheep{
		BreederID: "b-1", TagID: "A-1", Breed: models.BreedHamra,
		AgeType: models.AgeMonths, AgeInMonths: 12, State: models.StateEmpty,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteSheep(context.Background(), "u-2", saved.ID), ErrNotFound)
	require.Contains(t, store.sheep, saved.ID)

	require.NoError(t, svc.DeleteSheep(context.Background(), "u-1", saved.ID))
	assert.NotContains(t, store.sheep, saved.ID)
}

func TestDeleteBreederChecksOwnership(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	svc := NewService(store, nil, nil)

	assert.ErrorIs(t, svc.DeleteBreeder(context.Background(), "u-1", "b-2"), ErrNotFound)
	assert.Empty(t, store.deletedBreeders)

	require.NoError(t, svc.DeleteBreeder(context.Background(), "u-1", "b-1"))
	assert.Equal(t, []string{"b-1"}, store.deletedBreeders)
}

func TestUpsertPrice(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	svc := NewService(store, nil, nil)

	price, err := svc.UpsertPrice(context.Background(), "u-1", models.IngredientPrice{
		BreederID: "b-1", Ingredient: "orge", PricePerKg: 45,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, price.ID)
	assert.False(t, price.UpdatedAt.IsZero())

	// Same id again is an update, not a duplicate.
	price.PricePerKg = 48
	again, err := svc.UpsertPrice(context.Background(), "u-1", *price)
	require.NoError(t, err)
	assert.Equal(t, price.ID, again.ID)
	assert.Len(t, store.prices, 1)
	assert.Equal(t, float64(48), store.prices[price.ID].PricePerKg)

	_, err = svc.UpsertPrice(context.Background(), "u-1", models.IngredientPrice{
		BreederID: "b-2", Ingredient: "son", PricePerKg: 30,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddHealthFillsDefaults(t *testing.T) {
	store := newFakeStore()
	seed(t, store)
	svc := NewService(store, nil, nil)

	rec, err := svc.AddHealth(context.Background(), "u-1", models.HealthRecord{
		BreederID: "b-1", EventType: "vaccination", Product: "enterotoxémie",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "u-1", rec.UserID)
	assert.False(t, rec.Date.IsZero())
	assert.Len(t, store.health, 1)

	_, err = svc.AddHealth(context.Background(), "u-1", models.HealthRecord{BreederID: "b-2"})
	assert.ErrorIs(t, err, ErrNotFound)
}
