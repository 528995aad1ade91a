package repository

import (
	"context"
	"fmt"
	"testing"

	"cafeapi/config"
	"cafeapi/database"
	"cafeapi/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *CafeRepository {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, DSN: ":memory:"}, false, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return NewCafeRepository(db)
}

func strPtr(s string) *string { return &s }

func newCafe(name, location string) model.Cafe {
	return model.Cafe{
		Name:         name,
		MapURL:       "https://maps.example.com/" + name,
		ImgURL:       "https://img.example.com/" + name + ".jpg",
		Location:     location,
		Seats:        "20-30",
		HasToilet:    true,
		HasWifi:      true,
		HasSockets:   false,
		CanTakeCalls: true,
		CoffeePrice:  strPtr("£2.80"),
	}
}

func TestCreateThenGetByID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created, err := repo.Create(ctx, newCafe("Joe's", "Downtown"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.Equal(t, created.ToRepresentation(), found.ToRepresentation())
}

func TestCreateWithoutPrice(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	cafe := newCafe("No Price", "Shoreditch")
	cafe.CoffeePrice = nil
	created, err := repo.Create(ctx, cafe)
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CoffeePrice)
}

func TestCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Create(ctx, newCafe("Joe's", "Downtown"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newCafe("Joe's", "Uptown"))
	assert.ErrorIs(t, err, ErrConflict)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Downtown", all[0].Location)
}

func TestCreateMissingField(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	cafe := newCafe("Joe's", "Downtown")
	cafe.MapURL = ""
	_, err := repo.Create(ctx, cafe)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "map_url")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByLocation(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	locations := []string{"Downtown", "Uptown", "Downtown", "downtown"}
	for i, loc := range locations {
		_, err := repo.Create(ctx, newCafe(fmt.Sprintf("cafe-%d", i), loc))
		require.NoError(t, err)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	var want []model.Cafe
	for _, c := range all {
		if c.Location == "Downtown" {
			want = append(want, c)
		}
	}

	got, err := repo.FindByLocation(ctx, "Downtown")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Len(t, got, 2)

	none, err := repo.FindByLocation(ctx, "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdatePrice(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created, err := repo.Create(ctx, newCafe("Joe's", "Downtown"))
	require.NoError(t, err)

	updated, err := repo.UpdatePrice(ctx, created.ID, "£3.10")
	require.NoError(t, err)
	require.NotNil(t, updated.CoffeePrice)
	assert.Equal(t, "£3.10", *updated.CoffeePrice)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	want := created
	want.CoffeePrice = strPtr("£3.10")
	assert.Equal(t, want, found)
}

func TestUpdatePriceNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.UpdatePrice(context.Background(), 99, "£1.00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRandom(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Random(ctx)
	require.ErrorIs(t, err, ErrEmptyCollection)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, newCafe(fmt.Sprintf("cafe-%d", i), "Downtown"))
		require.NoError(t, err)
	}
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		cafe, err := repo.Random(ctx)
		require.NoError(t, err)
		assert.Contains(t, all, cafe)
	}

	repo.pick = func(n int) int { return n - 1 }
	last, err := repo.Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, all[len(all)-1], last)
}
