package resorts

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryResortRepo struct {
	resorts   map[uuid.UUID]Resort
	listCalls int
}

func newMemoryResortRepo() *memoryResortRepo {
	return &memoryResortRepo{resorts: make(map[uuid.UUID]Resort)}
}

func (r *memoryResortRepo) List(ctx context.Context, filter ListFilter) ([]Resort, error) {
	r.listCalls++
	var out []Resort
	for _, resort := range r.resorts {
		if !resort.IsActive {
			continue
		}
		if filter.MinRate > 0 && resort.PricePerNight < filter.MinRate {
			continue
		}
		if filter.MaxRate > 0 && resort.PricePerNight > filter.MaxRate {
			continue
		}
		out = append(out, resort)
	}
	return out, nil
}

func (r *memoryResortRepo) FindByID(ctx context.Context, id uuid.UUID) (Resort, error) {
	resort, ok := r.resorts[id]
	if !ok {
		return Resort{}, ErrNotFound
	}
	return resort, nil
}

func (r *memoryResortRepo) Create(ctx context.Context, input ResortInput) (Resort, error) {
	resort := Resort{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Location:      input.Location,
		PricePerNight: input.PricePerNight,
		Amenities:     input.Amenities,
		MaxGuests:     input.MaxGuests,
		Rooms:         input.Rooms,
		Image:         input.Image,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	r.resorts[resort.ID] = resort
	return resort, nil
}

func (r *memoryResortRepo) Update(ctx context.Context, id uuid.UUID, input ResortInput) (Resort, error) {
	resort, ok := r.resorts[id]
	if !ok {
		return Resort{}, ErrNotFound
	}
	resort.Name = input.Name
	resort.PricePerNight = input.PricePerNight
	resort.MaxGuests = input.MaxGuests
	resort.UpdatedAt = time.Now().UTC()
	r.resorts[id] = resort
	return resort, nil
}

func (r *memoryResortRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	resort, ok := r.resorts[id]
	if !ok {
		return ErrNotFound
	}
	resort.IsActive = false
	r.resorts[id] = resort
	return nil
}

func newCachedService(t *testing.T, repo RepositoryPort) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(repo, NewCache(client, time.Minute), nil)
}

func seedResort(repo *memoryResortRepo, name string, rate float64) Resort {
	resort, _ := repo.Create(context.Background(), ResortInput{
		Name:          name,
		Location:      "Bali",
		PricePerNight: rate,
		MaxGuests:     4,
		Rooms:         20,
	})
	return resort
}

func TestListServesFromCache(t *testing.T) {
	repo := newMemoryResortRepo()
	seedResort(repo, "Coral Cove", 120)
	svc := newCachedService(t, repo)

	first, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, repo.listCalls)

	second, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.listCalls)
}

func TestListCacheKeyedByFilter(t *testing.T) {
	repo := newMemoryResortRepo()
	seedResort(repo, "Coral Cove", 120)
	seedResort(repo, "Alpine Lodge", 300)
	svc := newCachedService(t, repo)

	all, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	cheap, err := svc.List(context.Background(), ListFilter{MaxRate: 200})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	require.Equal(t, "Coral Cove", cheap[0].Name)
	require.Equal(t, 2, repo.listCalls)
}

func TestMutationsInvalidateListing(t *testing.T) {
	repo := newMemoryResortRepo()
	seedResort(repo, "Coral Cove", 120)
	svc := newCachedService(t, repo)

	first, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)

	created, err := svc.Create(context.Background(), ResortInput{
		Name: "Mangrove Bay", Location: "Lombok", PricePerNight: 95, MaxGuests: 2, Rooms: 8,
	})
	require.NoError(t, err)

	after, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, after, 2)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	final, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, final, 1)
}

func TestListWorksWithoutCache(t *testing.T) {
	repo := newMemoryResortRepo()
	seedResort(repo, "Coral Cove", 120)
	svc := NewService(repo, nil, nil)

	out, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 1, repo.listCalls)
}

func TestDeleteKeepsResortReadable(t *testing.T) {
	repo := newMemoryResortRepo()
	resort := seedResort(repo, "Coral Cove", 120)
	svc := NewService(repo, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), resort.ID))

	got, err := svc.Get(context.Background(), resort.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	listed, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Empty(t, listed)
}

func TestFilterKeyNormalizesInput(t *testing.T) {
	a := filterKey(ListFilter{Location: "Bali", Amenities: []string{"Pool", "Spa"}})
	b := filterKey(ListFilter{Location: "bali", Amenities: []string{"spa", "pool"}})
	require.Equal(t, a, b)

	c := filterKey(ListFilter{Location: "bali", Amenities: []string{"spa"}, MinRate: 50})
	require.NotEqual(t, a, c)
}
