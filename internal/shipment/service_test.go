package shipment

import (
	"context"
	"testing"
	"time"

	"freight-shipment-api-server/internal/models"
	"freight-shipment-api-server/internal/shipment/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userA = models.MiniUser{ID: "user-a", Fullname: "User A"}
	userB = models.MiniUser{ID: "user-b", Fullname: "User B"}
	admin = models.MiniUser{ID: "user-admin", Fullname: "Admin", IsAdmin: true}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(store.NewMemoryStore())
}

func seedShipments(t *testing.T, service *Service, count int) []models.Shipment {
	t.Helper()
	ctx := context.Background()

	var seeded []models.Shipment
	for i := 0; i < count; i++ {
		added, err := service.Add(ctx, models.Shipment{
			Vendor: "Vendor " + string(rune('A'+i)),
			Speed:  float64(i + 1),
		}, userA)
		require.NoError(t, err)
		seeded = append(seeded, added)
	}
	return seeded
}

func TestQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("descending speed sort is non-increasing", func(t *testing.T) {
		service := newTestService(t)
		seedShipments(t, service, 5)

		results, err := service.Query(ctx, models.ShipmentFilter{SortField: "speed", SortDir: -1})
		require.NoError(t, err)
		require.Len(t, results, 5)
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].Speed, results[i].Speed)
		}
	})

	t.Run("page index skips pageIdx*PageSize records", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 7)

		pageIdx := 1
		results, err := service.Query(ctx, models.ShipmentFilter{PageIdx: &pageIdx})
		require.NoError(t, err)
		require.Len(t, results, PageSize)
		assert.Equal(t, seeded[3].ID, results[0].ID)
		assert.Equal(t, seeded[5].ID, results[2].ID)
	})

	t.Run("absent page index returns everything", func(t *testing.T) {
		service := newTestService(t)
		seedShipments(t, service, 7)

		results, err := service.Query(ctx, models.ShipmentFilter{})
		require.NoError(t, err)
		assert.Len(t, results, 7)
	})

	t.Run("txt and minSpeed narrow the result set", func(t *testing.T) {
		service := newTestService(t)
		seedShipments(t, service, 5)

		results, err := service.Query(ctx, models.ShipmentFilter{Txt: "vendor c"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Vendor C", results[0].Vendor)

		results, err = service.Query(ctx, models.ShipmentFilter{MinSpeed: 4})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)
	seeded := seedShipments(t, service, 1)

	t.Run("createdAt comes from the id timestamp", func(t *testing.T) {
		got, err := service.GetByID(ctx, seeded[0].ID.Hex())
		require.NoError(t, err)
		assert.True(t, got.CreatedAt.Equal(got.ID.Timestamp()))
		assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := service.GetByID(ctx, "not-an-object-id")
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("well-formed but unknown id", func(t *testing.T) {
		_, err := service.GetByID(ctx, "65f000000000000000000000")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	added, err := service.Add(ctx, models.Shipment{Vendor: "Acme", Speed: 3, Owner: userB}, userA)
	require.NoError(t, err)

	assert.False(t, added.ID.IsZero())
	// Owner always comes from the requester, never the payload.
	assert.Equal(t, userA, added.Owner)

	stored, err := service.GetByID(ctx, added.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, userA, stored.Owner)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists only vendor and speed", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		toUpdate := seeded[0]
		toUpdate.Vendor = "X"
		toUpdate.Speed = 5
		toUpdate.Owner = userB
		toUpdate.Company = "Acme Corp"

		echoed, err := service.Update(ctx, toUpdate, userA)
		require.NoError(t, err)
		// The response echoes the input record as given.
		assert.Equal(t, toUpdate, echoed)

		stored, err := service.GetByID(ctx, seeded[0].ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "X", stored.Vendor)
		assert.Equal(t, float64(5), stored.Speed)
		assert.Equal(t, userA, stored.Owner)
		assert.Empty(t, stored.Company)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		_, err := service.Update(ctx, seeded[0], userB)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin may update anything", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		_, err := service.Update(ctx, seeded[0], admin)
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		service := newTestService(t)
		ghost := models.Shipment{}
		var err error
		ghost, err = service.Add(ctx, ghost, userA)
		require.NoError(t, err)
		_, err = service.Remove(ctx, ghost.ID.Hex(), userA)
		require.NoError(t, err)

		_, err = service.Update(ctx, ghost, userA)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("owner removes own shipment", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		removedID, err := service.Remove(ctx, seeded[0].ID.Hex(), userA)
		require.NoError(t, err)
		assert.Equal(t, seeded[0].ID.Hex(), removedID)

		_, err = service.GetByID(ctx, seeded[0].ID.Hex())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		_, err := service.Remove(ctx, seeded[0].ID.Hex(), userB)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing shipment looks the same as someone else's", func(t *testing.T) {
		service := newTestService(t)

		_, err := service.Remove(ctx, "65f000000000000000000000", userB)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin bypasses ownership", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		_, err := service.Remove(ctx, seeded[0].ID.Hex(), admin)
		assert.NoError(t, err)
	})
}

func TestShipmentMsgs(t *testing.T) {
	ctx := context.Background()

	t.Run("add and remove round trip", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)
		id := seeded[0].ID.Hex()

		before, err := service.GetByID(ctx, id)
		require.NoError(t, err)

		msg, err := service.AddMsg(ctx, id, "hi", userA)
		require.NoError(t, err)
		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, "hi", msg.Txt)
		assert.Equal(t, userA, msg.By)

		after, err := service.GetByID(ctx, id)
		require.NoError(t, err)
		require.Len(t, after.Msgs, len(before.Msgs)+1)

		removedID, err := service.RemoveMsg(ctx, id, msg.ID)
		require.NoError(t, err)
		assert.Equal(t, msg.ID, removedID)

		final, err := service.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before.Msgs, final.Msgs)
	})

	t.Run("removal keeps remaining order", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)
		id := seeded[0].ID.Hex()

		first, err := service.AddMsg(ctx, id, "first", userA)
		require.NoError(t, err)
		second, err := service.AddMsg(ctx, id, "second", userB)
		require.NoError(t, err)
		third, err := service.AddMsg(ctx, id, "third", userA)
		require.NoError(t, err)

		_, err = service.RemoveMsg(ctx, id, second.ID)
		require.NoError(t, err)

		got, err := service.GetByID(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Msgs, 2)
		assert.Equal(t, first.ID, got.Msgs[0].ID)
		assert.Equal(t, third.ID, got.Msgs[1].ID)
	})

	t.Run("removing an absent msg id succeeds", func(t *testing.T) {
		service := newTestService(t)
		seeded := seedShipments(t, service, 1)

		removedID, err := service.RemoveMsg(ctx, seeded[0].ID.Hex(), "no-such-msg")
		require.NoError(t, err)
		assert.Equal(t, "no-such-msg", removedID)
	})

	t.Run("adding to an unknown shipment", func(t *testing.T) {
		service := newTestService(t)

		_, err := service.AddMsg(ctx, "65f000000000000000000000", "hi", userA)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
