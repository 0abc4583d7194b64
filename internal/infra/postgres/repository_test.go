package postgres

import (
	"context"
	"testing"
	"time"

	"haircare-match-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"haircare-match-service/internal/infra/postgres/migrations"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a connected GORM DB
//
// Prerequisites:
//   - Docker must be running
//   - Run: docker-compose up postgres
//
// OR
//   - Skip tests with: go test -short
func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	pgContainer, err := postgresContainer.Run(ctx,
		"postgres:16-alpine",
		postgresContainer.WithDatabase("testdb"),
		postgresContainer.WithUsername("testuser"),
		postgresContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf(`Failed to start PostgreSQL container: %v

Docker Prerequisites:
1. Ensure Docker is running
2. OR use existing postgres: docker-compose up postgres
3. OR skip integration tests: go test -short

`, err)
	}

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Connect to database
	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: nil, // Silent logger for tests
	})
	require.NoError(t, err, "Failed to connect to test database")

	// Run migrations
	err = migrations.Run(db)
	require.NoError(t, err, "Failed to run migrations")

	// Cleanup function
	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

// createTestProduct is a factory function for creating test products
func createTestProduct(name string) *domain.Product {
	return &domain.Product{
		Name:        name,
		Brand:       "Test Brand",
		Category:    domain.CategoryShampoo,
		Ingredients: []string{"Water", "Shea Butter", "Panthenol"},
		Price:       12.99,
	}
}

func testMatchScore(entityID string, total float64) *domain.MatchScore {
	return &domain.MatchScore{
		EntityID:   entityID,
		EntityKind: domain.KindProduct,
		TotalScore: total,
		Breakdown: map[string]float64{
			domain.BreakdownIngredients: total,
			domain.BreakdownEngagement:  domain.NeutralScore,
		},
		MatchReasons: []string{"Contains shea butter (good for curly hair)"},
		DataQuality:  domain.QualityOK,
		DisplayName:  "Product " + entityID,
		ScoredAt:     time.Now().UTC(),
	}
}

// TestProductUpsert_InsertAndUpdate verifies product upsert round-trips and
// lowercases ingredients on write.
func TestProductUpsert_InsertAndUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(db)
	ctx := context.Background()

	product := createTestProduct("Moisture Shampoo")
	err := repo.Upsert(ctx, product)
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID, "ID should be generated")
	assert.False(t, product.CreatedAt.IsZero(), "CreatedAt should be set")

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Moisture Shampoo", got.Name)
	assert.Equal(t, []string{"water", "shea butter", "panthenol"}, got.Ingredients)

	// Update
	product.Name = "Moisture Shampoo V2"
	product.Ingredients = []string{"Water", "Aloe Vera"}
	err = repo.Upsert(ctx, product)
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Moisture Shampoo V2", got.Name)
	assert.Equal(t, []string{"water", "aloe vera"}, got.Ingredients)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// TestProductGetByID_NotFound verifies a missing product returns (nil, nil).
func TestProductGetByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewProductRepository(db)

	got, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestRoutineUpsert_StepsReplaced verifies routine steps are replaced
// wholesale and come back ordered by position.
func TestRoutineUpsert_StepsReplaced(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	products := NewProductRepository(db)
	routines := NewRoutineRepository(db)
	ctx := context.Background()

	shampoo := createTestProduct("Shampoo")
	require.NoError(t, products.Upsert(ctx, shampoo))

	routine := &domain.Routine{
		Name:    "Wash Day",
		OwnerID: "user-1",
		Public:  true,
		Steps: []domain.RoutineStep{
			{Position: 2, Category: domain.CategoryConditioner, Frequency: domain.Frequency{Interval: 1, Unit: domain.FrequencyWeek}},
			{Position: 1, Category: domain.CategoryShampoo, ProductID: shampoo.ID, Frequency: domain.Frequency{Interval: 1, Unit: domain.FrequencyWeek}},
		},
	}
	require.NoError(t, routines.Upsert(ctx, routine))
	assert.NotEmpty(t, routine.ID)

	got, err := routines.GetByID(ctx, routine.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, 1, got.Steps[0].Position, "steps should be ordered by position")
	assert.Equal(t, domain.CategoryShampoo, got.Steps[0].Category)

	// Replace steps with a single different one
	routine.Steps = []domain.RoutineStep{
		{Position: 1, Category: domain.CategoryOil, Frequency: domain.Frequency{Interval: 2, Unit: domain.FrequencyWeek}},
	}
	require.NoError(t, routines.Upsert(ctx, routine))

	got, err = routines.GetByID(ctx, routine.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Steps, 1)
	assert.Equal(t, domain.CategoryOil, got.Steps[0].Category)
	assert.Equal(t, 2, got.Steps[0].Frequency.Interval)

	public, err := routines.ListPublic(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

// TestInteractionRecordAndList verifies the append-only event log.
func TestInteractionRecordAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	// Use the repository through its domain port, the way the service
	// consumes it.
	var repo domain.InteractionRepository = NewInteractionRepository(db)
	ctx := context.Background()

	first := &domain.InteractionEvent{
		UserID:      "user-1",
		ProfileCode: "CU-H-M-F-N",
		EntityKind:  domain.KindProduct,
		EntityID:    "product-1",
		Type:        domain.InteractionView,
	}
	require.NoError(t, repo.Record(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &domain.InteractionEvent{
		UserID:      "user-1",
		ProfileCode: "CU-H-M-F-N",
		EntityKind:  domain.KindProduct,
		EntityID:    "product-1",
		Type:        domain.InteractionLike,
	}
	require.NoError(t, repo.Record(ctx, second))

	other := &domain.InteractionEvent{
		UserID:     "user-2",
		EntityKind: domain.KindRoutine,
		EntityID:   "routine-1",
		Type:       domain.InteractionSave,
	}
	require.NoError(t, repo.Record(ctx, other))

	events, err := repo.ListByEntity(ctx, domain.KindProduct, "product-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.InteractionView, events[0].Type)
	assert.Equal(t, domain.InteractionLike, events[1].Type)
	assert.Equal(t, "CU-H-M-F-N", events[0].ProfileCode)
}

// TestScoreReplaceForUser_GenerationSwap verifies a replace fully supersedes
// the previous score set and readers never mix generations.
func TestScoreReplaceForUser_GenerationSwap(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScoreRepository(db, zap.NewNop())
	ctx := context.Background()

	// No generation yet
	scores, err := repo.ListForUser(ctx, "user-1", domain.KindProduct)
	require.NoError(t, err)
	assert.Empty(t, scores)

	first := []*domain.MatchScore{
		testMatchScore("a", 0.9),
		testMatchScore("b", 0.7),
		testMatchScore("c", 0.5),
	}
	require.NoError(t, repo.ReplaceForUser(ctx, "user-1", domain.KindProduct, first))

	scores, err = repo.ListForUser(ctx, "user-1", domain.KindProduct)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "a", scores[0].EntityID, "best match first")
	assert.InDelta(t, 0.9, scores[0].TotalScore, 1e-5)
	assert.Equal(t, map[string]float64{
		domain.BreakdownIngredients: 0.9,
		domain.BreakdownEngagement:  domain.NeutralScore,
	}, scores[0].Breakdown)

	// Replace with a smaller set
	second := []*domain.MatchScore{testMatchScore("d", 0.8)}
	require.NoError(t, repo.ReplaceForUser(ctx, "user-1", domain.KindProduct, second))

	scores, err = repo.ListForUser(ctx, "user-1", domain.KindProduct)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "d", scores[0].EntityID)

	users, err := repo.ListScoredUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, users)
}

// TestScoreUpsertOne verifies a single-entity refresh lands in the current
// generation and replaces the previous row for that entity.
func TestScoreUpsertOne(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScoreRepository(db, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.ReplaceForUser(ctx, "user-1", domain.KindProduct, []*domain.MatchScore{
		testMatchScore("a", 0.9),
		testMatchScore("b", 0.4),
	}))

	refreshed := testMatchScore("b", 0.95)
	require.NoError(t, repo.UpsertOne(ctx, "user-1", refreshed))

	scores, err := repo.ListForUser(ctx, "user-1", domain.KindProduct)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "b", scores[0].EntityID, "refreshed score should re-rank")
	assert.InDelta(t, 0.95, scores[0].TotalScore, 1e-5)
}

// TestScoreUpsertOne_SeedsGeneration verifies upserting for a user with no
// published set creates a readable single-row set.
func TestScoreUpsertOne_SeedsGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewScoreRepository(db, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.UpsertOne(ctx, "fresh-user", testMatchScore("a", 0.6)))

	scores, err := repo.ListForUser(ctx, "fresh-user", domain.KindProduct)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "a", scores[0].EntityID)
}
