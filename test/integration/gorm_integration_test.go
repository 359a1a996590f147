package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"techjays-chat-be/internal/constant"
	"techjays-chat-be/internal/entity"
	"techjays-chat-be/internal/repository/specification"
	"techjays-chat-be/internal/repository/unitofwork"
	"techjays-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Chat Message Round Trip", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		user := &entity.User{
			Id:        userId,
			Email:     "test-integration-" + uuid.New().String() + "@example.com",
			FullName:  "Integration Test User",
			Role:      entity.UserRoleUser,
			Status:    entity.UserStatusActive,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		repo := uow.ChatMessageRepository()
		rows := []*entity.ChatMessage{
			{Id: uuid.New(), UserId: userId, SessionLabel: "Chat 1", Message: constant.SessionGreeting, Sender: constant.ChatSenderBot, CreatedAt: time.Now()},
			{Id: uuid.New(), UserId: userId, SessionLabel: "Chat 1", Message: "hello", Sender: constant.ChatSenderUser, CreatedAt: time.Now().Add(time.Second)},
		}
		for _, row := range rows {
			require.NoError(t, repo.Create(ctx, row))
		}

		labels, err := repo.DistinctSessionLabels(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chat 1"}, labels)

		require.NoError(t, repo.RetargetSessionLabel(ctx, userId, "Chat 1", "Greetings"))

		labels, err = repo.DistinctSessionLabels(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, []string{"Greetings"}, labels)

		latest, err := repo.LatestSessionLabel(ctx, userId)
		require.NoError(t, err)
		assert.Equal(t, "Greetings", latest)

		transcript, err := repo.FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.BySessionLabel{Label: "Greetings"},
			specification.OrderBy{Field: "created_at"},
		)
		require.NoError(t, err)
		require.Len(t, transcript, 2)
		assert.Equal(t, constant.ChatSenderBot, transcript[0].Sender)

		deleted, err := repo.DeleteBySessionLabel(ctx, userId, "Greetings")
		require.NoError(t, err)
		assert.EqualValues(t, 2, deleted)

		// Cleanup
		assert.NoError(t, uow.UserRepository().Delete(ctx, userId))
	})
}
