package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"YojanaSetu/internal/entity"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("chat session not found")

const sessionTTL = 2 * time.Hour

// ISessionStore keeps chat sessions transient: Redis with a sliding TTL,
// never the relational store. A session that expires simply restarts empty.
type ISessionStore interface {
	GetSession(ctx context.Context, sessionID string) (entity.ChatSession, error)
	SaveSession(ctx context.Context, session entity.ChatSession) error
	DeleteSession(ctx context.Context, sessionID string) error
}

type redisClient struct {
	client *redis.Client
}

func New() ISessionStore {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func sessionKey(sessionID string) string {
	return "chat_session:" + sessionID
}

func (r *redisClient) GetSession(ctx context.Context, sessionID string) (entity.ChatSession, error) {
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return entity.ChatSession{}, ErrSessionNotFound
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting session %s: %v", sessionID, err))
		return entity.ChatSession{}, err
	}

	var session entity.ChatSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		logrus.Error(fmt.Sprintf("Error decoding session %s: %v", sessionID, err))
		return entity.ChatSession{}, err
	}

	return session, nil
}

func (r *redisClient) SaveSession(ctx context.Context, session entity.ChatSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), payload, sessionTTL).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error saving session %s: %v", session.ID, err))
		return err
	}

	return nil
}

func (r *redisClient) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.client.Del(ctx, sessionKey(sessionID)).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting session %s: %v", sessionID, err))
		return err
	}
	return nil
}
