package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/levon-fischer/FantasyFieldhouse/containers"
	"github.com/levon-fischer/FantasyFieldhouse/db"
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	mock := clock.NewMock()
	// Fixture seasons run 2022-2024; pin the clock the year after so every
	// season reads as finished and the user-leagues fixture year matches.
	mock.Set(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))

	db, err := db.New(context.Background(), container.ConnectionString(), mock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     mock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
