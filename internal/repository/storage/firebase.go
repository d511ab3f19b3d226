package storage

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/db"
	"google.golang.org/api/option"
)

var ErrDatabaseURLNotFound = errors.New("firebase database url is empty")

// NewFirebaseDatabase - initializes a Firebase app from a service account file and
// returns its Realtime Database client.
func NewFirebaseDatabase(ctx context.Context, credentialsPath, databaseURL string) (*db.Client, error) {
	if databaseURL == "" {
		return nil, ErrDatabaseURLNotFound
	}

	conf := &firebase.Config{
		DatabaseURL: databaseURL,
	}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting database client: %w", err)
	}

	return client, nil
}
