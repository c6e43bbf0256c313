// Package firestore stores registrations as documents in Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewClient initialises the Firebase app and returns its Firestore client. An empty
// credentialsFile falls back to application default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*fs.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}
	app, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firestore: %w", err)
	}
	return client, nil
}
