package auth

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier checks ID tokens issued by Firebase Authentication.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates the Firebase app and its auth client.
// credentialsPath may be empty to use application default credentials.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsPath string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		if _, err := os.Stat(credentialsPath); err != nil {
			return nil, fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
		}
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

// Verify validates idToken and returns the Firebase uid and e-mail.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (uid, email string, err error) {
	if v == nil || v.client == nil {
		return "", "", fmt.Errorf("firebase auth not initialized")
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to verify ID token: %w", err)
	}

	if e, ok := token.Claims["email"].(string); ok {
		email = e
	}
	return token.UID, email, nil
}
