package config

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretFetcher returns the payload of a Secret Manager version.
type SecretFetcher func(ctx context.Context, name string) (string, error)

var fetchSecret SecretFetcher = accessSecret

// SecretName expands a bare secret id to a full version resource name in
// project. Full resource names are returned unchanged apart from a missing
// version, which defaults to latest.
func SecretName(project, name string) string {
	if !strings.HasPrefix(name, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s", project, name)
	}
	if !strings.Contains(name, "/versions/") {
		name += secretVersionLatest
	}
	return name
}

func accessSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}

	return strings.TrimSpace(string(resp.GetPayload().GetData())), nil
}
