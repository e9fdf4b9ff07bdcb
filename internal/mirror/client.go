package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gymbeauty/internal/config"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Document is one row prepared for the mirror store.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Client wraps the Firestore connection used to mirror the local database.
// One client is created at startup and shared for the process lifetime.
type Client struct {
	fs        *firestore.Client
	projectID string
}

// NewClient builds the mirror client from either a service account file or
// the FIREBASE_* env triple.
func NewClient(ctx context.Context, cfg config.FirebaseConfig) (*Client, error) {
	opt, projectID, err := credentials(cfg)
	if err != nil {
		return nil, err
	}

	fs, err := firestore.NewClient(ctx, projectID, opt)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	log.Info().Str("project", projectID).Msg("mirror store client initialized")
	return &Client{fs: fs, projectID: projectID}, nil
}

func credentials(cfg config.FirebaseConfig) (option.ClientOption, string, error) {
	if cfg.ServiceAccountFile != "" {
		if data, err := os.ReadFile(cfg.ServiceAccountFile); err == nil {
			var sa struct {
				ProjectID string `json:"project_id"`
			}
			if err := json.Unmarshal(data, &sa); err != nil || sa.ProjectID == "" {
				return nil, "", fmt.Errorf("service account file %s has no project_id", cfg.ServiceAccountFile)
			}
			return option.WithCredentialsFile(cfg.ServiceAccountFile), sa.ProjectID, nil
		}
	}

	if missing := cfg.MissingFields(); len(missing) > 0 {
		return nil, "", fmt.Errorf("mirror store not configured, missing %s", strings.Join(missing, ", "))
	}

	sa := map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  normalizePrivateKey(cfg.PrivateKey),
	}
	data, err := json.Marshal(sa)
	if err != nil {
		return nil, "", err
	}
	return option.WithCredentialsJSON(data), cfg.ProjectID, nil
}

// normalizePrivateKey undoes the quoting and escaped newlines that survive
// .env files and process managers.
func normalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, `"`)
	return strings.ReplaceAll(key, `\n`, "\n")
}

// SetBatch writes all documents in one merge-set batch.
func (c *Client) SetBatch(ctx context.Context, collection string, docs []Document) error {
	batch := c.fs.Batch()
	for _, d := range docs {
		batch.Set(c.fs.Collection(collection).Doc(d.ID), d.Data, firestore.MergeAll)
	}
	_, err := batch.Commit(ctx)
	return err
}

// Set writes a single document with merge semantics.
func (c *Client) Set(ctx context.Context, collection string, doc Document) error {
	_, err := c.fs.Collection(collection).Doc(doc.ID).Set(ctx, doc.Data, firestore.MergeAll)
	return err
}

// Delete removes a single document. Deleting a missing document is not an
// error.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	_, err := c.fs.Collection(collection).Doc(id).Delete(ctx)
	return err
}

// Count returns the server-side document count of a collection.
func (c *Client) Count(ctx context.Context, collection string) (int64, error) {
	agg := c.fs.Collection(collection).NewAggregationQuery().WithCount("count")
	res, err := agg.Get(ctx)
	if err != nil {
		return 0, err
	}
	value, ok := res["count"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count aggregation result %T", res["count"])
	}
	return value.GetIntegerValue(), nil
}

// Ping verifies connectivity by writing and removing a probe document.
func (c *Client) Ping(ctx context.Context) error {
	doc := c.fs.Collection("_connection_test").Doc("probe")
	if _, err := doc.Set(ctx, map[string]interface{}{"at": time.Now().UTC()}); err != nil {
		return err
	}
	_, err := doc.Delete(ctx)
	return err
}

// ProjectID reports which Firestore project the client talks to.
func (c *Client) ProjectID() string {
	return c.projectID
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.fs.Close()
}
