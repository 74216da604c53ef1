// Package cds wraps the CDS blueprint processor API: data dictionary
// upload and CBA blueprint enrichment and publication.
package cds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/onap"
)

// Client talks to the CDS blueprint processor.
type Client struct {
	rest   *onap.Client
	base   string
	logger *zap.Logger
}

// NewClient creates a CDS client from settings.
func NewClient(cfg *config.Settings, opts ...onap.Option) *Client {
	options := append([]onap.Option{onap.WithHeaders(onap.CDSHeaders())}, opts...)
	return &Client{
		rest:   onap.NewClient("CDS", options...),
		base:   cfg.CDSURL,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used by the client.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

// DataDictionary is one resource definition entry of the CDS dictionary.
type DataDictionary struct {
	Name       string         `json:"name"`
	Tags       string         `json:"tags"`
	DataType   string         `json:"data_type"`
	Definition map[string]any `json:"definition"`
}

// DataDictionarySet is a batch of data dictionaries, usually loaded
// from one JSON file.
type DataDictionarySet struct {
	Dictionaries []DataDictionary `json:"dd"`
}

// LoadDataDictionarySet reads a dictionary set from a JSON file.
func LoadDataDictionarySet(path string) (*DataDictionarySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data dictionary set: %w", err)
	}
	set := &DataDictionarySet{}
	if err := json.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("decoding data dictionary set: %w", err)
	}
	return set, nil
}

// UploadDataDictionary registers one dictionary entry.
func (c *Client) UploadDataDictionary(ctx context.Context, dictionary DataDictionary) error {
	return c.rest.DoJSON(ctx, &onap.Request{
		Method: "POST",
		Action: fmt.Sprintf("upload data dictionary %s", dictionary.Name),
		URL:    c.base + "/api/v1/dictionary",
		JSON:   dictionary,
	}, nil)
}

// UploadDataDictionarySet registers every entry of the set.
func (c *Client) UploadDataDictionarySet(ctx context.Context, set *DataDictionarySet) error {
	for _, dictionary := range set.Dictionaries {
		if err := c.UploadDataDictionary(ctx, dictionary); err != nil {
			return err
		}
	}
	c.logger.Info("data dictionary set uploaded", zap.Int("entries", len(set.Dictionaries)))
	return nil
}

// Blueprint is a CBA package.
type Blueprint struct {
	Content []byte
}

// LoadBlueprint reads a CBA zip from a file.
func LoadBlueprint(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blueprint: %w", err)
	}
	return &Blueprint{Content: data}, nil
}

// Save writes the CBA zip to a file.
func (b *Blueprint) Save(path string) error {
	if err := os.WriteFile(path, b.Content, 0o644); err != nil {
		return fmt.Errorf("writing blueprint: %w", err)
	}
	return nil
}

func (c *Client) blueprintUpload(ctx context.Context, action, endpoint string, content []byte) ([]byte, error) {
	body, contentType, err := onap.MultipartUpload("file", "cba.zip", content)
	if err != nil {
		return nil, err
	}
	return c.rest.Do(ctx, &onap.Request{
		Method: "POST",
		Action: action,
		URL:    c.base + "/api/v1/blueprint-model/" + endpoint,
		Headers: map[string]string{
			"Content-Type": contentType,
			"Accept":       "",
		},
		Body: body,
	})
}

// Enrich runs CBA enrichment and returns the enriched package.
func (b *Blueprint) Enrich(ctx context.Context, c *Client) (*Blueprint, error) {
	data, err := c.blueprintUpload(ctx, "enrich blueprint", "enrich", b.Content)
	if err != nil {
		return nil, err
	}
	c.logger.Info("blueprint enriched", zap.Int("size", len(data)))
	return &Blueprint{Content: data}, nil
}

// Publish deploys the CBA package to the blueprint processor.
func (b *Blueprint) Publish(ctx context.Context, c *Client) error {
	_, err := c.blueprintUpload(ctx, "publish blueprint", "publish", b.Content)
	if err != nil {
		return err
	}
	c.logger.Info("blueprint published")
	return nil
}
