package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"declex/config"
)

// CurrentSchemaVersion is the current schema version.
// Increment this when making breaking changes to the storage format.
const CurrentSchemaVersion = 1

var (
	keySchemaVersion = []byte("schema_version")
	keyConfigHash    = []byte("config_hash")
)

// SchemaInfo stores schema version and configuration hash.
type SchemaInfo struct {
	Version    int    `json:"version"`
	ConfigHash string `json:"config_hash"`
}

// GetSchemaInfo retrieves the current schema info from the database.
func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	var info SchemaInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}

		versionData := b.Get(keySchemaVersion)
		if versionData != nil {
			if err := json.Unmarshal(versionData, &info.Version); err != nil {
				info.Version = 1
			}
		}

		hashData := b.Get(keyConfigHash)
		if hashData != nil {
			info.ConfigHash = string(hashData)
		}

		return nil
	})
	return &info, err
}

// SetSchemaInfo stores the schema info in the database.
func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketMeta)

		versionData, err := json.Marshal(info.Version)
		if err != nil {
			return err
		}
		if err := b.Put(keySchemaVersion, versionData); err != nil {
			return err
		}

		return b.Put(keyConfigHash, []byte(info.ConfigHash))
	})
}

// ComputeConfigHash computes a hash of extraction-relevant configuration.
// A change means existing trees were parsed under different rules and the
// index should be rebuilt.
func ComputeConfigHash(cfg *config.Config) string {
	relevant := struct {
		DeclMacros     []string `json:"decl_macros"`
		BodyMacros     []string `json:"body_macros"`
		MaxDepth       int      `json:"max_depth"`
		AttachComments bool     `json:"attach_comments"`
	}{
		DeclMacros:     cfg.Macros.Declaration,
		BodyMacros:     cfg.Macros.Body,
		MaxDepth:       cfg.Parser.MaxDepth,
		AttachComments: cfg.Parser.AttachComments,
	}

	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// NeedsRebuild checks if the index needs a full rebuild: either the schema
// version moved or the extraction configuration changed under it.
func (s *BoltStore) NeedsRebuild(cfg *config.Config) (bool, string, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return false, "", fmt.Errorf("failed to get schema info: %w", err)
	}

	if info.Version != 0 && info.Version != CurrentSchemaVersion {
		return true, fmt.Sprintf("schema version mismatch (db v%d, tool v%d)", info.Version, CurrentSchemaVersion), nil
	}

	newHash := ComputeConfigHash(cfg)
	if info.ConfigHash != "" && info.ConfigHash != newHash {
		return true, "extraction configuration changed", nil
	}

	return false, "", nil
}

// MarkCurrent records the tool's schema version and config hash.
func (s *BoltStore) MarkCurrent(cfg *config.Config) error {
	return s.SetSchemaInfo(&SchemaInfo{
		Version:    CurrentSchemaVersion,
		ConfigHash: ComputeConfigHash(cfg),
	})
}

// Clear removes all indexed data, keeping the schema metadata.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketTrees, bucketSymbols, bucketDocSymbols, bucketDiags}
		for _, name := range buckets {
			b := tx.Bucket(name)
			if b == nil {
				continue
			}

			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
