package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/camaradados/proptext"
)

const (
	fieldStatus  = "status"
	fieldText    = "text"
	fieldConfig  = "config"
	fieldCleaned = "cleaned"
)

func (a *Adapter) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return a.keyPrefix + hex.EncodeToString(sum[:])
}

func (a *Adapter) Get(ctx context.Context, url string) (proptext.CachedText, bool, error) {
	fields, err := a.client.HGetAll(ctx, a.key(url)).Result()
	if err != nil {
		return proptext.CachedText{}, false, err
	}
	if len(fields) == 0 {
		return proptext.CachedText{}, false, nil
	}

	entry, err := mapCachedText(fields)
	if err != nil {
		return proptext.CachedText{}, false, fmt.Errorf("cached text for %s: %w", url, err)
	}

	return entry, true, nil
}

func (a *Adapter) Set(ctx context.Context, url string, text proptext.CachedText) error {
	if !text.Status.Valid() {
		return fmt.Errorf("invalid status %q", text.Status)
	}

	key := a.key(url)
	_, err := a.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			fieldStatus:  string(text.Status),
			fieldText:    text.Text,
			fieldConfig:  text.Config,
			fieldCleaned: text.Cleaned.UTC().Format(time.RFC3339Nano),
		})
		if a.ttl > 0 {
			pipe.Expire(ctx, key, a.ttl)
		}
		return nil
	})

	return err
}

func mapCachedText(fields map[string]string) (proptext.CachedText, error) {
	status := proptext.TextStatus(fields[fieldStatus])
	if !status.Valid() {
		return proptext.CachedText{}, fmt.Errorf("invalid status %q", status)
	}

	cleaned, err := time.Parse(time.RFC3339Nano, fields[fieldCleaned])
	if err != nil {
		return proptext.CachedText{}, fmt.Errorf("invalid cleaned time: %w", err)
	}

	return proptext.CachedText{
		Status:  status,
		Text:    fields[fieldText],
		Config:  fields[fieldConfig],
		Cleaned: cleaned.UTC(),
	}, nil
}
