package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/portal-api/internal/document"
)

var ErrNotFound = document.ErrNotFound

// collection is the shared plumbing of the resource services: one document
// table plus, for resources the API creates, the sequence that numbers them.
type collection struct {
	docs *document.Adapter
	seq  *document.Sequence
}

func (c collection) list(ctx context.Context) ([]document.Record, error) {
	return c.docs.ScanAll(ctx)
}

func (c collection) get(ctx context.Context, id int64) (document.Record, error) {
	record, ok, err := c.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// createAttempts bounds how often create retries after the sequence handed
// out an id that is already taken.
const createAttempts = 3

func (c collection) create(ctx context.Context, fields map[string]any) (document.Record, error) {
	for attempt := 1; ; attempt++ {
		id, err := c.seq.Next(ctx)
		if err != nil {
			return nil, err
		}
		record := make(document.Record, len(fields)+1)
		for k, v := range fields {
			record[k] = v
		}
		record[document.FieldID] = id

		created, err := c.docs.CreateNew(ctx, record)
		if !errors.Is(err, document.ErrExists) {
			return created, err
		}
		if attempt == createAttempts {
			return nil, fmt.Errorf("failed to allocate id in %s: %w", c.docs.Table(), err)
		}
		if err := c.seq.Raise(ctx); err != nil {
			return nil, err
		}
	}
}

func (c collection) update(ctx context.Context, id int64, fields map[string]any) (document.Record, error) {
	return c.docs.Update(ctx, id, fields)
}

func (c collection) delete(ctx context.Context, id int64) error {
	deleted, err := c.docs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (c collection) first(ctx context.Context, index, key string, value any) (document.Record, error) {
	records, err := c.docs.QueryByIndex(ctx, index, key, value)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// localPart is the part of an email address before the @.
func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
