package service

import (
	"context"
	"fmt"

	"github.com/matt-steen/todo-list/pkg/db"
)

// ensureTags resolves a batch of tag names to tag ids inside the caller's
// transaction, creating any that don't exist yet, and returns a name→id map.
// Existing names are never duplicated.
//
// A concurrent import can create one of the missing names first; the unique
// constraint on tag.name turns that race into an insert failure here. In
// that case the now-existing tags are re-queried and only the remainder is
// created; a second failure is fatal.
func ensureTags(ctx context.Context, store *db.Store, names []string) (map[string]string, error) {
	seen := map[string]bool{}
	deduped := make([]string, 0, len(names))

	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true

		deduped = append(deduped, name)
	}

	nameToID := make(map[string]string, len(deduped))

	existing, err := store.FindTagsByNames(ctx, deduped)
	if err != nil {
		return nil, err
	}

	for _, tag := range existing {
		nameToID[tag.Name] = tag.ID
	}

	missing := complement(deduped, nameToID)

	created, err := store.BulkCreateTags(ctx, missing)
	if err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, err
		}

		// lost a race with another writer; pick up its tags and retry once
		// with whatever is still missing
		existing, err = store.FindTagsByNames(ctx, missing)
		if err != nil {
			return nil, err
		}

		for _, tag := range existing {
			nameToID[tag.Name] = tag.ID
		}

		created, err = store.BulkCreateTags(ctx, complement(missing, nameToID))
		if err != nil {
			return nil, fmt.Errorf("error creating tags after conflict retry: %w", err)
		}
	}

	for _, tag := range created {
		nameToID[tag.Name] = tag.ID
	}

	return nameToID, nil
}

// complement returns the names not yet present in the map, preserving order.
func complement(names []string, nameToID map[string]string) []string {
	var missing []string

	for _, name := range names {
		if _, ok := nameToID[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}
