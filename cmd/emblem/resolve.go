package main

import (
	"fmt"
	"strings"

	"emblem/internal/icons"
	"emblem/internal/ipc"
)

// resolveIconID expands a user-supplied selector into a stored icon id. The
// selector may be a full id, a unique id prefix, or an exact display name.
// The default sentinel passes through untouched.
func resolveIconID(client *ipc.Client, selector string) (string, error) {
	if selector == icons.DefaultSelection {
		return selector, nil
	}

	resp, err := client.State()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, record := range resp.State.Records {
		if record.ID == selector {
			return record.ID, nil
		}
		if strings.HasPrefix(record.ID, selector) || record.Name == selector {
			matches = append(matches, record.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no stored icon matches %q", selector)
	default:
		return "", fmt.Errorf("%q matches %d icons; use a longer prefix or the full id", selector, len(matches))
	}
}
