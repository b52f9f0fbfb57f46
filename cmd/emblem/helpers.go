package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// detectMediaType maps an upload to its declared media type. The file
// extension wins when it names a supported format; otherwise the content is
// sniffed so renamed files still upload.
func detectMediaType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "text/xml") && strings.Contains(string(data[:min(len(data), 512)]), "<svg") {
		return "image/svg+xml"
	}
	return sniffed
}

// domainError converts an in-band rejection into a CLI error. The daemon
// reports these with ok=false; a nil return means the call succeeded.
func domainError(ok bool, message, kind string) error {
	if ok {
		return nil
	}
	if message == "" {
		message = "request rejected"
	}
	if kind != "" {
		return fmt.Errorf("%s (%s)", message, kind)
	}
	return fmt.Errorf("%s", message)
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
