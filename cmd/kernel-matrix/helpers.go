package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"kernel-matrix/internal/report"
)

// readDocument loads raw document bytes from a local path or an http(s) URL.
func readDocument(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch document: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch document: status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func loadDocument(source string) (*report.Document, []byte, error) {
	data, err := readDocument(source)
	if err != nil {
		return nil, nil, err
	}
	doc, err := report.DecodeDocument(data)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}
