// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package extract turns raw document bytes into per-page text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnreadableDocument indicates the document bytes could not be
// decoded as text.
var ErrUnreadableDocument = errors.New("unreadable document")

// Extractor produces the ordered page texts of a document.
// Implementations must be thread-safe for concurrent use.
type Extractor interface {
	// Extract returns the document's pages in order. The name is the
	// original file name, available for format sniffing.
	Extract(ctx context.Context, name string, data []byte) ([]string, error)
}

// Plaintext extracts UTF-8 text documents. Form feeds mark page
// boundaries; a document without form feeds is a single page.
type Plaintext struct{}

var _ Extractor = (*Plaintext)(nil)

// NewPlaintext creates a plaintext extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Extract splits the document into pages on form-feed characters.
func (p *Plaintext) Extract(ctx context.Context, name string, data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrUnreadableDocument, name)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrUnreadableDocument, name)
	}

	pages := strings.Split(text, "\f")

	// Drop trailing blank pages; a form feed at EOF is a page
	// terminator, not a page separator
	for len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages, nil
}
