// Package guide builds the readable body of a published guide.
package guide

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"content-hub/internal/domain"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200

// Document is a guide ready to be served or printed.
type Document struct {
	Item        domain.ContentItem `json:"item"`
	Author      string             `json:"author"`
	ReadingTime int                `json:"readingTimeMinutes"`
	Markdown    string             `json:"markdown"`
}

var bodyTemplate = template.Must(template.New("guide").Parse(`# {{.Item.Title}}

*By {{.Author}} · {{.Published}} · {{.ReadingTime}} min read*
{{if .Tags}}
Tags: {{.Tags}}
{{end}}
Welcome to this comprehensive guide! This tutorial will walk you through everything you need to know about {{.Item.Category}}.

## Introduction

{{.Item.Description}}

## Table of Contents

1. [Getting Started](#getting-started)
2. [Core Concepts](#core-concepts)
3. [Advanced Techniques](#advanced-techniques)
4. [Best Practices](#best-practices)
5. [Conclusion](#conclusion)

## Getting Started

To begin, you'll need to understand the fundamentals of {{.Item.Category}}. This technology has become essential in modern web development.

### Prerequisites

- Basic understanding of JavaScript
- Familiarity with modern web development
- A code editor of your choice

## Core Concepts

Let's dive into the core concepts that make {{.Item.Category}} so powerful:

1. **Performance**: Optimized for speed and efficiency
2. **Developer Experience**: Great tooling and documentation
3. **Community**: Strong ecosystem and community support

## Advanced Techniques

Once you've mastered the basics, you can explore these advanced patterns:

- Advanced state management
- Performance optimization
- Testing strategies

## Best Practices

> **Tip**: Always consider performance implications when implementing new features.

1. Keep your code clean and readable
2. Follow established conventions
3. Test your implementations thoroughly
4. Document your code properly

## Conclusion

{{.Item.Category}} is a powerful technology that can significantly improve your development workflow. With the concepts covered in this guide, you're well on your way to mastering it.
`))

// Build renders the markdown document for a published item.
func Build(item domain.ContentItem) (Document, error) {
	if !item.IsGuide() {
		return Document{}, fmt.Errorf("item %q: %w", item.ID, domain.ErrGuideNotFound)
	}

	author := item.Author()
	if author == "" {
		author = "Anonymous"
	}

	data := struct {
		Item        domain.ContentItem
		Author      string
		Published   string
		ReadingTime int
		Tags        string
	}{
		Item:      item,
		Author:    author,
		Published: item.CreatedAt.Format("January 2, 2006"),
		Tags:      strings.Join(item.Tags, ", "),
	}

	// Reading time is derived from the body itself, so render twice.
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("render guide: %w", err)
	}
	data.ReadingTime = ReadingTime(buf.String())

	buf.Reset()
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return Document{}, fmt.Errorf("render guide: %w", err)
	}

	return Document{
		Item:        item,
		Author:      author,
		ReadingTime: data.ReadingTime,
		Markdown:    buf.String(),
	}, nil
}

// ReadingTime estimates the minutes needed to read text, never less than one.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Render formats markdown for a terminal. style is a glamour style name
// ("dark", "light", "notty", ...); "" or "auto" detects the terminal.
func Render(markdown, style string, width int) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStylePath(style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
