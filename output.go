package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var ErrUnknownFormat = errors.New("unknown output format")

// outputFormat is one of the closed set of serializations.
type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
	formatXML
	formatMarkdown
)

func (f outputFormat) String() string {
	switch f {
	case formatJSON:
		return "json"
	case formatXML:
		return "xml"
	case formatMarkdown:
		return "markdown"
	default:
		return "text"
	}
}

// parseFormat maps a --format value to an outputFormat.
func parseFormat(name string) (outputFormat, error) {
	switch strings.ToLower(name) {
	case "text":
		return formatText, nil
	case "json":
		return formatJSON, nil
	case "xml":
		return formatXML, nil
	case "markdown":
		return formatMarkdown, nil
	default:
		return formatText, fmt.Errorf("%w: %q (choose from text, json, xml, markdown)", ErrUnknownFormat, name)
	}
}

// formatForPath infers the format from the output file's extension.
func formatForPath(path string) outputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".xml":
		return formatXML
	case ".md":
		return formatMarkdown
	default:
		return formatText
	}
}

// render serializes files in format. The whole payload is built in memory.
func render(format outputFormat, files []FileRecord, langData *LoadedLanguageData) ([]byte, error) {
	switch format {
	case formatText:
		return renderText(files), nil
	case formatJSON:
		return renderJSON(files)
	case formatXML:
		return renderXML(files), nil
	case formatMarkdown:
		return renderMarkdown(files, langData), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
}

func renderText(files []FileRecord) []byte {
	var b bytes.Buffer
	for _, file := range files {
		fmt.Fprintf(&b, "--- File: %s ---\n", file.Path)
		b.WriteString(file.Content)
		b.WriteString("\n\n")
	}
	return b.Bytes()
}

type jsonFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
	Lines   int    `json:"lines"`
}

type jsonSummary struct {
	TotalFiles int `json:"total_files"`
	TotalSize  int `json:"total_size"`
}

type jsonDocument struct {
	Files   []jsonFile  `json:"files"`
	Summary jsonSummary `json:"summary"`
}

// renderJSON sizes are counted in characters, not bytes.
func renderJSON(files []FileRecord) ([]byte, error) {
	doc := jsonDocument{Files: make([]jsonFile, 0, len(files))}
	for _, file := range files {
		size := utf8.RuneCountInString(file.Content)
		doc.Files = append(doc.Files, jsonFile{
			Path:    file.Path,
			Content: file.Content,
			Size:    size,
			Lines:   file.LineCount,
		})
		doc.Summary.TotalSize += size
	}
	doc.Summary.TotalFiles = len(doc.Files)

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// renderXML escapes only '&', '<' and '>'. Content is escaped the same way
// even though it sits in a CDATA block, and a literal "]]>" is not protected.
func renderXML(files []FileRecord) []byte {
	var b bytes.Buffer
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<repository>\n")
	for _, file := range files {
		fmt.Fprintf(&b, "  <file path=\"%s\">\n", xmlEscaper.Replace(file.Path))
		fmt.Fprintf(&b, "    <content><![CDATA[%s]]></content>\n", xmlEscaper.Replace(file.Content))
		b.WriteString("  </file>\n")
	}
	b.WriteString("</repository>\n")
	return b.Bytes()
}

func renderMarkdown(files []FileRecord, langData *LoadedLanguageData) []byte {
	var b bytes.Buffer
	b.WriteString("# Repository Contents\n\n")
	fmt.Fprintf(&b, "Total files: %d\n\n", len(files))
	for _, file := range files {
		fmt.Fprintf(&b, "## %s\n\n", file.Path)
		lang, _ := langData.GetLanguageForFile(file.Path)
		fmt.Fprintf(&b, "```%s\n", lang)
		b.WriteString(file.Content)
		b.WriteString("\n```\n\n")
	}
	return b.Bytes()
}

// writeOutput replaces path with data via a temp file in the same directory
// and a rename, so readers never see a partial file.
func writeOutput(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".git2one-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("error writing to file %s: %w", path, err)
	}
	tempFile = nil
	return nil
}
