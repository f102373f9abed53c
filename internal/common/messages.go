package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"finize/txextract/internal/logging"
	"finize/txextract/internal/parsererror"
	"finize/txextract/internal/textutils"
)

// messageRow is the CSV layout accepted by ReadMessages.
type messageRow struct {
	Message string `csv:"message"`
}

// ReadMessages reads the messages of a file:
//   - .csv files: the "message" column, one message per row
//   - .html and .htm files: the visible text as a single message
//   - anything else: one message per line
//
// Blank lines are kept so that results can be matched to input lines.
func ReadMessages(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVMessages(path)
	case ".html", ".htm":
		text, err := readHTMLFile(path)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	default:
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error opening message file: %w", err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				log.WithError(err).Warn("Failed to close file")
			}
		}()
		return ReadLines(file)
	}
}

// ReadLines returns the lines of r with trailing carriage returns removed.
// A trailing empty line at end of input is dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading messages: %w", err)
	}
	return lines, nil
}

func readCSVMessages(path string) ([]string, error) {
	rows, err := ReadCSVFile[messageRow](path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "CSV with a message column",
			Msg:            "cannot read CSV",
			Err:            err,
		}
	}

	messages := make([]string, len(rows))
	empty := 0
	for i, row := range rows {
		messages[i] = row.Message
		if strings.TrimSpace(row.Message) == "" {
			empty++
		}
	}
	if len(rows) > 0 && empty == len(rows) {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "CSV with a message column",
			Msg:            "no messages found",
		}
	}

	log.Debug("Read messages from CSV",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(messages)})
	return messages, nil
}

// ReadText reads a single message from path, converting HTML to text when
// the file has an .html or .htm extension.
func ReadText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return readHTMLFile(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("error reading message file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
}

func readHTMLFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("error opening HTML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	text, err := textutils.HTMLToText(file)
	if err != nil {
		return "", &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: "HTML", Msg: "cannot read HTML", Err: err}
	}
	// Receipts span several lines; extraction works on one line of text.
	return strings.ReplaceAll(text, "\n", " "), nil
}
