package answer

import (
	"fmt"
	"strings"

	"github.com/futig/docqa/internal/entity"
)

const (
	namePrefix        = "Name:"
	descriptionPrefix = "Description:"
	personalityPrefix = "Personality:"
)

// Parse splits raw model output into paragraphs separated by blank lines and reads
// each paragraph as exactly three lines: Name, Description, Personality, in that order.
//
// Malformed paragraphs are skipped and reported in Warnings. If raw has content but
// no paragraph parses, Parse fails with entity.ErrParse. Blank input yields no records.
func Parse(raw string) (*entity.ParsedAnswer, error) {
	paragraphs := splitParagraphs(raw)
	result := &entity.ParsedAnswer{Records: make([]entity.AnswerRecord, 0, len(paragraphs))}

	for i, lines := range paragraphs {
		record, err := parseParagraph(lines)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("%w: paragraph %d: %v", entity.ErrParse, i+1, err))
			continue
		}
		result.Records = append(result.Records, record)
	}

	if len(paragraphs) > 0 && len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: none of %d paragraphs matched the answer format", entity.ErrParse, len(paragraphs))
	}

	return result, nil
}

// splitParagraphs groups trimmed non-blank lines, treating whitespace-only lines as separators
func splitParagraphs(raw string) [][]string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var paragraphs [][]string
	var current []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}

	return paragraphs
}

func parseParagraph(lines []string) (entity.AnswerRecord, error) {
	if len(lines) != 3 {
		return entity.AnswerRecord{}, fmt.Errorf("expected 3 lines, got %d", len(lines))
	}

	name, err := field(lines[0], namePrefix)
	if err != nil {
		return entity.AnswerRecord{}, err
	}
	description, err := field(lines[1], descriptionPrefix)
	if err != nil {
		return entity.AnswerRecord{}, err
	}
	personality, err := field(lines[2], personalityPrefix)
	if err != nil {
		return entity.AnswerRecord{}, err
	}

	return entity.AnswerRecord{
		Name:        name,
		Description: description,
		Personality: personality,
	}, nil
}

func field(line, prefix string) (string, error) {
	value, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return "", fmt.Errorf("expected line starting with %q, got %q", prefix, line)
	}
	return strings.TrimSpace(value), nil
}
