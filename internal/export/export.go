package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"trivia-quiz/internal/quiz"
)

const sheetName = "Sheet1"

var header = []string{"question", "answer", "user_answer", "correct"}

func row(result quiz.AnswerResult) []string {
	return []string{
		result.Question,
		result.ExpectedAnswer,
		result.GivenAnswer,
		strconv.FormatBool(result.Correct),
	}
}

func WriteCSV(w io.Writer, results []quiz.AnswerResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, result := range results {
		if err := writer.Write(row(result)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the same table as WriteCSV to the first sheet of a
// workbook; the correct column holds booleans rather than text.
func WriteXLSX(w io.Writer, results []quiz.AnswerResult) error {
	f := excelize.NewFile()
	defer f.Close()

	headerRow := make([]any, len(header))
	for idx, name := range header {
		headerRow[idx] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return err
	}

	for idx, result := range results {
		cell, err := excelize.CoordinatesToCellName(1, idx+2)
		if err != nil {
			return err
		}
		values := []any{result.Question, result.ExpectedAnswer, result.GivenAnswer, result.Correct}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteFile picks the format from the extension: ".xlsx" is a workbook,
// anything else is CSV.
func WriteFile(path string, results []quiz.AnswerResult) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	write := WriteCSV
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		write = WriteXLSX
	}

	if err := write(fh, results); err != nil {
		_ = fh.Close()
		return fmt.Errorf("export results to %s: %w", path, err)
	}
	return fh.Close()
}
