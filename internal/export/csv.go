package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskdeck/internal/domain"
)

var csvHeader = []string{"ID", "PRIORITY", "TOPIC", "TITLE", "DESCRIPTION", "CREATED", "DUE", "STATUS", "OWNER"}

// WriteCSV emits one row per task. Subtasks ride along as extra trailing
// columns in "text (status)" form, so rows have variable width.
func WriteCSV(w io.Writer, tasks []*domain.Task) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		row := []string{
			strconv.FormatInt(task.ID, 10),
			string(task.Priority),
			task.Topic,
			task.Title,
			task.Description,
			task.CreatedOn,
			task.Due,
			string(task.Status),
			task.Owner,
		}
		for _, st := range task.Subtasks {
			row = append(row, fmt.Sprintf("%s (%s)", st.Text, st.Status))
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

// ReadCSV parses rows produced by WriteCSV back into tasks. Imported ids
// are advisory; the store reassigns them on insert.
func ReadCSV(r io.Reader) ([]*domain.Task, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // subtask columns make rows ragged

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}
	if !isHeader(records[0]) {
		return nil, fmt.Errorf("unrecognized CSV header: %v", records[0])
	}

	tasks := make([]*domain.Task, 0, len(records)-1)
	for i, record := range records[1:] {
		task, err := taskFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func isHeader(record []string) bool {
	if len(record) < len(csvHeader) {
		return false
	}
	for i, name := range csvHeader {
		if !strings.EqualFold(record[i], name) {
			return false
		}
	}
	return true
}

func taskFromRecord(record []string) (*domain.Task, error) {
	if len(record) < len(csvHeader) {
		return nil, fmt.Errorf("expected at least %d columns, got %d", len(csvHeader), len(record))
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad id %q: %w", record[0], err)
	}

	priority, err := domain.ParsePriority(record[1])
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(record[7])
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          id,
		Priority:    priority,
		Topic:       record[2],
		Title:       record[3],
		Description: record[4],
		CreatedOn:   record[5],
		Due:         record[6],
		Status:      status,
		Owner:       record[8],
	}

	for _, col := range record[len(csvHeader):] {
		st, err := subtaskFromColumn(col)
		if err != nil {
			return nil, err
		}
		task.Subtasks = append(task.Subtasks, st)
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// subtaskFromColumn splits "text (status)" on the last parenthesized group,
// so subtask text may itself contain parentheses.
func subtaskFromColumn(col string) (domain.Subtask, error) {
	open := strings.LastIndex(col, " (")
	if open < 0 || !strings.HasSuffix(col, ")") {
		return domain.Subtask{}, fmt.Errorf("bad subtask column %q", col)
	}

	status, err := domain.ParseStatus(col[open+2 : len(col)-1])
	if err != nil {
		return domain.Subtask{}, fmt.Errorf("bad subtask column %q: %w", col, err)
	}

	return domain.Subtask{
		Text:   col[:open],
		Status: status,
	}, nil
}
