// Package filter computes which tasks match a live search query.
//
// Matching is a fuzzy subsequence match over a blob concatenating every
// searchable field of a task. Results keep the original list order: the
// contract is "a match exists", not a ranking.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"taskdeck/internal/domain"
)

// Match returns the indices of tasks matching query, in original list order.
// An empty query is the identity mapping. Cost is O(tasks x query) per call,
// which is fine at human-scale task counts.
func Match(tasks []*domain.Task, query string) []int {
	indices := make([]int, 0, len(tasks))

	if query == "" {
		for i := range tasks {
			indices = append(indices, i)
		}
		return indices
	}

	blobs := make([]string, len(tasks))
	for i, task := range tasks {
		blobs[i] = searchBlob(task)
	}

	// fuzzy.Find ranks by score; we only care whether a match exists, so
	// re-sort the matched indices back into list order.
	for _, m := range fuzzy.Find(query, blobs) {
		indices = append(indices, m.Index)
	}
	sort.Ints(indices)

	return indices
}

// searchBlob flattens a task into one searchable string: id, priority,
// topic, title, status, owner, notes, due, and a rendering of its subtasks.
func searchBlob(task *domain.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d %s %s %s %s %s %s %s",
		task.ID,
		task.Priority,
		task.Topic,
		task.Title,
		task.Status,
		task.Owner,
		task.Notes,
		task.Due,
	)

	for _, st := range task.Subtasks {
		fmt.Fprintf(&b, " %s %s", st.Text, st.Status)
	}

	return b.String()
}
