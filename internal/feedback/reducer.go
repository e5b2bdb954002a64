package feedback

import "github.com/feedbackboard/feedback-client/internal/models"

// applyPatch returns a new collection where the item with the given id
// is replaced by patch(item). The input is never mutated; an unknown
// id returns an unchanged copy, so a reconciliation landing after the
// item was removed is a no-op.
func applyPatch(items []models.Feedback, id string, patch func(models.Feedback) models.Feedback) []models.Feedback {
	out := make([]models.Feedback, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i] = patch(out[i])
		}
	}
	return out
}

// removeByID returns a new collection without the item with the given
// id. An unknown id returns an unchanged copy.
func removeByID(items []models.Feedback, id string) []models.Feedback {
	out := make([]models.Feedback, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
