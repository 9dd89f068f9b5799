package catalog

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the catalog contract:
//   - at least one stage, ids equal to their position
//   - every stage has a non-empty solution with distinct entries
//   - every solution entry is one of the stage items
//   - every reward has a title
func Validate(c Catalog) error {
	if len(c.Stages) == 0 {
		return ValidationError{
			Code:    "NO_STAGES",
			Message: fmt.Sprintf("catalog %q has no stages", c.ID),
		}
	}

	for i, s := range c.Stages {
		if s.ID != i {
			return ValidationError{
				Code:    "STAGE_ORDER",
				Message: fmt.Sprintf("stage at position %d has id %d", i, s.ID),
			}
		}
		if err := validateStage(s); err != nil {
			return err
		}
	}

	return nil
}

func validateStage(s Stage) error {
	if len(s.Solution) == 0 {
		return ValidationError{
			Code:    "EMPTY_SOLUTION",
			Message: fmt.Sprintf("stage %d has no solution", s.ID),
		}
	}

	items := make(map[string]bool, len(s.Items))
	for _, it := range s.Items {
		if it.ID == "" {
			return ValidationError{
				Code:    "EMPTY_ITEM_ID",
				Message: fmt.Sprintf("stage %d has an item without id", s.ID),
			}
		}
		if items[it.ID] {
			return ValidationError{
				Code:    "DUPLICATE_ITEM",
				Message: fmt.Sprintf("stage %d lists item %q twice", s.ID, it.ID),
			}
		}
		items[it.ID] = true
	}

	seen := make(map[string]bool, len(s.Solution))
	for _, id := range s.Solution {
		if seen[id] {
			return ValidationError{
				Code:    "DUPLICATE_STEP",
				Message: fmt.Sprintf("stage %d solution repeats %q", s.ID, id),
			}
		}
		seen[id] = true
		if !items[id] {
			return ValidationError{
				Code:    "UNKNOWN_ITEM",
				Message: fmt.Sprintf("stage %d solution uses unlisted item %q", s.ID, id),
			}
		}
	}

	if s.Reward.Title == "" {
		return ValidationError{
			Code:    "MISSING_REWARD",
			Message: fmt.Sprintf("stage %d reward has no title", s.ID),
		}
	}

	return nil
}
