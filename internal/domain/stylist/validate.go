package stylist

import (
	"strings"

	apperrors "github.com/PMQ9/ai-attire/pkg/errors"
)

// Validate is the single gate keeping syntactically valid but unusable
// model responses from reaching callers. A response passes iff occasion
// and summary are non-empty and it carries at least one non-blank
// recommendation.
func Validate(resp Response) error {
	if strings.TrimSpace(resp.Occasion) == "" {
		return apperrors.Wrap("invalid_response", "model response missing occasion", nil)
	}
	if strings.TrimSpace(resp.Summary) == "" {
		return apperrors.Wrap("invalid_response", "model response missing summary", nil)
	}
	if len(resp.Recommendations) == 0 {
		return apperrors.Wrap("invalid_response", "model returned no recommendations", nil)
	}
	for _, rec := range resp.Recommendations {
		if strings.TrimSpace(rec) == "" {
			return apperrors.Wrap("invalid_response", "model returned a blank recommendation", nil)
		}
	}
	return nil
}
