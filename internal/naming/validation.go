package naming

import (
	"fmt"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const groupIDMaxLength = 64

// ValidateGroupID checks a sanitized group id is usable.
func ValidateGroupID(id string) error {
	if id == "" {
		return fmt.Errorf("group id must not be empty")
	}
	if len(id) > groupIDMaxLength {
		return fmt.Errorf("group id exceeds %d characters", groupIDMaxLength)
	}
	if id != SanitizeGroupID(id) {
		return fmt.Errorf("invalid group id %q: only lowercase letters, digits, '-' and '_' allowed", id)
	}
	return nil
}

// ValidateSlug checks a derived slug is a DNS-1123 label. Slugs end up in
// project labels such as "ingest-form-<slug>" and must stay short and plain.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug must not be empty")
	}
	if errs := utilvalidation.IsDNS1123Label(slug); len(errs) > 0 {
		return fmt.Errorf("invalid slug %q: %s", slug, strings.Join(errs, ", "))
	}
	return nil
}
