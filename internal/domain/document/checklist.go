package document

import (
	"fmt"
	"strings"

	"sba-portal/internal/domain/apperr"
)

// Checklist is the product-owner supplied catalog of document categories.
// Only Required categories gate completeness; Optional ones are accepted for
// upload and count towards Minimum.
type Checklist struct {
	Required []string
	Optional []string
	Minimum  int
}

func NewChecklist(required, optional []string, minimum int) (Checklist, error) {
	req := normalize(required)
	if len(req) == 0 {
		return Checklist{}, fmt.Errorf("%w: at least one required document category must be configured", apperr.ErrInvalidInput)
	}
	if minimum < 0 {
		return Checklist{}, fmt.Errorf("%w: minimum document count must not be negative", apperr.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(req))
	for _, c := range req {
		seen[c] = struct{}{}
	}
	var opt []string
	for _, c := range normalize(optional) {
		if _, dup := seen[c]; !dup {
			opt = append(opt, c)
		}
	}
	return Checklist{Required: req, Optional: opt, Minimum: minimum}, nil
}

func normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Allows reports whether category may be uploaded at all.
func (c Checklist) Allows(category string) bool {
	for _, r := range c.Required {
		if r == category {
			return true
		}
	}
	for _, o := range c.Optional {
		if o == category {
			return true
		}
	}
	return false
}

// Categories returns required then optional categories.
func (c Checklist) Categories() []string {
	out := make([]string, 0, len(c.Required)+len(c.Optional))
	out = append(out, c.Required...)
	return append(out, c.Optional...)
}

type Evaluation struct {
	// Required categories with no document, in checklist order.
	Missing  []string       `json:"missing"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
	Minimum  int            `json:"minimum"`
	Complete bool           `json:"complete"`
}

// Evaluate is the completeness rule: every required category has at least one
// document in any review status, and the borrower holds at least Minimum
// documents overall.
func (c Checklist) Evaluate(docs []Document) Evaluation {
	counts := make(map[string]int)
	for _, d := range docs {
		counts[d.Category]++
	}
	missing := []string{}
	for _, r := range c.Required {
		if counts[r] == 0 {
			missing = append(missing, r)
		}
	}
	return Evaluation{
		Missing:  missing,
		Counts:   counts,
		Total:    len(docs),
		Minimum:  c.Minimum,
		Complete: len(missing) == 0 && len(docs) >= c.Minimum,
	}
}

// Err is nil for a complete evaluation and an *IncompleteError otherwise.
func (e Evaluation) Err() error {
	if e.Complete {
		return nil
	}
	return &IncompleteError{Missing: e.Missing, Have: e.Total, Minimum: e.Minimum}
}

type IncompleteError struct {
	Missing []string
	Have    int
	Minimum int
}

func (e *IncompleteError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("documents incomplete: %d of %d required uploads", e.Have, e.Minimum)
	}
	return fmt.Sprintf("documents incomplete: missing %s (%d of %d uploads)", strings.Join(e.Missing, ", "), e.Have, e.Minimum)
}

func (e *IncompleteError) Unwrap() error { return apperr.ErrPreconditionFailed }
