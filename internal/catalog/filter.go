package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/errors"
	"github.com/aaravmahajanofficial/digital-goods-marketplace/internal/money"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ScopeAll is the UI sentinel meaning "no platform/category filter". It is a
// client convention, never a stored row id.
const ScopeAll = "all"

// FilterSpec is the validated, fully-typed form of a catalog query. Zero
// values mean "no constraint"; downstream code never re-checks fields.
type FilterSpec struct {
	Search         string
	PlatformID     string
	CategoryID     string
	MinPrice       *money.Money
	MaxPrice       *money.Money
	ShowDiscounted bool
	Tags           []string
	Sort           SortKey
	Limit          int
	Offset         int
}

// rawQuery carries the string-typed fields through struct validation.
type rawQuery struct {
	Search     string   `validate:"omitempty,max=200"`
	PlatformID string   `validate:"omitempty,max=64"`
	CategoryID string   `validate:"omitempty,max=64"`
	Tags       []string `validate:"omitempty,max=20,dive,required,max=64"`
	Limit      int      `validate:"min=1,max=100"`
	Offset     int      `validate:"min=0"`
}

type SpecParser struct {
	validate *validator.Validate
}

func NewSpecParser() *SpecParser {
	return &SpecParser{validate: validator.New()}
}

// Parse normalizes raw query parameters into a FilterSpec, failing with a
// field-level validation error on any out-of-range or malformed value.
// Absent optional fields become "no constraint"; the literal "all" for
// platformId/categoryId is treated as unset.
func (p *SpecParser) Parse(q url.Values) (*FilterSpec, error) {
	spec := &FilterSpec{
		Search:     strings.TrimSpace(q.Get("search")),
		PlatformID: NormalizeScope(q.Get("platformId")),
		CategoryID: NormalizeScope(q.Get("categoryId")),
		Sort:       SortFeatured,
		Limit:      DefaultLimit,
	}

	var err error

	if spec.MinPrice, err = parsePrice(q.Get("minPrice"), "minPrice"); err != nil {
		return nil, err
	}

	if spec.MaxPrice, err = parsePrice(q.Get("maxPrice"), "maxPrice"); err != nil {
		return nil, err
	}

	if raw := q.Get("showDiscounted"); raw != "" {
		discounted, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return nil, errors.AddValidationError("showDiscounted", "must be a boolean")
		}

		spec.ShowDiscounted = discounted
	}

	spec.Tags = normalizeTags(q["tags"])

	if raw := q.Get("sortBy"); raw != "" {
		sort, ok := ParseSortKey(raw)
		if !ok {
			return nil, errors.AddValidationError("sortBy", fmt.Sprintf("unknown sort key %q", raw))
		}

		spec.Sort = sort
	}

	if spec.Limit, err = parseBoundedInt(q.Get("limit"), "limit", DefaultLimit); err != nil {
		return nil, err
	}

	if spec.Offset, err = parseBoundedInt(q.Get("offset"), "offset", 0); err != nil {
		return nil, err
	}

	raw := rawQuery{
		Search:     spec.Search,
		PlatformID: spec.PlatformID,
		CategoryID: spec.CategoryID,
		Tags:       spec.Tags,
		Limit:      spec.Limit,
		Offset:     spec.Offset,
	}

	if err := p.validate.Struct(raw); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return nil, errors.AddValidationError(fieldName(fieldErrs[0]), constraintMessage(fieldErrs[0]))
		}

		return nil, errors.ValidationError("Invalid catalog query").WithError(err)
	}

	return spec, nil
}

// NormalizeScope maps the "all" UI sentinel (and blanks) to the empty scope.
func NormalizeScope(id string) string {
	id = strings.TrimSpace(id)
	if id == ScopeAll {
		return ""
	}

	return id
}

func parsePrice(raw, field string) (*money.Money, error) {
	if raw == "" {
		return nil, nil
	}

	m, err := money.Parse(raw)
	if err != nil {
		return nil, errors.AddValidationError(field, "must be a decimal number")
	}

	if m.IsNegative() {
		return nil, errors.AddValidationError(field, "must be at least 0")
	}

	return &m, nil
}

func parseBoundedInt(raw, field string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.AddValidationError(field, "must be an integer")
	}

	return n, nil
}

// normalizeTags drops blanks and duplicates; tag sets are unordered and
// duplicates carry no meaning.
func normalizeTags(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(raw))

	var tags []string

	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}

		if _, ok := seen[tag]; ok {
			continue
		}

		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "PlatformID":
		return "platformId"
	case "CategoryID":
		return "categoryId"
	case "Search":
		return "search"
	case "Tags":
		return "tags"
	case "Limit":
		return "limit"
	case "Offset":
		return "offset"
	default:
		return fe.Field()
	}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "required":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed constraint %s=%s", fe.Tag(), fe.Param())
	}
}
