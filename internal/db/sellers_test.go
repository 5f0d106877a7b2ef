package db

import (
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var setColumnRe = regexp.MustCompile(`(?m)^\s*(\w+)\s*=`)

// setColumns lists the columns a statement assigns, minus the
// updated_at timestamp every save touches
func setColumns(query string) []string {
	cols := []string{}
	for _, m := range setColumnRe.FindAllStringSubmatch(query, -1) {
		if m[1] == "updated_at" {
			continue
		}
		cols = append(cols, m[1])
	}
	sort.Strings(cols)
	return cols
}

var sectionColumns = map[string][]string{
	"basic": {
		"about", "business_logo", "business_type", "company_name",
		"email", "full_name", "mobile", "product_categories",
	},
	"address": {
		"biz_city", "biz_country", "biz_pin_code", "biz_state", "biz_street",
		"wh_city", "wh_country", "wh_pin_code", "wh_same_as_business",
		"wh_state", "wh_street",
	},
	"logistics": {"return_policy", "service_areas", "shipping_type"},
	"social":    {"facebook", "instagram", "linkedin", "website"},
}

func TestSectionSaves_TouchOnlyOwnColumns(t *testing.T) {
	queries := map[string]string{
		"basic":     updateBasicInfoQuery,
		"address":   updateAddressesQuery,
		"logistics": updateLogisticsQuery,
		"social":    updateSocialLinksQuery,
	}

	for section, query := range queries {
		assert.Equal(t, sectionColumns[section], setColumns(query),
			"%s save must assign exactly its own columns", section)
	}
}

func TestSectionSaves_ColumnsAreDisjoint(t *testing.T) {
	owner := map[string]string{}
	for section, cols := range sectionColumns {
		for _, col := range cols {
			prev, taken := owner[col]
			require.False(t, taken, "column %s claimed by both %s and %s", col, prev, section)
			owner[col] = section
		}
	}
}

func TestFullProfileSave_CoversEverySection(t *testing.T) {
	want := []string{}
	for _, cols := range sectionColumns {
		want = append(want, cols...)
	}
	sort.Strings(want)

	assert.Equal(t, want, setColumns(updateFullProfileQuery))
}
